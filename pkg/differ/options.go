package differ

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithIgnoredTags excludes direct child tags from equality and field
// comparison.
func WithIgnoredTags(tags ...string) Option {
	return func(d *differ) {
		for _, tag := range tags {
			d.ignoreTags[tag] = true
		}
	}
}

// WithFieldChanges enables or disables leaf-level change reporting.
func WithFieldChanges(enabled bool) Option {
	return func(d *differ) {
		d.fieldChanges = enabled
	}
}
