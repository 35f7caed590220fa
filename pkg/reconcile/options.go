package reconcile

import (
	"github.com/agentstation/fullmeta/pkg/differ"
	"github.com/agentstation/fullmeta/pkg/errors"
)

// options configures a merger.
type options struct {
	differ differ.Differ
}

func defaultOptions() *options {
	return &options{
		differ: differ.New(),
	}
}

// Option is a function that configures a Merger.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns merger options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithDiffer sets the differ used to classify changed keys.
func WithDiffer(d differ.Differ) Option {
	return func(o *options) error {
		if d == nil {
			return &errors.ValidationError{
				Field:   "differ",
				Message: "cannot be nil",
			}
		}
		o.differ = d
		return nil
	}
}
