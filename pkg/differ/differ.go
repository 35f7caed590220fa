package differ

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/agentstation/fullmeta/pkg/identity"
	"github.com/agentstation/fullmeta/pkg/metadata"
)

// Differ classifies the keys of a changed document against a full document.
type Differ interface {
	// Indexes compares a full index with a changed index. Every changed key
	// appears in exactly one of Added, Replaced or Unchanged.
	Indexes(full, changed *identity.Index) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreTags   map[string]bool
	fieldChanges bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreTags:   make(map[string]bool),
		fieldChanges: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Indexes compares two indexes. For changed keys with several elements the
// last one is the one a merge appends.
func (diff *differ) Indexes(full, changed *identity.Index) *Changeset {
	cs := &Changeset{
		Added:     []Change{},
		Replaced:  []Change{},
		Unchanged: []Change{},
	}

	for _, key := range changed.Keys() {
		incoming := changed.Last(key)

		if !full.Has(key) {
			cs.Added = append(cs.Added, Change{Key: key, Type: ChangeTypeAdd, New: incoming})
			continue
		}

		existing := full.Elements(key)
		change := Change{Key: key, Existing: existing, New: incoming}

		if len(existing) == 1 && diff.equal(existing[0], incoming) {
			change.Type = ChangeTypeUnchanged
			cs.Unchanged = append(cs.Unchanged, change)
			continue
		}

		change.Type = ChangeTypeReplace
		if diff.fieldChanges {
			change.Fields = diff.fields(existing[len(existing)-1], incoming)
		}
		cs.Replaced = append(cs.Replaced, change)
	}

	preserved := 0
	for _, key := range full.Keys() {
		if !changed.Has(key) {
			preserved++
		}
	}

	cs.Summary = calculateSummary(cs, preserved)
	return cs
}

// equal compares two elements, skipping ignored child tags.
func (diff *differ) equal(a, b *etree.Element) bool {
	if len(diff.ignoreTags) == 0 {
		return metadata.Equal(a, b)
	}
	return metadata.Equal(diff.strip(a), diff.strip(b))
}

// strip returns a copy of e without ignored direct children.
func (diff *differ) strip(e *etree.Element) *etree.Element {
	c := e.Copy()
	for _, child := range c.ChildElements() {
		if diff.ignoreTags[child.Tag] {
			c.RemoveChild(child)
		}
	}
	return c
}

// fields returns the leaf-level differences between old and updated.
func (diff *differ) fields(old, updated *etree.Element) []FieldChange {
	oldLeaves := leaves(old, "", diff.ignoreTags)
	newLeaves := leaves(updated, "", diff.ignoreTags)

	paths := make(map[string]struct{}, len(oldLeaves)+len(newLeaves))
	for p := range oldLeaves {
		paths[p] = struct{}{}
	}
	for p := range newLeaves {
		paths[p] = struct{}{}
	}

	var changes []FieldChange
	for _, p := range slices.Sorted(maps.Keys(paths)) {
		if oldLeaves[p] != newLeaves[p] {
			changes = append(changes, FieldChange{Path: p, OldValue: oldLeaves[p], NewValue: newLeaves[p]})
		}
	}
	return changes
}

// leaves flattens e's descendant leaf elements into path -> trimmed text.
// Repeated paths get an index suffix.
func leaves(e *etree.Element, prefix string, ignore map[string]bool) map[string]string {
	out := make(map[string]string)
	seen := make(map[string]int)

	for _, child := range e.ChildElements() {
		if prefix == "" && ignore[child.Tag] {
			continue
		}
		path := child.Tag
		if prefix != "" {
			path = prefix + "/" + child.Tag
		}
		if n := seen[path]; n > 0 {
			seen[path] = n + 1
			path = fmt.Sprintf("%s[%d]", path, n)
		} else {
			seen[path] = 1
		}

		if len(child.ChildElements()) == 0 {
			out[path] = strings.TrimSpace(child.Text())
			continue
		}
		maps.Copy(out, leaves(child, path, nil))
	}
	return out
}
