// Package reconcile merges changed metadata documents into their full
// copies and subtracts deleted labels from the full labels document.
//
// A merge replaces every full-document element whose identity key appears
// in the changed document, appends the changed elements, then sorts the
// root's children by key. Identity, not content, decides replacement: the
// last writer wins.
package reconcile

import (
	"context"

	"github.com/agentstation/fullmeta/pkg/differ"
	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/identity"
	"github.com/agentstation/fullmeta/pkg/metadata"
)

// Merger merges a changed document into a full document.
type Merger interface {
	// Merge mutates full in place. Elements of changed are moved, not
	// copied, into full.
	Merge(ctx context.Context, full, changed *metadata.Document) (*Result, error)

	// Mapping returns the tag mapping the merger resolves identities with.
	Mapping() identity.Mapping
}

// merger is the default implementation of Merger.
type merger struct {
	mapping identity.Mapping
	differ  differ.Differ
}

// New creates a Merger for one metadata type's tag mapping.
func New(mapping identity.Mapping, opts ...Option) (Merger, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if len(mapping) == 0 {
		return nil, &errors.ValidationError{
			Field:   "mapping",
			Message: "must contain at least one tag",
		}
	}

	return &merger{
		mapping: mapping,
		differ:  options.differ,
	}, nil
}

// Mapping returns the merger's tag mapping.
func (m *merger) Mapping() identity.Mapping {
	return m.mapping
}
