package reconcile

import (
	"github.com/agentstation/fullmeta/pkg/differ"
	"github.com/agentstation/fullmeta/pkg/identity"
)

// Result represents the outcome of merging one changed document.
type Result struct {
	// Skipped is true when the changed document had no mergeable elements
	// and the full document was left untouched.
	Skipped bool

	// Changeset classifies every changed key.
	Changeset *differ.Changeset

	// Removed counts full-document elements dropped for colliding keys.
	Removed int

	// Appended counts changed elements moved into the full document.
	Appended int

	// Malformed counts mergeable elements without an identifier, across
	// both documents.
	Malformed int

	// Duplicates lists keys that occurred more than once in the changed
	// document; the last occurrence won.
	Duplicates []identity.Key
}

// Added returns the number of keys new to the full document.
func (r *Result) Added() int {
	if r.Changeset == nil {
		return 0
	}
	return r.Changeset.Summary.Added
}

// Replaced returns the number of keys whose content changed.
func (r *Result) Replaced() int {
	if r.Changeset == nil {
		return 0
	}
	return r.Changeset.Summary.Replaced
}

// Unchanged returns the number of keys replaced by equal content.
func (r *Result) Unchanged() int {
	if r.Changeset == nil {
		return 0
	}
	return r.Changeset.Summary.Unchanged
}

// LabelResult represents the outcome of a label subtraction.
type LabelResult struct {
	// Removed lists the label names that were found and removed.
	Removed []string

	// Missing lists the label names not present in the full document.
	Missing []string
}

// Changed reports whether any label was removed.
func (r *LabelResult) Changed() bool {
	return len(r.Removed) > 0
}
