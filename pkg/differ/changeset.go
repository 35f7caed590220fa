// Package differ compares the mergeable elements of a full document with
// those of a changed document and classifies every changed key.
package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/agentstation/fullmeta/pkg/identity"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates a key absent from the full document.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeReplace indicates a key whose content differs.
	ChangeTypeReplace ChangeType = "replace"
	// ChangeTypeUnchanged indicates a key whose content is structurally equal.
	ChangeTypeUnchanged ChangeType = "unchanged"
)

// FieldChange represents a change to one leaf value inside an element.
type FieldChange struct {
	Path     string // slash-separated child path, e.g. "readable"
	OldValue string
	NewValue string
}

// Change describes what a merge does to one key.
type Change struct {
	Key      identity.Key
	Type     ChangeType
	Existing []*etree.Element // full-document elements removed for this key
	New      *etree.Element   // changed-document element appended for this key
	Fields   []FieldChange    // leaf differences, replace only
}

// Changeset represents every change a merge applies to a full document.
type Changeset struct {
	Added     []Change
	Replaced  []Change
	Unchanged []Change
	Summary   ChangesetSummary
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	Added        int
	Replaced     int
	Unchanged    int
	Preserved    int // full keys the changed document does not touch
	TotalChanges int // Added + Replaced
}

// Changes returns every change grouped as added, replaced, unchanged.
func (c *Changeset) Changes() []Change {
	all := make([]Change, 0, len(c.Added)+len(c.Replaced)+len(c.Unchanged))
	all = append(all, c.Added...)
	all = append(all, c.Replaced...)
	all = append(all, c.Unchanged...)
	return all
}

// HasChanges returns true if applying the changeset alters content.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changed document contributed no keys at all.
func (c *Changeset) IsEmpty() bool {
	return len(c.Added)+len(c.Replaced)+len(c.Unchanged) == 0
}

func calculateSummary(c *Changeset, preserved int) ChangesetSummary {
	return ChangesetSummary{
		Added:        len(c.Added),
		Replaced:     len(c.Replaced),
		Unchanged:    len(c.Unchanged),
		Preserved:    preserved,
		TotalChanges: len(c.Added) + len(c.Replaced),
	}
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	if n := len(c.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(c.Replaced); n > 0 {
		parts = append(parts, fmt.Sprintf("%d replaced", n))
	}
	if n := len(c.Unchanged); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", n))
	}

	return fmt.Sprintf("Changeset: %s (Total: %d changes)", strings.Join(parts, ", "), c.Summary.TotalChanges)
}

// Print writes a detailed, human-readable view of the changeset to w.
func (c *Changeset) Print(w io.Writer) {
	fmt.Fprintln(w, c.String())

	if len(c.Added) > 0 {
		fmt.Fprintf(w, "\nAdded (%d):\n", len(c.Added))
		for _, change := range c.Added {
			fmt.Fprintf(w, "  + %s\n", change.Key)
		}
	}

	if len(c.Replaced) > 0 {
		fmt.Fprintf(w, "\nReplaced (%d):\n", len(c.Replaced))
		for _, change := range c.Replaced {
			fmt.Fprintf(w, "  ~ %s\n", change.Key)
			for _, field := range change.Fields {
				fmt.Fprintf(w, "      %s: %q -> %q\n", field.Path, field.OldValue, field.NewValue)
			}
		}
	}
}
