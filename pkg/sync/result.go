package sync

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/fullmeta/pkg/errors"
)

// Status is the outcome of one changed/full file pair.
type Status string

const (
	// StatusMerged means changed elements were merged into the full file.
	StatusMerged Status = "merged"
	// StatusSeeded means the full file was absent and the changed file was copied.
	StatusSeeded Status = "seeded"
	// StatusSkipped means the changed file had no mergeable elements.
	StatusSkipped Status = "skipped"
	// StatusFailed means the pair could not be processed.
	StatusFailed Status = "failed"
)

// Result represents the complete result of a sync operation.
type Result struct {
	Types []string      `json:"types" yaml:"types"` // Metadata types processed, in order
	Files []*FileResult `json:"files" yaml:"files"` // One entry per changed file

	// Operation metadata
	DryRun     bool     `json:"dry_run" yaml:"dry_run"`
	Reformat   bool     `json:"reformat" yaml:"reformat"`
	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`
}

// FileResult represents the outcome of one changed/full file pair.
type FileResult struct {
	Type    string `json:"type" yaml:"type"`
	Changed string `json:"changed" yaml:"changed"`
	Full    string `json:"full" yaml:"full"`
	Status  Status `json:"status" yaml:"status"`

	// Merge counts, zero unless merged
	Added      int `json:"added" yaml:"added"`
	Replaced   int `json:"replaced" yaml:"replaced"`
	Unchanged  int `json:"unchanged" yaml:"unchanged"`
	Removed    int `json:"removed" yaml:"removed"`
	Malformed  int `json:"malformed" yaml:"malformed"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`

	// Written is true when the full file was (or, in a dry run, would be) written.
	Written bool `json:"written" yaml:"written"`

	Err   error  `json:"-" yaml:"-"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// TypeSummary aggregates the file results of one metadata type.
type TypeSummary struct {
	Type     string `json:"type" yaml:"type"`
	Files    int    `json:"files" yaml:"files"`
	Merged   int    `json:"merged" yaml:"merged"`
	Seeded   int    `json:"seeded" yaml:"seeded"`
	Skipped  int    `json:"skipped" yaml:"skipped"`
	Failed   int    `json:"failed" yaml:"failed"`
	Added    int    `json:"added" yaml:"added"`
	Replaced int    `json:"replaced" yaml:"replaced"`
}

// Fail marks the file result failed with err.
func (fr *FileResult) Fail(err error) {
	fr.Status = StatusFailed
	fr.Err = err
	if err != nil {
		fr.Error = err.Error()
	}
}

// HasChanges returns true if the file pair changed its full file.
func (fr *FileResult) HasChanges() bool {
	switch fr.Status {
	case StatusSeeded:
		return true
	case StatusMerged:
		return fr.Added > 0 || fr.Replaced > 0
	default:
		return false
	}
}

// Summary returns a human-readable summary of the file result.
func (fr *FileResult) Summary() string {
	switch fr.Status {
	case StatusMerged:
		return fmt.Sprintf("%s: %d added, %d replaced, %d unchanged", fr.Full, fr.Added, fr.Replaced, fr.Unchanged)
	case StatusSeeded:
		return fmt.Sprintf("%s: seeded from %s", fr.Full, fr.Changed)
	case StatusFailed:
		return fmt.Sprintf("%s: failed: %s", fr.Changed, fr.Error)
	default:
		return fmt.Sprintf("%s: nothing to merge", fr.Changed)
	}
}

// Count returns the number of files with the given status.
func (sr *Result) Count(status Status) int {
	n := 0
	for _, f := range sr.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// TotalChanges returns the number of added and replaced elements plus
// the number of seeded files.
func (sr *Result) TotalChanges() int {
	total := 0
	for _, f := range sr.Files {
		total += f.Added + f.Replaced
		if f.Status == StatusSeeded {
			total++
		}
	}
	return total
}

// HasChanges returns true if the sync result contains any changes.
func (sr *Result) HasChanges() bool {
	return sr.TotalChanges() > 0
}

// Failed returns the failed file results.
func (sr *Result) Failed() []*FileResult {
	var failed []*FileResult
	for _, f := range sr.Files {
		if f.Status == StatusFailed {
			failed = append(failed, f)
		}
	}
	return failed
}

// Err aggregates the per-file failures into a BatchError, or returns nil.
func (sr *Result) Err() error {
	failed := sr.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, f := range failed {
		errs = append(errs, f.Err)
	}
	return &errors.BatchError{Operation: "sync", Errs: errs}
}

// Duration returns how long the run took.
func (sr *Result) Duration() time.Duration {
	if sr.StartedAt.IsZero() || sr.FinishedAt.IsZero() {
		return 0
	}
	return sr.FinishedAt.Time.Sub(sr.StartedAt.Time)
}

// ByType aggregates file results per metadata type, in type order.
func (sr *Result) ByType() []TypeSummary {
	summaries := make(map[string]*TypeSummary, len(sr.Types))
	order := append([]string(nil), sr.Types...)
	for _, name := range order {
		summaries[name] = &TypeSummary{Type: name}
	}

	for _, f := range sr.Files {
		s, ok := summaries[f.Type]
		if !ok {
			s = &TypeSummary{Type: f.Type}
			summaries[f.Type] = s
			order = append(order, f.Type)
		}
		s.Files++
		s.Added += f.Added
		s.Replaced += f.Replaced
		switch f.Status {
		case StatusMerged:
			s.Merged++
		case StatusSeeded:
			s.Seeded++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}

	out := make([]TypeSummary, 0, len(order))
	for _, name := range order {
		out = append(out, *summaries[name])
	}
	return out
}

// Summary returns a human-readable summary of the sync result.
func (sr *Result) Summary() string {
	var parts []string
	if sr.DryRun {
		parts = append(parts, "(Dry run)")
	}
	if sr.Reformat {
		parts = append(parts, "(Reformat)")
	}

	summary := fmt.Sprintf("%d files: %d merged, %d seeded, %d skipped, %d failed",
		len(sr.Files), sr.Count(StatusMerged), sr.Count(StatusSeeded), sr.Count(StatusSkipped), sr.Count(StatusFailed))
	if !sr.HasChanges() {
		summary = "No changes detected; " + summary
	}
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}
	return summary
}

// LabelsResult represents the result of a label removal run.
type LabelsResult struct {
	Manifest string `json:"manifest" yaml:"manifest"`
	File     string `json:"file" yaml:"file"`

	Requested []string `json:"requested" yaml:"requested"`
	Removed   []string `json:"removed" yaml:"removed"`
	Missing   []string `json:"missing" yaml:"missing"`

	// Skipped is true when the manifest or the labels file was absent, or
	// the manifest named no labels.
	Skipped bool `json:"skipped" yaml:"skipped"`
	Written bool `json:"written" yaml:"written"`

	DryRun     bool     `json:"dry_run" yaml:"dry_run"`
	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`

	Err   error  `json:"-" yaml:"-"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Fail records err as the reason the labels file was left alone.
func (lr *LabelsResult) Fail(err error) {
	lr.Err = err
	if err != nil {
		lr.Error = err.Error()
	}
}

// Summary returns a human-readable summary of the label removal.
func (lr *LabelsResult) Summary() string {
	if lr.Err != nil {
		return fmt.Sprintf("Label removal failed: %s", lr.Error)
	}
	if lr.Skipped {
		return "No labels to remove"
	}
	missing := append([]string(nil), lr.Missing...)
	sort.Strings(missing)
	summary := fmt.Sprintf("%d of %d labels removed from %s", len(lr.Removed), len(lr.Requested), lr.File)
	if len(missing) > 0 {
		summary += fmt.Sprintf(" (not found: %s)", strings.Join(missing, ", "))
	}
	if lr.DryRun {
		summary += " (Dry run)"
	}
	return summary
}
