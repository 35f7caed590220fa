// Package sync provides options and results for reconciling changed
// metadata files into their full-metadata copies.
package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/fullmeta/internal/matcher"
	"github.com/agentstation/fullmeta/pkg/config"
	"github.com/agentstation/fullmeta/pkg/errors"
)

// Options controls one Sync or RemoveLabels run.
type Options struct {
	// Orchestration control
	DryRun  bool          // Compute and report, write nothing
	Timeout time.Duration // Timeout for the whole batch, zero means none

	// Type selection
	Types []string // Metadata type names or patterns (empty means all)

	// Output control
	Reformat bool // Rewrite full files in canonical form even when nothing merged

	// Label removal
	Manifest   string // Destructive changes manifest, overrides the client default
	LabelsFile string // Full labels file, overrides the client default
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:     false,
		Timeout:    0,
		Types:      nil,
		Reformat:   false,
		Manifest:   "",
		LabelsFile: "",
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks the options against the metadata configuration and
// returns the configuration restricted to the selected types. Type
// selectors may be glob or regex patterns.
func (s *Options) Validate(cfg *config.Config) (*config.Config, error) {
	if s.Timeout < 0 {
		return nil, &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	for _, name := range s.Types {
		if strings.TrimSpace(name) == "" {
			return nil, &errors.ValidationError{
				Field:   "Types",
				Value:   s.Types,
				Message: fmt.Sprintf("empty metadata type name in %v", s.Types),
			}
		}
	}

	types, err := matcher.Expand(s.Types, cfg.Names())
	if err != nil {
		return nil, err
	}
	return cfg.Select(types...)
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the batch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithTypes restricts a sync to the named metadata types.
func WithTypes(types ...string) Option {
	return func(opts *Options) {
		opts.Types = types
	}
}

// WithReformat configures whether full files are rewritten in canonical
// form even when the changed file contributed nothing.
func WithReformat(reformat bool) Option {
	return func(opts *Options) {
		opts.Reformat = reformat
	}
}

// WithManifest overrides the destructive changes manifest path.
func WithManifest(path string) Option {
	return func(opts *Options) {
		opts.Manifest = path
	}
}

// WithLabelsFile overrides the full labels file path.
func WithLabelsFile(path string) Option {
	return func(opts *Options) {
		opts.LabelsFile = path
	}
}
