// Package fullmeta reconciles changed Salesforce metadata files into their
// full-metadata copies.
//
// A source-tracked retrieve only carries the elements that changed. fullmeta
// keeps a second tree with the complete configuration of every file: each
// changed file is merged into its full counterpart by identity key, new
// full files are seeded from the changed file, and every rewritten full
// file is serialized in one canonical form.
//
// Example usage:
//
//	client, err := fullmeta.New(
//	    fullmeta.WithChangedDir("force-app/main/default"),
//	    fullmeta.WithFullDir("full-metadata"),
//	    fullmeta.WithMetadataConfigPath("cicd/config/metadata_config.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.OnFileFailed(func(fr *sync.FileResult, err error) {
//	    log.Printf("%s: %v", fr.Changed, err)
//	})
//
//	result, err := client.Sync(ctx, sync.WithTypes("profiles"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
//	// Drop the labels listed in the destructive changes manifest
//	labels, err := client.RemoveLabels(ctx)
package fullmeta

import (
	"path/filepath"

	"github.com/agentstation/fullmeta/internal/discovery"
	"github.com/agentstation/fullmeta/pkg/config"
	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/logging"
)

// Client reconciles a changed metadata tree into a full metadata tree.
type Client interface {

	// Syncer merges changed files into full files
	Syncer

	// LabelRemover subtracts deleted labels from the full labels file
	LabelRemover

	// Hooks provides access to per-file callback registration
	Hooks

	// Metadata returns the metadata type configuration in use
	Metadata() *config.Config
}

// client is the internal implementation of the Client interface.
type client struct {
	options  *options
	metadata *config.Config
	finder   *discovery.Finder
	hooks    *hooks
}

// New creates a new Client. The metadata type configuration is loaded and
// validated here, so a returned error is always fatal.
func New(opts ...Option) (Client, error) {
	options, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	if err := options.validate(); err != nil {
		return nil, err
	}

	metadata := options.metadata
	if metadata == nil {
		log := logging.Debug()
		log.Str("path", options.metadataConfigPath).Msg("Loading metadata type configuration")
		if metadata, err = config.Load(options.fs, options.metadataConfigPath); err != nil {
			return nil, err
		}
	} else if err := metadata.Validate(); err != nil {
		return nil, err
	}

	logging.Debug().
		Strs("types", metadata.Names()).
		Str("changed_dir", options.changedDir).
		Str("full_dir", options.fullDir).
		Msg("Metadata types configured")

	return &client{
		options:  options,
		metadata: metadata,
		finder:   discovery.New(options.fs, options.changedDir, options.fullDir),
		hooks:    newHooks(),
	}, nil
}

// Metadata returns the metadata type configuration in use.
func (c *client) Metadata() *config.Config {
	return c.metadata
}

func (o *options) validate() error {
	if o.changedDir == "" {
		return errors.NewValidationError("changed_dir", o.changedDir, "changed metadata directory is required")
	}
	if o.fullDir == "" {
		return errors.NewValidationError("full_dir", o.fullDir, "full metadata directory is required")
	}
	if filepath.Clean(o.changedDir) == filepath.Clean(o.fullDir) {
		return errors.NewValidationError("full_dir", o.fullDir, "changed and full metadata directories must differ")
	}
	if o.namespace == "" {
		return errors.NewValidationError("namespace", o.namespace, "metadata namespace is required")
	}
	return nil
}
