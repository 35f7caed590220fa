package fullmeta

import (
	"context"
	"io/fs"

	"github.com/agentstation/utc"

	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/logging"
	"github.com/agentstation/fullmeta/pkg/manifest"
	"github.com/agentstation/fullmeta/pkg/metadata"
	"github.com/agentstation/fullmeta/pkg/reconcile"
	pkgsync "github.com/agentstation/fullmeta/pkg/sync"
)

// LabelRemover subtracts deleted custom labels from the full labels file.
type LabelRemover interface {
	// RemoveLabels removes the labels listed in the destructive changes
	// manifest. Names absent from the labels file are warned about and
	// reported as missing. Read and parse failures are recorded in the
	// result; the returned error is reserved for invalid options.
	RemoveLabels(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.LabelsResult, error)
}

// RemoveLabels rewrites the full labels file without the labels the
// manifest names. The file is rewritten in canonical form even when no
// label matched.
func (c *client) RemoveLabels(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.LabelsResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := pkgsync.Defaults().Apply(opts...)
	if options.Timeout < 0 {
		return nil, errors.NewValidationError("Timeout", options.Timeout, "timeout must be non-negative")
	}
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	manifestPath := options.Manifest
	if manifestPath == "" {
		manifestPath = c.options.manifest
	}
	labelsPath := c.options.labelsPath(options.LabelsFile)

	ctx = c.context(ctx)
	ctx = logging.WithOperation(ctx, "labels")
	ctx = logging.WithFields(ctx, map[string]any{"manifest": manifestPath, "full": labelsPath})
	logger := logging.FromContext(ctx)

	result := &pkgsync.LabelsResult{
		Manifest:  manifestPath,
		File:      labelsPath,
		DryRun:    options.DryRun,
		StartedAt: utc.Now(),
	}
	defer func() { result.FinishedAt = utc.Now() }()

	pkg, err := manifest.Load(c.options.fs, manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info().Msg("No destructive changes manifest, nothing to remove")
			result.Skipped = true
			return result, nil
		}
		result.Fail(err)
		logger.Error().Err(err).Msg("Could not read destructive changes manifest")
		return result, nil
	}

	result.Requested = pkg.Labels()
	if len(result.Requested) == 0 {
		logger.Info().Msg("Manifest lists no custom labels, nothing to remove")
		result.Skipped = true
		return result, nil
	}

	exists, err := metadata.Exists(c.options.fs, labelsPath)
	if err != nil {
		result.Fail(err)
		logger.Error().Err(err).Msg("Could not check full labels file")
		return result, nil
	}
	if !exists {
		logger.Warn().
			Err(errors.NewNotFoundError("labels file", labelsPath)).
			Msg("Full labels file not found, nothing to remove")
		result.Skipped = true
		result.Missing = result.Requested
		return result, nil
	}

	doc, err := metadata.Load(c.options.fs, labelsPath, c.options.namespace)
	if err != nil {
		result.Fail(err)
		logger.Error().Err(err).Msg("Could not parse full labels file")
		return result, nil
	}

	removed := reconcile.RemoveLabels(ctx, doc, result.Requested)
	result.Removed = removed.Removed
	result.Missing = removed.Missing
	result.Written = true

	if options.DryRun {
		logger.Info().
			Int("removed", len(result.Removed)).
			Int("missing", len(result.Missing)).
			Msg("Dry run, labels file not written")
		return result, nil
	}

	if err := metadata.Save(c.options.fs, labelsPath, doc); err != nil {
		result.Written = false
		result.Fail(err)
		logger.Error().Err(err).Msg("Could not write full labels file")
		return result, nil
	}

	logger.Info().
		Int("removed", len(result.Removed)).
		Int("missing", len(result.Missing)).
		Msg("Removed labels from full labels file")
	return result, nil
}
