package fullmeta

import (
	"context"
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/fullmeta/internal/discovery"
	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/logging"
	"github.com/agentstation/fullmeta/pkg/metadata"
	"github.com/agentstation/fullmeta/pkg/reconcile"
	pkgsync "github.com/agentstation/fullmeta/pkg/sync"
)

// Syncer merges changed metadata files into their full copies.
type Syncer interface {
	// Sync processes every changed file of the selected types. Per-file
	// failures are recorded in the result and never abort the batch; the
	// returned error is reserved for invalid options and cancellation.
	Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)
}

// Sync processes the selected metadata types in name order and, within a
// type, the changed files in path order.
func (c *client) Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = c.context(ctx)
	ctx = logging.WithOperation(ctx, "sync")
	logger := logging.FromContext(ctx)

	// Step 1: Parse and validate options
	options := pkgsync.Defaults().Apply(opts...)
	selected, err := options.Validate(c.metadata)
	if err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	result := &pkgsync.Result{
		Types:     selected.Names(),
		DryRun:    options.DryRun,
		Reformat:  options.Reformat,
		StartedAt: utc.Now(),
	}

	// Step 3: Process every type, then every changed file
	for _, name := range selected.Names() {
		if err := ctx.Err(); err != nil {
			break
		}

		typeConfig, _ := selected.Get(name)
		typeCtx := logging.WithMetadataType(ctx, name)

		merger, err := reconcile.New(typeConfig.Mapping())
		if err != nil {
			return nil, errors.NewConfigError("metadata config", "type "+name, err)
		}

		pairs, err := c.finder.Find(name, typeConfig.FileGlob)
		if err != nil {
			fr := &pkgsync.FileResult{Type: name}
			fr.Fail(err)
			logging.FromContext(typeCtx).Error().Err(err).Msg("Could not list changed files")
			result.Files = append(result.Files, fr)
			c.hooks.trigger(fr)
			continue
		}

		logging.FromContext(typeCtx).Debug().Int("files", len(pairs)).Msg("Found changed files")

		for _, pair := range pairs {
			if ctx.Err() != nil {
				break
			}
			fr := c.syncPair(typeCtx, merger, pair, options)
			result.Files = append(result.Files, fr)
			c.hooks.trigger(fr)
		}
	}

	result.FinishedAt = utc.Now()

	// Step 4: Log the run summary
	logger.Info().
		Int("merged", result.Count(pkgsync.StatusMerged)).
		Int("seeded", result.Count(pkgsync.StatusSeeded)).
		Int("skipped", result.Count(pkgsync.StatusSkipped)).
		Int("failed", result.Count(pkgsync.StatusFailed)).
		Bool("dry_run", options.DryRun).
		Dur("duration", result.Duration()).
		Msg("Sync completed")

	if err := ctx.Err(); err != nil {
		logger.Warn().Err(err).Msg("Sync interrupted, remaining files were not processed")
		return result, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}

	return result, nil
}

// syncPair seeds or merges one changed file. Every failure, including a
// panic, is recorded in the returned result.
func (c *client) syncPair(ctx context.Context, merger reconcile.Merger, pair discovery.Pair, options *pkgsync.Options) (fr *pkgsync.FileResult) {
	fr = &pkgsync.FileResult{Type: pair.Type, Changed: pair.Changed, Full: pair.Full}
	ctx = logging.WithFile(ctx, pair.Changed, pair.Full)
	logger := logging.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err := errors.NewMergeError(pair.Type, pair.Changed, pair.Full, fmt.Errorf("unexpected failure: %v", r))
			fr.Fail(err)
			logger.Error().Err(err).Msg("Unexpected failure, continuing with next file")
		}
	}()

	fail := func(msg string, err error) *pkgsync.FileResult {
		fr.Fail(err)
		logger.Error().Err(err).Msg(msg)
		return fr
	}

	exists, err := metadata.Exists(c.options.fs, pair.Full)
	if err != nil {
		return fail("Could not check full file", err)
	}

	// A missing full file is seeded with a verbatim copy.
	if !exists {
		fr.Status = pkgsync.StatusSeeded
		fr.Written = true
		if options.DryRun {
			logger.Info().Msg("Full file missing, would seed it from changed file")
			return fr
		}
		if err := metadata.Copy(c.options.fs, pair.Changed, pair.Full); err != nil {
			return fail("Could not seed full file", err)
		}
		logger.Info().Msg("Seeded full file from changed file")
		return fr
	}

	changed, err := metadata.Load(c.options.fs, pair.Changed, c.options.namespace)
	if err != nil {
		return fail("Could not parse changed file, skipping", err)
	}
	full, err := metadata.Load(c.options.fs, pair.Full, c.options.namespace)
	if err != nil {
		return fail("Could not parse full file, skipping", err)
	}

	res, err := merger.Merge(ctx, full, changed)
	if err != nil {
		return fail("Could not merge changed file", errors.NewMergeError(pair.Type, pair.Changed, pair.Full, err))
	}
	fr.Malformed = res.Malformed
	fr.Duplicates = len(res.Duplicates)

	if res.Skipped {
		fr.Status = pkgsync.StatusSkipped
		if !options.Reformat {
			return fr
		}
		reconcile.Sort(full, merger.Mapping())
	} else {
		fr.Status = pkgsync.StatusMerged
		fr.Added = res.Added()
		fr.Replaced = res.Replaced()
		fr.Unchanged = res.Unchanged()
		fr.Removed = res.Removed
	}
	fr.Written = true

	if options.DryRun {
		logger.Info().
			Int("added", fr.Added).
			Int("replaced", fr.Replaced).
			Msg("Dry run, full file not written")
		return fr
	}

	if err := metadata.Save(c.options.fs, pair.Full, full); err != nil {
		return fail("Could not write full file", err)
	}

	if res.Skipped {
		logger.Info().Msg("Rewrote full file in canonical form")
		return fr
	}
	logger.Info().
		Int("added", fr.Added).
		Int("replaced", fr.Replaced).
		Int("unchanged", fr.Unchanged).
		Msg("Merged changed file into full file")
	return fr
}

// context attaches the client logger unless ctx already carries one.
func (c *client) context(ctx context.Context) context.Context {
	if c.options.logger == nil {
		return ctx
	}
	if logging.FromContext(ctx) != logging.Default() {
		return ctx
	}
	return logging.WithLogger(ctx, c.options.logger)
}
