package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/fullmeta/pkg/logging"
)

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithMetadataType(ctx, "profiles")
	ctx = logging.WithFile(ctx, "force-app/main/default/profiles/Admin.profile-meta.xml", "full-metadata/profiles/Admin.profile-meta.xml")

	logging.FromContext(ctx).Info().Msg("merged")

	testLogger.AssertContains(t, `"type":"profiles"`)
	testLogger.AssertContains(t, `"changed":"force-app/main/default/profiles/Admin.profile-meta.xml"`)
	testLogger.AssertContains(t, `"full":"full-metadata/profiles/Admin.profile-meta.xml"`)
	testLogger.AssertContains(t, "merged")
}

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext without logger returns default", func(t *testing.T) {
		assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly
		assert.Equal(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("WithLogger nil falls back to default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Equal(t, logging.Default(), logging.Ctx(ctx))
	})

	t.Run("WithRunID stores id and tags logger", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithRunID(ctx, "run-42")

		assert.Equal(t, "run-42", logging.RunID(ctx))
		logging.Ctx(ctx).Info().Msg("start")
		testLogger.AssertContains(t, `"run_id":"run-42"`)
	})

	t.Run("RunID empty when unset", func(t *testing.T) {
		assert.Empty(t, logging.RunID(context.Background()))
	})

	t.Run("WithOperation and WithError", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithOperation(ctx, "remove-labels")
		ctx = logging.WithError(ctx, errors.New("label Greeting not found"))

		logging.Ctx(ctx).Warn().Msg("skipped")
		testLogger.AssertContains(t, `"operation":"remove-labels"`)
		testLogger.AssertContains(t, `"error":"label Greeting not found"`)
		assert.Len(t, testLogger.Warnings(), 1)
	})

	t.Run("WithError nil is a no-op", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, logging.WithError(ctx, nil))
	})
}

func TestCaptureLoggingForTest(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	logging.Warn().Str("key", "labels=Greeting").Msg("label not present")
	logging.Info().Msg("done")

	assert.Equal(t, 2, captured.Count())
	assert.Len(t, captured.Warnings(), 1)
	captured.AssertNotContains(t, "panic")

	captured.Clear()
	assert.Empty(t, captured.Lines())
}
