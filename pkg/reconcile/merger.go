package reconcile

import (
	"context"

	"github.com/agentstation/fullmeta/pkg/identity"
	"github.com/agentstation/fullmeta/pkg/logging"
	"github.com/agentstation/fullmeta/pkg/metadata"
)

// Merge merges changed into full.
//
// Colliding full elements are removed for every key of the changed
// document, including all duplicates already present in full, and the
// changed element is appended in the changed document's key order. When
// changed carries no mergeable element the full document is not touched.
func (m *merger) Merge(ctx context.Context, full, changed *metadata.Document) (*Result, error) {
	logger := logging.FromContext(ctx)
	resolver := identity.NewResolver(m.mapping, identity.WithLogger(logger))

	fullIndex := identity.NewIndex(resolver, full.Children())
	changedIndex := identity.NewIndex(resolver, changed.Children())

	result := &Result{
		Malformed: fullIndex.Malformed() + changedIndex.Malformed(),
	}

	if changedIndex.Len() == 0 {
		logger.Info().Msg("No mergeable elements in changed file, skipping")
		result.Skipped = true
		return result, nil
	}

	for _, key := range changedIndex.Duplicates() {
		logger.Warn().
			Str("key", key.String()).
			Int("count", len(changedIndex.Elements(key))).
			Msg("Duplicate identity in changed file, keeping the last occurrence")
		result.Duplicates = append(result.Duplicates, key)
	}

	result.Changeset = m.differ.Indexes(fullIndex, changedIndex)

	for _, key := range changedIndex.Keys() {
		for _, existing := range fullIndex.Elements(key) {
			if full.Remove(existing) {
				result.Removed++
			}
		}
		full.Append(changedIndex.Last(key))
		result.Appended++
	}

	Sort(full, m.mapping)

	logger.Debug().
		Int("added", result.Added()).
		Int("replaced", result.Replaced()).
		Int("unchanged", result.Unchanged()).
		Int("removed", result.Removed).
		Msg("Merged changed elements")

	return result, nil
}
