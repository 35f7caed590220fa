package reconcile

import (
	"context"
	"strings"

	"github.com/agentstation/fullmeta/pkg/constants"
	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/logging"
	"github.com/agentstation/fullmeta/pkg/metadata"
)

// RemoveLabels removes every top-level labels element whose fullName
// matches one of names. Names that match nothing are logged and reported
// as missing. The order of the remaining labels is not changed.
func RemoveLabels(ctx context.Context, doc *metadata.Document, names []string) *LabelResult {
	logger := logging.FromContext(ctx)
	result := &LabelResult{}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		removed := false
		for _, child := range doc.Children() {
			if child.Tag != constants.LabelsTag {
				continue
			}
			fullName, ok := metadata.ChildText(child, constants.LabelNameTag)
			if !ok || strings.TrimSpace(fullName) != name {
				continue
			}
			doc.Remove(child)
			removed = true
		}

		if !removed {
			logger.Warn().
				Err(errors.NewNotFoundError("label", name)).
				Str("label", name).
				Msg("Label is not in the full labels file")
			result.Missing = append(result.Missing, name)
			continue
		}

		logger.Debug().Str("label", name).Msg("Removed label")
		result.Removed = append(result.Removed, name)
	}

	return result
}
