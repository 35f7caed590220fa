package identity

import (
	"maps"
	"slices"

	"github.com/agentstation/fullmeta/pkg/constants"
)

// Mapping maps a mergeable local tag to the local tag of the child holding
// its identifier, e.g. fieldPermissions -> field.
type Mapping map[string]string

// Tags returns the mergeable tags in ascending order.
func (m Mapping) Tags() []string {
	return slices.Sorted(maps.Keys(m))
}

// Mergeable reports whether tag is a mergeable tag.
func (m Mapping) Mergeable(tag string) bool {
	_, ok := m[tag]
	return ok
}

// IdentifierTag returns the identifier child tag for an element with the
// given local tag and number of child elements. A layoutAssignments element
// with more than one child is identified by its recordType instead of its
// layout.
func (m Mapping) IdentifierTag(tag string, childCount int) (string, bool) {
	idTag, ok := m[tag]
	if !ok {
		return "", false
	}
	if tag == constants.LayoutAssignmentsTag && childCount > 1 {
		return constants.RecordTypeTag, true
	}
	return idTag, true
}
