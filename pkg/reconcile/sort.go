package reconcile

import (
	"slices"

	"github.com/beevik/etree"

	"github.com/agentstation/fullmeta/pkg/identity"
	"github.com/agentstation/fullmeta/pkg/logging"
	"github.com/agentstation/fullmeta/pkg/metadata"
)

// Sort orders the root's children ascending by identity key. Children that
// are not mergeable sort as (tag, ""); ties keep document order.
func Sort(doc *metadata.Document, mapping identity.Mapping) {
	resolver := identity.NewResolver(mapping, identity.WithLogger(logging.NewNopLogger()))

	type keyed struct {
		key  identity.Key
		elem *etree.Element
	}

	children := doc.Children()
	items := make([]keyed, len(children))
	for i, child := range children {
		items[i] = keyed{key: resolver.SortKey(child), elem: child}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return identity.Compare(a.key, b.key)
	})

	sorted := make([]*etree.Element, len(items))
	for i, item := range items {
		sorted[i] = item.elem
	}
	doc.SetChildren(sorted)
}
