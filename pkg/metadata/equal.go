package metadata

import (
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// Equal reports whether a and b are structurally equal: same local tag,
// same attribute set, same trimmed text and pairwise-equal child elements
// in order. Comments and indentation are ignored.
func Equal(a, b *etree.Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag {
		return false
	}
	if !equalAttrs(a, b) {
		return false
	}
	if strings.TrimSpace(a.Text()) != strings.TrimSpace(b.Text()) {
		return false
	}

	ac, bc := a.ChildElements(), b.ChildElements()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func equalAttrs(a, b *etree.Element) bool {
	as, bs := attrStrings(a), attrStrings(b)
	return slices.Equal(as, bs)
}

// attrStrings returns the element's non-namespace attributes as sorted
// key=value strings.
func attrStrings(e *etree.Element) []string {
	out := make([]string, 0, len(e.Attr))
	for _, attr := range e.Attr {
		if attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") {
			continue
		}
		out = append(out, attr.Key+"="+attr.Value)
	}
	slices.Sort(out)
	return out
}

// ChildText returns the text of the first child element of e with the
// given local tag, and whether such a child exists.
func ChildText(e *etree.Element, tag string) (string, bool) {
	for _, child := range e.ChildElements() {
		if child.Tag == tag {
			return child.Text(), true
		}
	}
	return "", false
}
