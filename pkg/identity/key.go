// Package identity computes the identity of mergeable metadata elements.
//
// Every mergeable child of a metadata document is identified by a Key: its
// local tag plus the text of one designated grandchild (for example a
// fieldPermissions element is identified by its field child). Two elements
// with the same Key describe the same setting, so the later one replaces
// the earlier during a merge.
package identity

import (
	"cmp"
	"strings"
)

// Key identifies a mergeable element. The zero Key is the sentinel for
// elements that are not mergeable.
type Key struct {
	Tag   string
	Value string
}

// Sentinel is returned for non-mergeable or malformed elements.
var Sentinel = Key{}

// IsSentinel reports whether k is the sentinel key.
func (k Key) IsSentinel() bool {
	return k == Sentinel
}

// String returns "tag=value".
func (k Key) String() string {
	return k.Tag + "=" + k.Value
}

// Compare orders keys by tag, then by value.
func Compare(a, b Key) int {
	if c := cmp.Compare(a.Tag, b.Tag); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// Less reports whether k sorts before other.
func (k Key) Less(other Key) bool {
	return Compare(k, other) < 0
}

// ParseKey parses the "tag=value" form produced by String.
func ParseKey(s string) (Key, bool) {
	tag, value, ok := strings.Cut(s, "=")
	if !ok || tag == "" {
		return Sentinel, false
	}
	return Key{Tag: tag, Value: value}, true
}
