package identity

import "github.com/beevik/etree"

// Index maps keys to the mergeable elements carrying them. Keys are kept
// in first-seen document order.
type Index struct {
	keys      []Key
	elems     map[Key][]*etree.Element
	malformed int
}

// NewIndex resolves every element in elems and indexes the mergeable ones.
// Malformed elements are counted but not indexed.
func NewIndex(r *Resolver, elems []*etree.Element) *Index {
	idx := &Index{elems: make(map[Key][]*etree.Element)}
	for _, e := range elems {
		if !r.mapping.Mergeable(e.Tag) {
			continue
		}
		key, ok := r.Resolve(e)
		if !ok {
			idx.malformed++
			continue
		}
		if _, seen := idx.elems[key]; !seen {
			idx.keys = append(idx.keys, key)
		}
		idx.elems[key] = append(idx.elems[key], e)
	}
	return idx
}

// Keys returns the indexed keys in first-seen order.
func (i *Index) Keys() []Key {
	return i.keys
}

// Len returns the number of distinct keys.
func (i *Index) Len() int {
	return len(i.keys)
}

// Has reports whether key is indexed.
func (i *Index) Has(key Key) bool {
	_, ok := i.elems[key]
	return ok
}

// Elements returns every element carrying key, in document order.
func (i *Index) Elements(key Key) []*etree.Element {
	return i.elems[key]
}

// Last returns the last element carrying key, or nil.
func (i *Index) Last(key Key) *etree.Element {
	elems := i.elems[key]
	if len(elems) == 0 {
		return nil
	}
	return elems[len(elems)-1]
}

// Malformed returns how many mergeable elements lacked an identifier.
func (i *Index) Malformed() int {
	return i.malformed
}

// Duplicates returns the keys carried by more than one element.
func (i *Index) Duplicates() []Key {
	var dups []Key
	for _, key := range i.keys {
		if len(i.elems[key]) > 1 {
			dups = append(dups, key)
		}
	}
	return dups
}
