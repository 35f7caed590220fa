// Package metadata loads and writes metadata XML documents.
//
// A Document wraps an ordered etree element tree. Parsing normalizes the
// governing namespace to the default (unprefixed) form so that element
// tags are always local names. Writing always produces the canonical form:
// a single XML declaration, the root element with 4-space indentation and
// double-quoted attributes, and nothing else at the top level.
package metadata

import (
	"github.com/beevik/etree"

	"github.com/agentstation/fullmeta/pkg/errors"
)

// Document is a parsed metadata file.
type Document struct {
	doc       *etree.Document
	namespace string
}

// Parse parses data into a Document. Elements bound to namespace through a
// prefix are rewritten to the default namespace.
func Parse(data []byte, namespace string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &errors.ParseError{
			Format:  "xml",
			Message: err.Error(),
			Err:     err,
		}
	}

	root := doc.Root()
	if root == nil {
		return nil, &errors.ParseError{
			Format:  "xml",
			Message: "document has no root element",
		}
	}

	normalizeNamespace(root, namespace)

	return &Document{doc: doc, namespace: namespace}, nil
}

// NewDocument creates an empty document with the given root tag bound to
// namespace.
func NewDocument(rootTag, namespace string) *Document {
	doc := etree.NewDocument()
	root := doc.CreateElement(rootTag)
	if namespace != "" {
		root.CreateAttr("xmlns", namespace)
	}
	return &Document{doc: doc, namespace: namespace}
}

// Root returns the root element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Namespace returns the governing namespace URI.
func (d *Document) Namespace() string {
	return d.namespace
}

// Children returns the root's child elements in document order.
func (d *Document) Children() []*etree.Element {
	return d.doc.Root().ChildElements()
}

// Append adds e as the last child of the root, detaching it from any
// previous parent.
func (d *Document) Append(e *etree.Element) {
	d.doc.Root().AddChild(e)
}

// Remove detaches e from the root. It reports whether e was a root child.
func (d *Document) Remove(e *etree.Element) bool {
	return d.doc.Root().RemoveChild(e) != nil
}

// SetChildren replaces the root's children with elems, in order. Comments
// and text between root children are discarded.
func (d *Document) SetChildren(elems []*etree.Element) {
	root := d.doc.Root()
	for len(root.Child) > 0 {
		root.RemoveChildAt(len(root.Child) - 1)
	}
	for _, e := range elems {
		root.AddChild(e)
	}
}

// Len returns the number of root child elements.
func (d *Document) Len() int {
	return len(d.Children())
}

// Copy returns a deep copy of the document.
func (d *Document) Copy() *Document {
	return &Document{doc: d.doc.Copy(), namespace: d.namespace}
}

// normalizeNamespace moves every element and attribute bound to uri
// through a prefix into the default namespace, then drops the prefix
// declarations and makes sure the root declares uri as its default.
func normalizeNamespace(root *etree.Element, uri string) {
	if uri == "" {
		return
	}

	type attrRef struct {
		elem  *etree.Element
		index int
	}

	var elems []*etree.Element
	var attrs []attrRef
	walk(root, func(e *etree.Element) {
		if e.Space != "" && e.NamespaceURI() == uri {
			elems = append(elems, e)
		}
		for i := range e.Attr {
			a := &e.Attr[i]
			if a.Space != "" && a.Space != "xmlns" && a.NamespaceURI() == uri {
				attrs = append(attrs, attrRef{elem: e, index: i})
			}
		}
	})

	for _, e := range elems {
		e.Space = ""
	}
	for _, ref := range attrs {
		ref.elem.Attr[ref.index].Space = ""
	}

	walk(root, func(e *etree.Element) {
		kept := e.Attr[:0]
		for _, a := range e.Attr {
			if a.Space == "xmlns" && a.Value == uri {
				continue
			}
			kept = append(kept, a)
		}
		e.Attr = kept
	})

	if defaultNamespace(root) == "" {
		root.CreateAttr("xmlns", uri)
	}
}

// defaultNamespace returns the xmlns attribute value declared on e itself.
func defaultNamespace(e *etree.Element) string {
	for _, a := range e.Attr {
		if a.Space == "" && a.Key == "xmlns" {
			return a.Value
		}
	}
	return ""
}

func walk(e *etree.Element, fn func(*etree.Element)) {
	fn(e)
	for _, child := range e.ChildElements() {
		walk(child, fn)
	}
}
