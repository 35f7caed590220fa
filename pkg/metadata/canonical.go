package metadata

import (
	"github.com/beevik/etree"

	"github.com/agentstation/fullmeta/pkg/constants"
)

// Canonicalize rewrites the document into its canonical shape in place:
// one XML declaration followed by the root element, re-indented with
// four spaces. Top-level comments and processing instructions other than
// the declaration are dropped.
func (d *Document) Canonicalize() {
	root := d.doc.Root()

	for len(d.doc.Child) > 0 {
		d.doc.RemoveChildAt(0)
	}
	d.doc.CreateProcInst("xml", `version="`+constants.XMLVersion+`" encoding="`+constants.XMLEncoding+`"`)
	d.doc.AddChild(root)

	// Text keeps &apos; and &quot; escapes, matching retrieved metadata.
	d.doc.WriteSettings = etree.WriteSettings{
		AttrSingleQuote: false,
	}

	settings := etree.NewIndentSettings()
	settings.Spaces = constants.IndentSpaces
	d.doc.IndentWithSettings(settings)
}

// Bytes canonicalizes the document and returns its serialized form.
func (d *Document) Bytes() ([]byte, error) {
	d.Canonicalize()
	return d.doc.WriteToBytes()
}

// String canonicalizes the document and returns its serialized form.
func (d *Document) String() string {
	b, err := d.Bytes()
	if err != nil {
		return ""
	}
	return string(b)
}
