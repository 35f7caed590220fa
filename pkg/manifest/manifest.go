// Package manifest reads Metadata API package manifests such as
// destructiveChanges.xml.
//
// XML Structure:
//
//	<Package xmlns="http://soap.sforce.com/2006/04/metadata">
//	  <types>
//	    <members>Greeting</members>
//	    <name>CustomLabel</name>
//	  </types>
//	  <version>61.0</version>
//	</Package>
package manifest

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/fullmeta/pkg/constants"
	"github.com/agentstation/fullmeta/pkg/errors"
)

// Package is a parsed manifest. Element names are matched by local name,
// so both namespaced and plain manifests decode.
type Package struct {
	XMLName xml.Name `xml:"Package"`
	Types   []Types  `xml:"types"`
	Version string   `xml:"version"`
}

// Types is one <types> block: a metadata type name and its members.
type Types struct {
	Members []string `xml:"members"`
	Name    string   `xml:"name"`
}

// Parse decodes a manifest.
func Parse(data []byte) (*Package, error) {
	var pkg Package
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&pkg); err != nil {
		return nil, &errors.ParseError{
			Format:  "xml",
			Message: err.Error(),
			Err:     err,
		}
	}
	return &pkg, nil
}

// Load reads and decodes the manifest at path. A missing file yields an
// IOError wrapping fs.ErrNotExist.
func Load(fsys afero.Fs, path string) (*Package, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	pkg, err := Parse(data)
	if err != nil {
		if parseErr, ok := err.(*errors.ParseError); ok {
			parseErr.File = path
		}
		return nil, err
	}
	return pkg, nil
}

// HasType reports whether the manifest has a types block for name.
func (p *Package) HasType(name string) bool {
	for _, t := range p.Types {
		if strings.TrimSpace(t.Name) == name {
			return true
		}
	}
	return false
}

// Members returns the trimmed, non-empty members of every types block
// named typeName, in manifest order.
func (p *Package) Members(typeName string) []string {
	var members []string
	for _, t := range p.Types {
		if strings.TrimSpace(t.Name) != typeName {
			continue
		}
		for _, m := range t.Members {
			if m = strings.TrimSpace(m); m != "" {
				members = append(members, m)
			}
		}
	}
	return members
}

// Labels returns the CustomLabel members.
func (p *Package) Labels() []string {
	return p.Members(constants.CustomLabelType)
}
