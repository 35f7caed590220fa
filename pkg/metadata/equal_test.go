package metadata_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fullmeta/pkg/metadata"
)

func element(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc.Root()
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "identical",
			a:    `<fieldPermissions><field>Account.Name</field><readable>true</readable></fieldPermissions>`,
			b:    `<fieldPermissions><field>Account.Name</field><readable>true</readable></fieldPermissions>`,
			want: true,
		},
		{
			name: "indentation ignored",
			a:    "<fieldPermissions>\n    <field>Account.Name</field>\n</fieldPermissions>",
			b:    `<fieldPermissions><field>Account.Name</field></fieldPermissions>`,
			want: true,
		},
		{
			name: "different text",
			a:    `<fieldPermissions><field>Account.Name</field><readable>true</readable></fieldPermissions>`,
			b:    `<fieldPermissions><field>Account.Name</field><readable>false</readable></fieldPermissions>`,
			want: false,
		},
		{
			name: "child order matters",
			a:    `<x><a>1</a><b>2</b></x>`,
			b:    `<x><b>2</b><a>1</a></x>`,
			want: false,
		},
		{
			name: "attribute order ignored",
			a:    `<x a="1" b="2"/>`,
			b:    `<x b="2" a="1"/>`,
			want: true,
		},
		{
			name: "different tag",
			a:    `<x/>`,
			b:    `<y/>`,
			want: false,
		},
		{
			name: "extra child",
			a:    `<x><a>1</a></x>`,
			b:    `<x><a>1</a><a>1</a></x>`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metadata.Equal(element(t, tt.a), element(t, tt.b)))
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.True(t, metadata.Equal(nil, nil))
		assert.False(t, metadata.Equal(element(t, "<x/>"), nil))
	})
}

func TestChildText(t *testing.T) {
	e := element(t, `<labels><fullName>Greeting</fullName><value>Hi</value></labels>`)

	text, ok := metadata.ChildText(e, "fullName")
	assert.True(t, ok)
	assert.Equal(t, "Greeting", text)

	_, ok = metadata.ChildText(e, "language")
	assert.False(t, ok)
}
