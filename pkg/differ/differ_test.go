package differ_test

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fullmeta/pkg/differ"
	"github.com/agentstation/fullmeta/pkg/identity"
	"github.com/agentstation/fullmeta/pkg/logging"
)

var mapping = identity.Mapping{
	"fieldPermissions":  "field",
	"objectPermissions": "object",
}

func index(t *testing.T, xml string) *identity.Index {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	r := identity.NewResolver(mapping, identity.WithLogger(logging.NewNopLogger()))
	return identity.NewIndex(r, doc.Root().ChildElements())
}

const fullProfile = `<Profile>
    <fieldPermissions><editable>true</editable><field>Account.Name</field><readable>true</readable></fieldPermissions>
    <fieldPermissions><editable>false</editable><field>Account.Site</field><readable>true</readable></fieldPermissions>
    <objectPermissions><allowRead>true</allowRead><object>Account</object></objectPermissions>
</Profile>`

func TestIndexes(t *testing.T) {
	full := index(t, fullProfile)
	changed := index(t, `<Profile>
    <fieldPermissions><editable>true</editable><field>Account.Name</field><readable>false</readable></fieldPermissions>
    <fieldPermissions><editable>false</editable><field>Account.Phone</field><readable>true</readable></fieldPermissions>
    <objectPermissions>
        <allowRead>true</allowRead>
        <object>Account</object>
    </objectPermissions>
</Profile>`)

	cs := differ.New().Indexes(full, changed)

	require.Len(t, cs.Added, 1)
	assert.Equal(t, identity.Key{Tag: "fieldPermissions", Value: "Account.Phone"}, cs.Added[0].Key)
	assert.Equal(t, differ.ChangeTypeAdd, cs.Added[0].Type)
	assert.Empty(t, cs.Added[0].Existing)

	require.Len(t, cs.Replaced, 1)
	replaced := cs.Replaced[0]
	assert.Equal(t, identity.Key{Tag: "fieldPermissions", Value: "Account.Name"}, replaced.Key)
	assert.Len(t, replaced.Existing, 1)
	assert.Equal(t, []differ.FieldChange{{Path: "readable", OldValue: "true", NewValue: "false"}}, replaced.Fields)

	require.Len(t, cs.Unchanged, 1)
	assert.Equal(t, identity.Key{Tag: "objectPermissions", Value: "Account"}, cs.Unchanged[0].Key)

	assert.Equal(t, differ.ChangesetSummary{
		Added:        1,
		Replaced:     1,
		Unchanged:    1,
		Preserved:    1,
		TotalChanges: 2,
	}, cs.Summary)
	assert.True(t, cs.HasChanges())
	assert.False(t, cs.IsEmpty())
	assert.Len(t, cs.Changes(), 3)
}

func TestIndexesEmptyChanged(t *testing.T) {
	cs := differ.New().Indexes(index(t, fullProfile), index(t, `<Profile><custom>true</custom></Profile>`))
	assert.True(t, cs.IsEmpty())
	assert.False(t, cs.HasChanges())
	assert.Equal(t, 3, cs.Summary.Preserved)
	assert.Equal(t, "No changes detected", cs.String())
}

func TestIndexesDuplicateFullKeysAreReplaced(t *testing.T) {
	full := index(t, `<Profile>
    <objectPermissions><allowRead>true</allowRead><object>Account</object></objectPermissions>
    <objectPermissions><allowRead>true</allowRead><object>Account</object></objectPermissions>
</Profile>`)
	changed := index(t, `<Profile><objectPermissions><allowRead>true</allowRead><object>Account</object></objectPermissions></Profile>`)

	cs := differ.New().Indexes(full, changed)
	require.Len(t, cs.Replaced, 1)
	assert.Len(t, cs.Replaced[0].Existing, 2)
	assert.Empty(t, cs.Replaced[0].Fields)
}

func TestOptions(t *testing.T) {
	full := index(t, `<Profile><fieldPermissions><field>Account.Name</field><readable>true</readable></fieldPermissions></Profile>`)
	changed := index(t, `<Profile><fieldPermissions><field>Account.Name</field><readable>false</readable></fieldPermissions></Profile>`)

	t.Run("ignored tags", func(t *testing.T) {
		cs := differ.New(differ.WithIgnoredTags("readable")).Indexes(full, changed)
		assert.Len(t, cs.Unchanged, 1)
		assert.Empty(t, cs.Replaced)
	})

	t.Run("field changes disabled", func(t *testing.T) {
		cs := differ.New(differ.WithFieldChanges(false)).Indexes(full, changed)
		require.Len(t, cs.Replaced, 1)
		assert.Nil(t, cs.Replaced[0].Fields)
	})
}

func TestNestedFieldChanges(t *testing.T) {
	full := index(t, `<Profile><objectPermissions><object>Account</object><access><read>true</read><read>false</read></access></objectPermissions></Profile>`)
	changed := index(t, `<Profile><objectPermissions><object>Account</object><access><read>true</read><read>true</read></access></objectPermissions></Profile>`)

	cs := differ.New().Indexes(full, changed)
	require.Len(t, cs.Replaced, 1)
	assert.Equal(t, []differ.FieldChange{{Path: "access/read[1]", OldValue: "false", NewValue: "true"}}, cs.Replaced[0].Fields)
}

func TestChangesetOutput(t *testing.T) {
	full := index(t, fullProfile)
	changed := index(t, `<Profile>
    <fieldPermissions><editable>true</editable><field>Account.Name</field><readable>false</readable></fieldPermissions>
    <fieldPermissions><field>Account.Phone</field></fieldPermissions>
</Profile>`)

	cs := differ.New().Indexes(full, changed)
	assert.Equal(t, "Changeset: 1 added, 1 replaced (Total: 2 changes)", cs.String())

	var buf bytes.Buffer
	cs.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "+ fieldPermissions=Account.Phone")
	assert.Contains(t, out, "~ fieldPermissions=Account.Name")
	assert.Contains(t, out, `readable: "true" -> "false"`)
}
