package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/fullmeta/pkg/reconcile"
)

const fullLabels = `<?xml version="1.0" encoding="UTF-8"?>
<CustomLabels xmlns="http://soap.sforce.com/2006/04/metadata">
    <labels>
        <fullName>Welcome</fullName>
        <language>en_US</language>
        <protected>false</protected>
        <shortDescription>Welcome</shortDescription>
        <value>Welcome!</value>
    </labels>
    <labels>
        <fullName>Farewell</fullName>
        <language>en_US</language>
        <protected>false</protected>
        <shortDescription>Farewell</shortDescription>
        <value>Goodbye</value>
    </labels>
</CustomLabels>
`

func TestRemoveLabels(t *testing.T) {
	t.Run("removes listed labels without reordering", func(t *testing.T) {
		ctx, testLogger := testContext(t)
		doc := parse(t, fullLabels)

		result := reconcile.RemoveLabels(ctx, doc, []string{"Welcome"})
		assert.Equal(t, []string{"Welcome"}, result.Removed)
		assert.Empty(t, result.Missing)
		assert.True(t, result.Changed())
		assert.Equal(t, 1, doc.Len())
		assert.NotContains(t, doc.String(), "Welcome")
		assert.Empty(t, testLogger.Warnings())
	})

	t.Run("missing label warns and leaves document unchanged", func(t *testing.T) {
		ctx, testLogger := testContext(t)
		doc := parse(t, fullLabels)

		result := reconcile.RemoveLabels(ctx, doc, []string{"Greeting"})
		assert.Empty(t, result.Removed)
		assert.Equal(t, []string{"Greeting"}, result.Missing)
		assert.False(t, result.Changed())
		assert.Equal(t, fullLabels, doc.String())

		assert.Len(t, testLogger.Warnings(), 1)
		testLogger.AssertContains(t, "Greeting")
	})

	t.Run("order is kept", func(t *testing.T) {
		ctx, _ := testContext(t)
		doc := parse(t, `<CustomLabels xmlns="`+ns+`">
    <labels><fullName>Zeta</fullName></labels>
    <labels><fullName>Alpha</fullName></labels>
    <labels><fullName>Mid</fullName></labels>
</CustomLabels>`)

		reconcile.RemoveLabels(ctx, doc, []string{"Alpha", "", "  "})
		children := doc.Children()
		assert.Len(t, children, 2)
		assert.Contains(t, doc.String(), "<fullName>Zeta</fullName>\n    </labels>\n    <labels>\n        <fullName>Mid</fullName>")
	})

	t.Run("listed twice is missing the second time", func(t *testing.T) {
		ctx, _ := testContext(t)
		doc := parse(t, fullLabels)

		result := reconcile.RemoveLabels(ctx, doc, []string{"Farewell", "Farewell"})
		assert.Equal(t, []string{"Farewell"}, result.Removed)
		assert.Equal(t, []string{"Farewell"}, result.Missing)
	})
}
