package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fullmeta/pkg/config"
	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/sync"
)

func sampleResult() *sync.Result {
	return &sync.Result{
		Types: []string{"labels", "profiles"},
		Files: []*sync.FileResult{
			{Type: "profiles", Changed: "src/profiles/Admin.profile-meta.xml", Full: "full/profiles/Admin.profile-meta.xml", Status: sync.StatusMerged, Added: 1, Replaced: 2},
			{Type: "profiles", Changed: "src/profiles/Bad.profile-meta.xml", Status: sync.StatusFailed, Error: "xml parse error: EOF"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "wide", want: FormatWide},
		{in: "", want: ""},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, []string{"Type", "File Glob", "Tags"}, Headers("type", "file_glob", "tags"))
}

func TestSyncData(t *testing.T) {
	t.Run("per type", func(t *testing.T) {
		data := SyncData(sampleResult(), false)
		require.Len(t, data.Rows, 2)
		assert.Equal(t, []string{"labels", "0", "0", "0", "0", "0", "0", "0"}, data.Rows[0])
		assert.Equal(t, []string{"profiles", "2", "1", "0", "0", "1", "1", "2"}, data.Rows[1])
		assert.Len(t, data.ColumnAlignment, len(data.Headers))
	})

	t.Run("wide", func(t *testing.T) {
		data := SyncData(sampleResult(), true)
		require.Len(t, data.Rows, 2)
		assert.Equal(t, "full/profiles/Admin.profile-meta.xml", data.Rows[0][5])
		assert.Equal(t, "src/profiles/Bad.profile-meta.xml: xml parse error: EOF", data.Rows[1][5])
	})
}

func TestLabelsData(t *testing.T) {
	data := LabelsData(&sync.LabelsResult{
		Requested: []string{"Greeting", "Farewell"},
		Removed:   []string{"Farewell"},
		Missing:   []string{"Greeting"},
	})
	assert.Equal(t, [][]string{{"Greeting", "not found"}, {"Farewell", "removed"}}, data.Rows)
}

func TestTypesData(t *testing.T) {
	cfg := config.Default()

	data := TypesData(cfg, false)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{"labels", "*.labels-meta.xml", "labels"}, data.Rows[0])

	wide := TypesData(cfg, true)
	assert.Contains(t, wide.Rows, []string{"profiles", "fieldPermissions", "field"})
	assert.Contains(t, wide.Rows, []string{"sharingRules", "sharingCriteriaRules", "fullName"})
}

func TestRender(t *testing.T) {
	result := sampleResult()

	t.Run("json encodes the raw value", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, FormatJSON, result, SyncData(result, false)))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Len(t, decoded["files"], 2)
	})

	t.Run("yaml encodes the raw value", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, FormatYAML, Types(config.Default()), TypesData(config.Default(), false)))
		assert.Contains(t, buf.String(), "file_glob:")
		assert.Contains(t, buf.String(), "*.labels-meta.xml")
	})

	t.Run("table renders rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, FormatTable, result, SyncData(result, false)))
		out := buf.String()
		assert.Contains(t, strings.ToUpper(out), "TYPE")
		assert.Contains(t, out, "profiles")
	})
}
