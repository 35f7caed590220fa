package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fullmeta/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		opts        *Options
		wantType    PatternType
		wantErr     bool
	}{
		{name: "valid glob pattern", pattern: "sharing*", patternType: Glob, wantType: Glob},
		{name: "valid regex pattern", pattern: "^pro.*", patternType: Regex, wantType: Regex},
		{name: "invalid regex pattern", pattern: "(unclosed", patternType: Regex, wantErr: true},
		{name: "invalid glob pattern", pattern: "[unclosed", patternType: Glob, wantErr: true},
		{name: "auto detect glob", pattern: "*Rules", patternType: Auto, wantType: Glob},
		{name: "auto detect regex", pattern: "^(labels|profiles)$", patternType: Auto, wantType: Regex},
		{name: "case insensitive option", pattern: "PROFILES", patternType: Glob, opts: &Options{CaseInsensitive: true}, wantType: Glob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		opts        *Options
		input       string
		want        bool
	}{
		{name: "glob exact match", pattern: "profiles", patternType: Glob, input: "profiles", want: true},
		{name: "glob wildcard", pattern: "sharing*", patternType: Glob, input: "sharingRules", want: true},
		{name: "glob no match", pattern: "sharing*", patternType: Glob, input: "profiles", want: false},
		{name: "glob alternation", pattern: "{labels,profiles}", patternType: Glob, input: "labels", want: true},
		{name: "glob case sensitive", pattern: "Profiles", patternType: Glob, input: "profiles", want: false},
		{name: "glob case insensitive", pattern: "Profiles", patternType: Glob, opts: &Options{CaseInsensitive: true}, input: "profiles", want: true},
		{name: "regex anchored by default", pattern: "file", patternType: Regex, input: "profiles", want: false},
		{name: "regex unanchored", pattern: "file", patternType: Regex, opts: &Options{}, input: "profiles", want: true},
		{name: "regex alternation", pattern: "labels|profiles", patternType: Regex, opts: &Options{}, input: "profiles", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestMatchAll(t *testing.T) {
	m, err := New(Glob, "*s")
	require.NoError(t, err)
	assert.Equal(t, []string{"labels", "profiles", "sharingRules"}, m.MatchAll("labels", "profiles", "sharingRules", "layout"))
}

func TestPatternTypeString(t *testing.T) {
	assert.Equal(t, "glob", Glob.String())
	assert.Equal(t, "regex", Regex.String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "unknown", PatternType(42).String())
}

func TestIsPattern(t *testing.T) {
	assert.False(t, IsPattern("profiles"))
	assert.True(t, IsPattern("prof*"))
	assert.True(t, IsPattern("{labels,profiles}"))
	assert.True(t, IsPattern("^profiles$"))
}

func TestExpand(t *testing.T) {
	names := []string{"sharingRules", "profiles", "labels", "permissionsets"}

	t.Run("literal names pass through", func(t *testing.T) {
		got, err := Expand([]string{"profiles", "flows"}, names)
		require.NoError(t, err)
		assert.Equal(t, []string{"profiles", "flows"}, got)
	})

	t.Run("glob expands sorted", func(t *testing.T) {
		got, err := Expand([]string{"p*"}, names)
		require.NoError(t, err)
		assert.Equal(t, []string{"permissionsets", "profiles"}, got)
	})

	t.Run("duplicates removed", func(t *testing.T) {
		got, err := Expand([]string{"profiles", "pro*", "labels"}, names)
		require.NoError(t, err)
		assert.Equal(t, []string{"profiles", "labels"}, got)
	})

	t.Run("pattern without match", func(t *testing.T) {
		_, err := Expand([]string{"flow*"}, names)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "flow*")
	})

	t.Run("empty selection", func(t *testing.T) {
		got, err := Expand(nil, names)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
