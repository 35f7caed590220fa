// Package config loads the metadata type configuration: for each metadata
// type directory, the glob selecting its files and the mergeable tags with
// the child tag that identifies each one.
//
// The file is JSON or YAML:
//
//	{
//	  "profiles": {
//	    "fileGlob": "*.profile-meta.xml",
//	    "tags": { "fieldPermissions": "field", "objectPermissions": "object" }
//	  }
//	}
package config

import (
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agentstation/fullmeta/pkg/errors"
	"github.com/agentstation/fullmeta/pkg/identity"
)

// TypeConfig configures one metadata type.
type TypeConfig struct {
	FileGlob string            `yaml:"fileGlob" json:"fileGlob"`
	Tags     map[string]string `yaml:"tags" json:"tags"`
}

// Mapping returns the type's tags as an identity mapping.
func (t TypeConfig) Mapping() identity.Mapping {
	return identity.Mapping(maps.Clone(t.Tags))
}

// Config is the full metadata type configuration keyed by type directory
// name (e.g. "profiles").
type Config struct {
	Types map[string]TypeConfig
}

// Names returns the configured type names in ascending order.
func (c *Config) Names() []string {
	return slices.Sorted(maps.Keys(c.Types))
}

// Get returns the configuration of one type.
func (c *Config) Get(name string) (TypeConfig, bool) {
	t, ok := c.Types[name]
	return t, ok
}

// Len returns the number of configured types.
func (c *Config) Len() int {
	return len(c.Types)
}

// Select returns a Config restricted to names. Unknown names are a
// validation error. An empty names slice selects every type.
func (c *Config) Select(names ...string) (*Config, error) {
	if len(names) == 0 {
		return c, nil
	}

	selected := &Config{Types: make(map[string]TypeConfig, len(names))}
	var unknown []string
	for _, name := range names {
		t, ok := c.Types[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		selected.Types[name] = t
	}

	if len(unknown) > 0 {
		return nil, &errors.ValidationError{
			Field:   "types",
			Value:   unknown,
			Message: "unknown metadata type(s) " + strings.Join(unknown, ", ") + "; configured: " + strings.Join(c.Names(), ", "),
		}
	}
	return selected, nil
}

// Validate checks the configuration and returns a ConfigError describing
// every problem found.
func (c *Config) Validate() error {
	if len(c.Types) == 0 {
		return errors.NewConfigError("metadata config", "no metadata types configured", nil)
	}

	var problems []string
	for _, name := range c.Names() {
		t := c.Types[name]
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "empty metadata type name")
		}
		if strings.TrimSpace(t.FileGlob) == "" {
			problems = append(problems, "type "+name+": fileGlob is empty")
		} else if !doublestar.ValidatePattern(t.FileGlob) {
			problems = append(problems, "type "+name+": fileGlob "+t.FileGlob+" is not a valid pattern")
		}
		if len(t.Tags) == 0 {
			problems = append(problems, "type "+name+": no tags configured")
		}
		for _, tag := range slices.Sorted(maps.Keys(t.Tags)) {
			if strings.TrimSpace(tag) == "" {
				problems = append(problems, "type "+name+": empty tag name")
			}
			if strings.TrimSpace(t.Tags[tag]) == "" {
				problems = append(problems, "type "+name+": tag "+tag+" has no identifier tag")
			}
		}
	}

	if len(problems) > 0 {
		return errors.NewConfigError("metadata config", strings.Join(problems, "; "), nil)
	}
	return nil
}

// Default returns the built-in configuration for profiles, custom labels
// and sharing rules.
func Default() *Config {
	return &Config{Types: map[string]TypeConfig{
		"profiles": {
			FileGlob: "*.profile-meta.xml",
			Tags: map[string]string{
				"applicationVisibilities":    "application",
				"classAccesses":              "apexClass",
				"customMetadataTypeAccesses": "name",
				"customPermissions":          "name",
				"customSettingAccesses":      "name",
				"externalDataSourceAccesses": "externalDataSource",
				"fieldPermissions":           "field",
				"flowAccesses":               "flow",
				"layoutAssignments":          "layout",
				"objectPermissions":          "object",
				"pageAccesses":               "apexPage",
				"recordTypeVisibilities":     "recordType",
				"tabVisibilities":            "tab",
				"userPermissions":            "name",
			},
		},
		"labels": {
			FileGlob: "*.labels-meta.xml",
			Tags: map[string]string{
				"labels": "fullName",
			},
		},
		"sharingRules": {
			FileGlob: "*.sharingRules-meta.xml",
			Tags: map[string]string{
				"sharingCriteriaRules": "fullName",
			},
		},
	}}
}
