// Package constants provides shared constants used throughout fullmeta.
// This includes default paths, the metadata namespace, file permissions,
// and the serialization settings every rewritten full file must follow.
package constants

import "time"

// Timeout constants
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// SyncTimeout bounds a whole sync batch
	SyncTimeout = 30 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Serialization constants for canonical full files
const (
	// IndentSpaces is the number of spaces per nesting level
	IndentSpaces = 4

	// XMLVersion is written in every declaration
	XMLVersion = "1.0"

	// XMLEncoding is written in every declaration
	XMLEncoding = "UTF-8"

	// XMLDeclaration is the canonical declaration line
	XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`
)

// Metadata constants
const (
	// MetadataNamespace is the Salesforce Metadata API namespace
	MetadataNamespace = "http://soap.sforce.com/2006/04/metadata"

	// LayoutAssignmentsTag is identified by recordType when it has more than one child
	LayoutAssignmentsTag = "layoutAssignments"

	// RecordTypeTag is the identifier child for compound layout assignments
	RecordTypeTag = "recordType"

	// LabelsTag is the top-level element of a custom labels file
	LabelsTag = "labels"

	// LabelNameTag holds a custom label's API name
	LabelNameTag = "fullName"

	// CustomLabelType is the manifest type name for custom labels
	CustomLabelType = "CustomLabel"
)

// Default path values, relative to the working directory unless noted
const (
	// DefaultChangedDir is the root of the changed (source) metadata
	DefaultChangedDir = "force-app/main/default"

	// DefaultFullDir is the root of the full-metadata mirror
	DefaultFullDir = "full-metadata"

	// DefaultMetadataConfig is the metadata type configuration file
	DefaultMetadataConfig = "cicd/config/metadata_config.json"

	// DefaultManifest is the destructive changes manifest
	DefaultManifest = "manifest/destructiveChanges/destructiveChanges.xml"

	// DefaultLabelsFile is the full labels file, relative to the full root
	DefaultLabelsFile = "labels/FullCustomLabels.labels-meta.xml"

	// DefaultConfigFile is the app configuration file name without extension
	DefaultConfigFile = ".fullmeta"

	// EnvPrefix prefixes every environment variable fullmeta reads
	EnvPrefix = "FULLMETA"
)

// Format constants
const (
	// FormatTable is the default human-readable output format
	FormatTable = "table"

	// FormatJSON is machine-readable JSON output
	FormatJSON = "json"

	// FormatYAML is machine-readable YAML output
	FormatYAML = "yaml"
)
