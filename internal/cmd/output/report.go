package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/fullmeta/pkg/config"
	"github.com/agentstation/fullmeta/pkg/sync"
)

// Render writes data in format. Table formats render table; the others
// encode raw.
func Render(w io.Writer, format Format, raw any, table Data) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, raw)
	default:
		return NewFormatter(FormatTable).Format(w, table)
	}
}

// SyncData converts a sync result to a table: one row per metadata type,
// or one row per file when wide.
func SyncData(result *sync.Result, wide bool) Data {
	if wide {
		data := Data{
			Headers:         Headers("type", "status", "added", "replaced", "unchanged", "file"),
			ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
		}
		for _, f := range result.Files {
			file := f.Full
			if f.Status == sync.StatusFailed || f.Status == sync.StatusSkipped || file == "" {
				file = f.Changed
			}
			if f.Error != "" {
				file += ": " + f.Error
			}
			data.Rows = append(data.Rows, []string{
				f.Type,
				string(f.Status),
				strconv.Itoa(f.Added),
				strconv.Itoa(f.Replaced),
				strconv.Itoa(f.Unchanged),
				file,
			})
		}
		return data
	}

	data := Data{
		Headers:         Headers("type", "files", "merged", "seeded", "skipped", "failed", "added", "replaced"),
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
	}
	for _, s := range result.ByType() {
		data.Rows = append(data.Rows, []string{
			s.Type,
			strconv.Itoa(s.Files),
			strconv.Itoa(s.Merged),
			strconv.Itoa(s.Seeded),
			strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Failed),
			strconv.Itoa(s.Added),
			strconv.Itoa(s.Replaced),
		})
	}
	return data
}

// LabelsData converts a label removal result to a table with one row per
// requested label.
func LabelsData(result *sync.LabelsResult) Data {
	data := Data{Headers: Headers("label", "status")}

	removed := make(map[string]bool, len(result.Removed))
	for _, name := range result.Removed {
		removed[name] = true
	}
	for _, name := range result.Requested {
		status := "not found"
		if removed[name] {
			status = "removed"
			if result.DryRun {
				status = "would remove"
			}
		}
		data.Rows = append(data.Rows, []string{name, status})
	}
	return data
}

// TypeInfo describes one configured metadata type for structured output.
type TypeInfo struct {
	Name     string            `json:"name" yaml:"name"`
	FileGlob string            `json:"file_glob" yaml:"file_glob"`
	Tags     map[string]string `json:"tags" yaml:"tags"`
}

// Types lists the configured metadata types in name order.
func Types(cfg *config.Config) []TypeInfo {
	infos := make([]TypeInfo, 0, cfg.Len())
	for _, name := range cfg.Names() {
		t, _ := cfg.Get(name)
		infos = append(infos, TypeInfo{Name: name, FileGlob: t.FileGlob, Tags: t.Tags})
	}
	return infos
}

// TypesData converts the metadata configuration to a table: one row per
// type, or one row per mergeable tag when wide.
func TypesData(cfg *config.Config, wide bool) Data {
	if wide {
		data := Data{Headers: Headers("type", "tag", "identifier")}
		for _, name := range cfg.Names() {
			t, _ := cfg.Get(name)
			for _, tag := range t.Mapping().Tags() {
				data.Rows = append(data.Rows, []string{name, tag, t.Tags[tag]})
			}
		}
		return data
	}

	data := Data{Headers: Headers("type", "file_glob", "tags")}
	for _, name := range cfg.Names() {
		t, _ := cfg.Get(name)
		data.Rows = append(data.Rows, []string{name, t.FileGlob, strings.Join(t.Mapping().Tags(), ", ")})
	}
	return data
}
