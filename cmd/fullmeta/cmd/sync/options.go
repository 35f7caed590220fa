package sync

import (
	"github.com/agentstation/fullmeta"
	pkgsync "github.com/agentstation/fullmeta/pkg/sync"
)

// ClientOptions translates the flags that override the configured roots.
func ClientOptions(flags *Flags) []fullmeta.Option {
	var opts []fullmeta.Option
	if flags.ChangedDir != "" {
		opts = append(opts, fullmeta.WithChangedDir(flags.ChangedDir))
	}
	if flags.FullDir != "" {
		opts = append(opts, fullmeta.WithFullDir(flags.FullDir))
	}
	if flags.MetadataConfig != "" {
		opts = append(opts, fullmeta.WithMetadataConfigPath(flags.MetadataConfig))
	}
	return opts
}

// SyncOptions builds the per-run options.
func SyncOptions(flags *Flags, types []string) []pkgsync.Option {
	var opts []pkgsync.Option
	if len(types) > 0 {
		opts = append(opts, pkgsync.WithTypes(types...))
	}
	if flags.DryRun {
		opts = append(opts, pkgsync.WithDryRun(true))
	}
	if flags.Reformat {
		opts = append(opts, pkgsync.WithReformat(true))
	}
	if flags.Timeout > 0 {
		opts = append(opts, pkgsync.WithTimeout(flags.Timeout))
	}
	return opts
}
