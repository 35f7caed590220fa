// Package sync provides the sync command implementation.
package sync

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/fullmeta/cmd/application"
	"github.com/agentstation/fullmeta/internal/cmd/output"
	pkgsync "github.com/agentstation/fullmeta/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	ChangedDir     string
	FullDir        string
	MetadataConfig string
	DryRun         bool
	Reformat       bool
	Timeout        time.Duration
}

// NewCommand creates the sync command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync [type...]",
		GroupID: "core",
		Short:   "Merge changed metadata files into their full copies",
		Long: `Sync walks every configured metadata type, pairs each changed file with
the file of the same relative path under the full-metadata root, and merges
the changed elements into the full copy by identity.

Elements present in the changed file replace their full counterparts, new
elements are appended, and everything else in the full file is kept. The
result is written back sorted and indented in canonical form. A changed
file with no full copy is copied verbatim.

Types may be named literally or with glob or regex patterns. Files that
fail to parse are reported and skipped; the remaining files still sync.`,
		Example: `  fullmeta sync                        # Sync every configured type
  fullmeta sync profiles labels        # Sync selected types
  fullmeta sync 'permission*'          # Sync types matching a pattern
  fullmeta sync --dry-run              # Preview changes without writing
  fullmeta sync --reformat             # Also rewrite untouched files canonically`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd, app, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.ChangedDir, "changed-dir", "", "root of the source-tracked project")
	cmd.Flags().StringVar(&flags.FullDir, "full-dir", "", "root of the full-metadata tree")
	cmd.Flags().StringVar(&flags.MetadataConfig, "metadata-config", "", "metadata type configuration file (yaml or json)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&flags.Reformat, "reformat", false, "rewrite full files canonically even when nothing merged")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "abort the run after this duration (0 disables)")

	return cmd
}

// Execute runs a sync and renders its result. Per-file failures are part
// of the rendered result and do not fail the command.
func Execute(cmd *cobra.Command, app application.Application, flags *Flags, types []string) error {
	client, err := app.Client(ClientOptions(flags)...)
	if err != nil {
		return err
	}

	result, err := client.Sync(cmd.Context(), SyncOptions(flags, types)...)
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	if err := output.Render(cmd.OutOrStdout(), format, result, output.SyncData(result, format == output.FormatWide)); err != nil {
		return err
	}

	if format == output.FormatTable || format == output.FormatWide {
		fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
		for _, f := range result.Files {
			if f.Status == pkgsync.StatusFailed {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", f.Summary())
			}
		}
	}
	return nil
}
