// Package labels provides the labels command implementation.
package labels

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/fullmeta"
	"github.com/agentstation/fullmeta/cmd/application"
	"github.com/agentstation/fullmeta/internal/cmd/output"
	pkgsync "github.com/agentstation/fullmeta/pkg/sync"
)

// Flags holds the labels remove command flags.
type Flags struct {
	FullDir    string
	Manifest   string
	LabelsFile string
	DryRun     bool
}

// NewCommand creates the labels command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "labels",
		GroupID: "core",
		Short:   "Manage custom labels in the full labels file",
	}
	cmd.AddCommand(NewRemoveCommand(app))
	return cmd
}

// NewRemoveCommand creates the labels remove subcommand.
func NewRemoveCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove labels listed in a destructive changes manifest",
		Long: `Remove reads the CustomLabel members of a destructive changes manifest and
deletes the matching labels from the full labels file. Labels the file does
not contain are reported as not found. The labels file is rewritten in
canonical form.

A missing manifest or labels file is not an error: there is nothing to
remove.`,
		Example: `  fullmeta labels remove
  fullmeta labels remove --manifest destructiveChanges/destructiveChanges.xml
  fullmeta labels remove --dry-run -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.FullDir, "full-dir", "", "root of the full-metadata tree")
	cmd.Flags().StringVar(&flags.Manifest, "manifest", "", "destructive changes manifest")
	cmd.Flags().StringVar(&flags.LabelsFile, "labels-file", "", "labels file, relative to the full-metadata root")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "report what would be removed without writing")

	return cmd
}

// Execute removes labels and renders the result.
func Execute(cmd *cobra.Command, app application.Application, flags *Flags) error {
	var clientOpts []fullmeta.Option
	if flags.FullDir != "" {
		clientOpts = append(clientOpts, fullmeta.WithFullDir(flags.FullDir))
	}
	client, err := app.Client(clientOpts...)
	if err != nil {
		return err
	}

	var opts []pkgsync.Option
	if flags.Manifest != "" {
		opts = append(opts, pkgsync.WithManifest(flags.Manifest))
	}
	if flags.LabelsFile != "" {
		opts = append(opts, pkgsync.WithLabelsFile(flags.LabelsFile))
	}
	if flags.DryRun {
		opts = append(opts, pkgsync.WithDryRun(true))
	}

	result, err := client.RemoveLabels(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	if err := output.Render(cmd.OutOrStdout(), format, result, output.LabelsData(result)); err != nil {
		return err
	}
	if format == output.FormatTable || format == output.FormatWide {
		fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
	}
	return nil
}
