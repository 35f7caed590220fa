// Package types provides the types command implementation.
package types

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fullmeta"
	"github.com/agentstation/fullmeta/cmd/application"
	"github.com/agentstation/fullmeta/internal/cmd/output"
	"github.com/agentstation/fullmeta/pkg/config"
)

// NewCommand creates the types command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		metadataConfig string
		export         bool
	)

	cmd := &cobra.Command{
		Use:     "types",
		GroupID: "core",
		Short:   "List configured metadata types",
		Long: `Types lists the metadata types fullmeta reconciles: the file glob each
type matches under both roots and its mergeable tags. With -o wide every
tag is listed with the child tag that identifies it.

--export prints the configuration as a metadata config file, a starting
point for a project-specific one.`,
		Example: `  fullmeta types
  fullmeta types -o wide
  fullmeta types --export > metadata_config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []fullmeta.Option
			if metadataConfig != "" {
				opts = append(opts, fullmeta.WithMetadataConfigPath(metadataConfig))
			}
			client, err := app.Client(opts...)
			if err != nil {
				return err
			}
			cfg := client.Metadata()

			if export {
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Render(cmd.OutOrStdout(), format, output.Types(cfg), output.TypesData(cfg, format == output.FormatWide))
		},
	}

	cmd.Flags().StringVar(&metadataConfig, "metadata-config", "", "metadata type configuration file (yaml or json)")
	cmd.Flags().BoolVar(&export, "export", false, "print the configuration as yaml")

	return cmd
}
