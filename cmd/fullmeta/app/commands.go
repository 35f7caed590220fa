package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fullmeta/cmd/fullmeta/cmd/labels"
	"github.com/agentstation/fullmeta/cmd/fullmeta/cmd/sync"
	"github.com/agentstation/fullmeta/cmd/fullmeta/cmd/types"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(sync.NewCommand(a))
	rootCmd.AddCommand(labels.NewCommand(a))
	rootCmd.AddCommand(types.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("fullmeta %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
