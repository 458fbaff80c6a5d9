// Package commands wires the ingestctl CLI.
package commands

import (
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ingestctl",
		Short:   "Ingest bank statements into the budgeting store",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newDetectCommand())

	return rootCmd
}
