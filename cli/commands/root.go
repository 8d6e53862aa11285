// Package commands implements the quickform CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/quickform-go/cli/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "quickform",
	Short: "Schema-driven project generator",
	Long: `QuickForm turns a declarative YAML schema into a complete backend
project: data models, controllers, routes, and project scaffolding.

Define your models once, pick a database and auth strategy, and generate.`,
	Version:       version.Get().String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the command error, if any. Exit code
// mapping happens in main.
func Execute() error {
	return rootCmd.Execute()
}
