package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/quickform-go/cli/internal/update"
	"github.com/satishbabariya/quickform-go/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

var versionCheck bool

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check for a newer release")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	fmt.Println(info.FullString())

	if versionCheck {
		return update.CheckForUpdates(info.Version)
	}
	return nil
}
