package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/quickform-go/cli/internal/ui"
	"github.com/satishbabariya/quickform-go/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [schema-path]",
	Short: "Validate a schema file",
	Long: `Validate a QuickForm schema without generating anything.

Reports every problem found, not just the first one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateSchemaPath string

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", defaultSchemaFile, "Path to schema file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaPath := getSchemaPath(validateSchemaPath, args)

	ui.PrintHeader("QuickForm", "Validate Schema")

	s, err := loadValidatedSchema(schemaPath)
	if err != nil {
		return err
	}

	ui.PrintSuccess("Schema is valid")
	fmt.Println()

	rows := make([][]string, 0, len(s.Models))
	for _, m := range s.Models {
		rows = append(rows, []string{
			m.Name,
			fmt.Sprintf("%d", len(m.Fields)),
			fmt.Sprintf("%d", len(m.Relations)),
			featureSummary(m.Features),
		})
	}
	ui.PrintTable([]string{"Model", "Fields", "Relations", "Features"}, rows)

	fmt.Println()
	ui.PrintInfo("Project: %s | Database: %s | Auth: %s",
		s.Config.ProjectName, s.Config.Database, s.Config.Auth)

	return nil
}

func featureSummary(fs schema.FeatureSet) string {
	var on []string
	if fs.Auth {
		on = append(on, "auth")
	}
	if fs.Audit {
		on = append(on, "audit")
	}
	if fs.Search {
		on = append(on, "search")
	}
	if fs.SoftDelete {
		on = append(on, "softDelete")
	}
	if fs.Timestamps {
		on = append(on, "timestamps")
	}
	if len(on) == 0 {
		return "-"
	}
	return strings.Join(on, ", ")
}
