package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/quickform-go/cli/internal/ui"
)

var formatCmd = &cobra.Command{
	Use:     "format [schema-path]",
	Aliases: []string{"fmt"},
	Short:   "Format a schema file",
	Long: `Normalize a QuickForm schema file in place: consistent two-space
indentation with declaration order and comments preserved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

var (
	formatSchemaPath string
	formatCheck      bool
)

func init() {
	formatCmd.Flags().StringVarP(&formatSchemaPath, "schema", "s", defaultSchemaFile, "Path to schema file")
	formatCmd.Flags().BoolVar(&formatCheck, "check", false, "Exit non-zero if the file is not formatted")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	schemaPath := getSchemaPath(formatSchemaPath, args)

	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	formatted, err := formatYAML(data)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", schemaPath, err)
	}

	if bytes.Equal(data, formatted) {
		ui.PrintSuccess("%s is already formatted", schemaPath)
		return nil
	}

	if formatCheck {
		return fmt.Errorf("%s is not formatted", schemaPath)
	}

	if err := os.WriteFile(schemaPath, formatted, 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	ui.PrintSuccess("Formatted %s", schemaPath)
	return nil
}

// formatYAML round-trips through the YAML node tree, which keeps key order
// and comments while normalizing indentation and quoting.
func formatYAML(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
