package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/satishbabariya/quickform-go/cli/internal/ui"
	"github.com/satishbabariya/quickform-go/cli/internal/version"
	"github.com/satishbabariya/quickform-go/schema"
	"github.com/satishbabariya/quickform-go/schema/parser"
	"github.com/satishbabariya/quickform-go/schema/validator"
)

const defaultSchemaFile = "quickform.yaml"

// getSchemaPath returns the schema path using consistent logic:
// 1. Use explicit flag value if set
// 2. Use first argument if provided
// 3. Default to "quickform.yaml"
func getSchemaPath(flagValue string, args []string) string {
	if flagValue != "" && flagValue != defaultSchemaFile {
		return flagValue
	}
	if len(args) > 0 {
		return args[0]
	}
	return defaultSchemaFile
}

// findSchemaFile attempts to find a schema file in common locations. Used
// as a fallback when the default path was neither overridden nor present.
func findSchemaFile() string {
	commonPaths := []string{
		"quickform.yaml",
		"quickform.yml",
		"schema/quickform.yaml",
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, _ := filepath.Abs(path)
			return absPath
		}
	}
	return ""
}

// loadValidatedSchema parses and validates a schema file, printing pretty
// diagnostics on failure. The returned error is the *Diagnostics value when
// the schema is invalid, so main can map it to the validation exit code.
func loadValidatedSchema(schemaPath string) (*schema.Schema, error) {
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		if schemaPath != defaultSchemaFile {
			return nil, fmt.Errorf("schema file not found: %s", schemaPath)
		}
		found := findSchemaFile()
		if found == "" {
			return nil, fmt.Errorf("schema file not found: %s (run `quickform init` to create one)", schemaPath)
		}
		schemaPath = found
	}

	s, diags, err := parser.ParseFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	if diags.HasErrors() {
		ui.PrintError("Schema parsing failed:")
		fmt.Fprintf(os.Stderr, "\n%s\n", diags.ToPrettyString(schemaPath))
		return nil, diags
	}

	v := validator.New(version.Version)
	vdiags := v.Validate(s)
	if len(vdiags.Warnings()) > 0 {
		fmt.Fprintf(os.Stderr, "%s\n", vdiags.WarningsToPrettyString(schemaPath))
	}
	if vdiags.HasErrors() {
		ui.PrintError("Schema validation failed:")
		fmt.Fprintf(os.Stderr, "\n%s\n", vdiags.ToPrettyString(schemaPath))
		return nil, vdiags
	}

	return s, nil
}
