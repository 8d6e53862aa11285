package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/quickform-go/schema"
	"github.com/satishbabariya/quickform-go/schema/diagnostics"
	"github.com/satishbabariya/quickform-go/schema/parser"
	"github.com/satishbabariya/quickform-go/schema/validator"
)

func TestGetSchemaPath(t *testing.T) {
	assert.Equal(t, "custom.yaml", getSchemaPath("custom.yaml", nil))
	assert.Equal(t, "arg.yaml", getSchemaPath(defaultSchemaFile, []string{"arg.yaml"}))
	assert.Equal(t, defaultSchemaFile, getSchemaPath(defaultSchemaFile, nil))
}

// An invalid schema must surface as the diagnostics collection itself so
// main can map it to the validation exit code.
func TestLoadValidatedSchemaSurfacesDiagnostics(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "quickform.yaml")
	src := `models:
  Order:
    fields:
      total: decimal
    relations:
      shipment: one Shipment
`
	require.NoError(t, os.WriteFile(schemaPath, []byte(src), 0644))

	_, err := loadValidatedSchema(schemaPath)
	require.Error(t, err)

	var diags *diagnostics.Diagnostics
	require.ErrorAs(t, err, &diags)
	require.Len(t, diags.Errors(), 1)
	assert.Equal(t, "Order", diags.Errors()[0].Model)
	assert.Contains(t, diags.Errors()[0].Message, "Shipment")
}

// When quickform.yaml is absent, common alternative locations are tried
// before giving up.
func TestLoadValidatedSchemaFallsBackToCommonLocations(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := loadValidatedSchema(defaultSchemaFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quickform init")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "schema"), 0755))
	src := "models:\n  Item:\n    fields:\n      name: string!\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema", "quickform.yaml"), []byte(src), 0644))

	s, err := loadValidatedSchema(defaultSchemaFile)
	require.NoError(t, err)
	require.Len(t, s.Models, 1)
	assert.Equal(t, "Item", s.Models[0].Name)
}

func TestGenerateFlagDefaults(t *testing.T) {
	out := generateCmd.Flags().Lookup("output")
	require.NotNil(t, out)
	assert.Contains(t, out.Usage, `"generated"`)

	conflict := generateCmd.Flags().Lookup("on-conflict")
	require.NotNil(t, conflict)
	assert.Contains(t, conflict.Usage, `"overwrite"`)

	assert.NotNil(t, generateCmd.Flags().Lookup("save-config"))
}

func TestFeatureSummary(t *testing.T) {
	assert.Equal(t, "-", featureSummary(schema.FeatureSet{}))
	assert.Equal(t, "auth, timestamps", featureSummary(schema.FeatureSet{Auth: true, Timestamps: true}))
}

// The starter schema written by `quickform init` must itself parse and
// validate cleanly.
func TestStarterSchemaIsValid(t *testing.T) {
	answers := initAnswers{
		ProjectName: "demo",
		Database:    string(schema.MongoDB),
		Auth:        string(schema.AuthJWT),
		Email:       string(schema.Resend),
		CORS:        true,
		SampleModel: true,
	}

	src := starterSchema(answers)
	s, diags := parser.Parse("quickform.yaml", []byte(src))
	require.False(t, diags.HasErrors(), "starter schema failed to parse: %v", diags.Errors())

	vdiags := validator.New("0.2.0").Validate(s)
	require.False(t, vdiags.HasErrors(), "starter schema failed validation: %v", vdiags.Errors())

	assert.Equal(t, "demo", s.Config.ProjectName)
	assert.Equal(t, schema.AuthJWT, s.Config.Auth)
	assert.Equal(t, schema.Resend, s.Config.Email)
	require.Len(t, s.Models, 1)
	assert.Equal(t, "User", s.Models[0].Name)
	assert.True(t, s.Models[0].Features.Auth)
}

func TestFormatYAMLNormalizes(t *testing.T) {
	messy := "models:\n    User:\n        fields:\n            email:   string!\n"
	formatted, err := formatYAML([]byte(messy))
	require.NoError(t, err)

	// Two-space indentation, content preserved.
	assert.Contains(t, string(formatted), "  User:\n")
	assert.Contains(t, string(formatted), "email: string!")

	// Formatting is idempotent.
	again, err := formatYAML(formatted)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(again))
}
