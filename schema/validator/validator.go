// Package validator implements semantic validation of a parsed schema.
//
// Every rule pushes its own diagnostic; validation never stops at the first
// violation so the caller receives the complete list in one run.
package validator

import (
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/satishbabariya/quickform-go/schema"
	"github.com/satishbabariya/quickform-go/schema/diagnostics"
)

// Validator checks a parsed schema against the semantic rules.
type Validator struct {
	// generatorVersion satisfies the schema's optional `requires`
	// constraint. Empty disables the check.
	generatorVersion string
}

// New creates a validator. version is the running generator version used
// for the config `requires` constraint.
func New(version string) *Validator {
	return &Validator{generatorVersion: version}
}

// Validate runs every semantic rule and returns the full diagnostic set.
// A schema passing with no errors is structurally sound for generation:
// no relation dangles and no duplicate names exist.
func (v *Validator) Validate(s *schema.Schema) *diagnostics.Diagnostics {
	diags := diagnostics.New()

	v.validateConfig(&s.Config, diags)

	// Model names must be unique after case normalization: artifact
	// paths are derived from lowercased names, so "User" and "user"
	// would collide on disk.
	seen := make(map[string]string)
	for _, m := range s.Models {
		lower := strings.ToLower(m.Name)
		if prev, ok := seen[lower]; ok {
			diags.Errorf(m.Name, "", "model name conflicts with %q after case normalization", prev)
			continue
		}
		seen[lower] = m.Name
	}

	for i := range s.Models {
		v.validateModel(s, &s.Models[i], diags)
	}

	return diags
}

func (v *Validator) validateConfig(cfg *schema.Config, diags *diagnostics.Diagnostics) {
	if !cfg.Auth.Valid() {
		diags.Errorf("", "", "unknown auth mode %q (expected one of %s)", cfg.Auth, joinAuthModes())
	}
	if !cfg.Database.Valid() {
		diags.Errorf("", "", "unknown storage backend %q (expected one of %s)", cfg.Database, joinDatabases())
	}
	if !cfg.Email.Valid() {
		diags.Errorf("", "", "unknown email service %q (expected one of %s)", cfg.Email, joinEmailServices())
	}

	if cfg.Requires != "" && v.generatorVersion != "" {
		constraint, err := goversion.NewConstraint(cfg.Requires)
		if err != nil {
			diags.Errorf("", "", "invalid requires constraint %q: %v", cfg.Requires, err)
			return
		}
		current, err := goversion.NewVersion(v.generatorVersion)
		if err != nil {
			return
		}
		if !constraint.Check(current) {
			diags.Errorf("", "", "schema requires generator version %q, running %s", cfg.Requires, v.generatorVersion)
		}
	}
}

func (v *Validator) validateModel(s *schema.Schema, m *schema.Model, diags *diagnostics.Diagnostics) {
	if len(m.Fields) == 0 {
		diags.Errorf(m.Name, "", "model must declare at least one field")
	}

	fieldNames := make(map[string]bool)
	for i := range m.Fields {
		f := &m.Fields[i]
		if fieldNames[f.Name] {
			diags.Errorf(m.Name, f.Name, "duplicate field name")
		}
		fieldNames[f.Name] = true
		v.validateField(s, m, f, diags)
	}

	for _, rel := range m.Relations {
		if !rel.Cardinality.Valid() {
			diags.Errorf(m.Name, "", "relation %s: unknown cardinality %q (expected one or many)", rel.Name, rel.Cardinality)
		}
		if s.ModelByName(rel.Target) == nil {
			diags.Errorf(m.Name, "", "relation %s targets unknown model %q", rel.Name, rel.Target)
		}
	}

	for _, h := range m.Hooks {
		if !h.Event.Valid() {
			diags.Errorf(m.Name, "", "hook event %q is not in the lifecycle vocabulary (%s)", h.Event, joinHookEvents())
		}
	}

	methodNames := make(map[string]bool)
	for _, method := range m.Methods {
		if methodNames[method.Name] {
			diags.Errorf(m.Name, "", "duplicate method name %q", method.Name)
		}
		methodNames[method.Name] = true
	}

	// The auth feature hashes credential fields before save; without one
	// the generated hook has nothing to protect.
	if m.Features.Auth && !hasCredentialField(m) {
		diags.Warnf(m.Name, "", "auth feature is enabled but no credential field (password, passwordHash or secret) is declared")
	}
}

func hasCredentialField(m *schema.Model) bool {
	for _, f := range m.Fields {
		if f.Type != schema.TypeString {
			continue
		}
		switch strings.ToLower(f.Name) {
		case "password", "passwordhash", "password_hash", "secret":
			return true
		}
	}
	return false
}

func (v *Validator) validateField(s *schema.Schema, m *schema.Model, f *schema.Field, diags *diagnostics.Diagnostics) {
	if !f.Type.Valid() {
		diags.Errorf(m.Name, f.Name, "unknown field type %q", f.Type)
		return
	}

	switch f.Type {
	case schema.TypeEnum:
		if len(f.EnumValues) == 0 {
			diags.Errorf(m.Name, f.Name, "enum field must declare a non-empty value set")
		}
	case schema.TypeReference:
		if f.Reference == "" {
			diags.Errorf(m.Name, f.Name, "reference field must name a target model")
		} else if s.ModelByName(f.Reference) == nil {
			diags.Errorf(m.Name, f.Name, "reference targets unknown model %q", f.Reference)
		}
	}
}

func joinAuthModes() string {
	parts := make([]string, len(schema.AuthModes))
	for i, m := range schema.AuthModes {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

func joinDatabases() string {
	parts := make([]string, len(schema.Databases))
	for i, d := range schema.Databases {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}

func joinEmailServices() string {
	parts := make([]string, len(schema.EmailServices))
	for i, e := range schema.EmailServices {
		parts[i] = string(e)
	}
	return strings.Join(parts, ", ")
}

func joinHookEvents() string {
	parts := make([]string, len(schema.HookEvents))
	for i, e := range schema.HookEvents {
		parts[i] = string(e)
	}
	return strings.Join(parts, ", ")
}
