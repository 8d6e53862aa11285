// Package parser decodes a QuickForm schema document into the schema model.
//
// The input is a YAML mapping-of-mappings with two top-level sections:
// `config` (global feature toggles) and `models` (model name -> model body).
// Decoding walks yaml.Node values directly so that model and field
// declaration order is preserved exactly as written.
//
// Parsing is purely structural. A malformed document produces a single
// structural diagnostic and no semantic validation is attempted; semantic
// rules live in the validator package.
package parser

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/quickform-go/schema"
	"github.com/satishbabariya/quickform-go/schema/diagnostics"
)

// Parse decodes raw schema text. On structural failure the returned
// diagnostics collection contains exactly one error and the schema is nil.
func Parse(filename string, data []byte) (*schema.Schema, *diagnostics.Diagnostics) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, structural(0, "malformed schema document: %v", err)
	}
	if len(doc.Content) == 0 {
		return nil, structural(0, "schema document is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, structural(root.Line, "schema document must be a mapping")
	}

	s := &schema.Schema{Config: defaultConfig()}
	sawModels := false

	for i := 0; i < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "config":
			if diags := parseConfig(val, &s.Config); diags != nil {
				return nil, diags
			}
		case "models":
			sawModels = true
			if diags := parseModels(val, s); diags != nil {
				return nil, diags
			}
		default:
			return nil, structural(key.Line, "unknown top-level key %q (expected config or models)", key.Value)
		}
	}

	if !sawModels {
		return nil, structural(root.Line, "schema document has no models section")
	}

	return s, diagnostics.New()
}

// ParseFile reads and parses a schema file. The error return covers file
// I/O only; decode problems are reported through diagnostics.
func ParseFile(path string) (*schema.Schema, *diagnostics.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read schema file: %w", err)
	}
	s, diags := Parse(path, data)
	return s, diags, nil
}

func defaultConfig() schema.Config {
	return schema.Config{
		ProjectName: "app",
		Auth:        schema.AuthNone,
		Database:    schema.MongoDB,
		Email:       schema.EmailNone,
	}
}

// structural builds a collection holding the single structural error.
func structural(line int, format string, args ...any) *diagnostics.Diagnostics {
	diags := diagnostics.New()
	diags.PushError(diagnostics.Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	})
	return diags
}

type rawConfig struct {
	Name     string `yaml:"name"`
	Auth     string `yaml:"auth"`
	Database string `yaml:"database"`
	Email    string `yaml:"email"`
	CORS     struct {
		Enabled bool     `yaml:"enabled"`
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`
	Requires string `yaml:"requires"`
}

func parseConfig(n *yaml.Node, cfg *schema.Config) *diagnostics.Diagnostics {
	if n.Kind != yaml.MappingNode {
		return structural(n.Line, "config section must be a mapping")
	}
	var raw rawConfig
	if err := n.Decode(&raw); err != nil {
		return structural(n.Line, "invalid config section: %v", err)
	}
	if raw.Name != "" {
		cfg.ProjectName = raw.Name
	}
	if raw.Auth != "" {
		cfg.Auth = schema.AuthMode(raw.Auth)
	}
	if raw.Database != "" {
		cfg.Database = schema.Database(raw.Database)
	}
	if raw.Email != "" {
		cfg.Email = schema.EmailService(raw.Email)
	}
	cfg.CORS = schema.CORSConfig{Enabled: raw.CORS.Enabled, Origins: raw.CORS.Origins}
	cfg.Requires = raw.Requires
	return nil
}

func parseModels(n *yaml.Node, s *schema.Schema) *diagnostics.Diagnostics {
	if n.Kind != yaml.MappingNode {
		return structural(n.Line, "models section must be a mapping of model name to model body")
	}
	for i := 0; i < len(n.Content); i += 2 {
		nameNode, body := n.Content[i], n.Content[i+1]
		model, diags := parseModel(nameNode.Value, body)
		if diags != nil {
			return diags
		}
		s.Models = append(s.Models, *model)
	}
	return nil
}

func parseModel(name string, n *yaml.Node) (*schema.Model, *diagnostics.Diagnostics) {
	if n.Kind != yaml.MappingNode {
		return nil, structural(n.Line, "model %s must be a mapping", name)
	}
	m := &schema.Model{Name: name}

	for i := 0; i < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "description":
			m.Description = strings.TrimSpace(val.Value)
		case "features":
			if diags := parseFeatures(name, val, &m.Features); diags != nil {
				return nil, diags
			}
		case "fields":
			if diags := parseFields(name, val, m); diags != nil {
				return nil, diags
			}
		case "relations":
			if diags := parseRelations(name, val, m); diags != nil {
				return nil, diags
			}
		case "methods":
			if diags := parseMethods(name, val, m); diags != nil {
				return nil, diags
			}
		case "hooks":
			if diags := parseHooks(name, val, m); diags != nil {
				return nil, diags
			}
		default:
			return nil, structural(key.Line, "model %s: unknown key %q", name, key.Value)
		}
	}
	return m, nil
}

func parseFeatures(model string, n *yaml.Node, fs *schema.FeatureSet) *diagnostics.Diagnostics {
	var names []string
	if err := n.Decode(&names); err != nil {
		return structural(n.Line, "model %s: features must be a list of feature names", model)
	}
	for _, name := range names {
		switch name {
		case "auth":
			fs.Auth = true
		case "audit":
			fs.Audit = true
		case "search":
			fs.Search = true
		case "softDelete":
			fs.SoftDelete = true
		case "timestamps":
			fs.Timestamps = true
		default:
			return structural(n.Line, "model %s: unknown feature %q", model, name)
		}
	}
	return nil
}

// rawField is the long field descriptor form.
type rawField struct {
	Type        string            `yaml:"type"`
	Required    bool              `yaml:"required"`
	Unique      bool              `yaml:"unique"`
	Default     any               `yaml:"default"`
	Values      []string          `yaml:"values"`
	To          string            `yaml:"to"`
	Description string            `yaml:"description"`
	Storage     map[string]string `yaml:"storage"`
}

func parseFields(model string, n *yaml.Node, m *schema.Model) *diagnostics.Diagnostics {
	if n.Kind != yaml.MappingNode {
		return structural(n.Line, "model %s: fields must be a mapping of field name to descriptor", model)
	}
	for i := 0; i < len(n.Content); i += 2 {
		nameNode, desc := n.Content[i], n.Content[i+1]
		fieldName := nameNode.Value

		switch desc.Kind {
		case yaml.ScalarNode:
			f, err := parseFieldDesc(fieldName, desc.Value)
			if err != nil {
				return structural(desc.Line, "model %s: %v", model, err)
			}
			m.Fields = append(m.Fields, f)
		case yaml.MappingNode:
			var raw rawField
			if err := desc.Decode(&raw); err != nil {
				return structural(desc.Line, "model %s, field %s: %v", model, fieldName, err)
			}
			if raw.Type == "" {
				return structural(desc.Line, "model %s, field %s: missing type", model, fieldName)
			}
			m.Fields = append(m.Fields, schema.Field{
				Name:        fieldName,
				Type:        schema.FieldType(raw.Type),
				Required:    raw.Required,
				Unique:      raw.Unique,
				Default:     raw.Default,
				EnumValues:  raw.Values,
				Reference:   raw.To,
				Description: raw.Description,
				Storage:     raw.Storage,
			})
		default:
			return structural(desc.Line, "model %s, field %s: descriptor must be a string or a mapping", model, fieldName)
		}
	}
	return nil
}

type rawRelation struct {
	To          string `yaml:"to"`
	Cardinality string `yaml:"cardinality"`
	Owning      bool   `yaml:"owning"`
}

func parseRelations(model string, n *yaml.Node, m *schema.Model) *diagnostics.Diagnostics {
	if n.Kind != yaml.MappingNode {
		return structural(n.Line, "model %s: relations must be a mapping of relation name to target", model)
	}
	for i := 0; i < len(n.Content); i += 2 {
		nameNode, desc := n.Content[i], n.Content[i+1]
		rel := schema.Relation{Name: nameNode.Value}

		switch desc.Kind {
		case yaml.ScalarNode:
			// Shorthand: "many Order" or "one Customer".
			parts := strings.Fields(desc.Value)
			if len(parts) != 2 {
				return structural(desc.Line, "model %s, relation %s: shorthand must be \"<one|many> <Model>\"", model, rel.Name)
			}
			rel.Cardinality = schema.Cardinality(parts[0])
			rel.Target = parts[1]
		case yaml.MappingNode:
			var raw rawRelation
			if err := desc.Decode(&raw); err != nil {
				return structural(desc.Line, "model %s, relation %s: %v", model, rel.Name, err)
			}
			rel.Target = raw.To
			rel.Cardinality = schema.Cardinality(raw.Cardinality)
			rel.Owning = raw.Owning
		default:
			return structural(desc.Line, "model %s, relation %s: must be a string or a mapping", model, rel.Name)
		}
		m.Relations = append(m.Relations, rel)
	}
	return nil
}

type rawMethod struct {
	Name   string `yaml:"name"`
	Params []struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	} `yaml:"params"`
	Returns     string `yaml:"returns"`
	Description string `yaml:"description"`
	Body        string `yaml:"body"`
}

func parseMethods(model string, n *yaml.Node, m *schema.Model) *diagnostics.Diagnostics {
	var raws []rawMethod
	if err := n.Decode(&raws); err != nil {
		return structural(n.Line, "model %s: methods must be a list of method declarations", model)
	}
	for _, raw := range raws {
		if raw.Name == "" {
			return structural(n.Line, "model %s: method declaration missing name", model)
		}
		method := schema.Method{
			Name:        raw.Name,
			Returns:     raw.Returns,
			Description: raw.Description,
			Body:        raw.Body,
		}
		for _, p := range raw.Params {
			method.Params = append(method.Params, schema.Param{Name: p.Name, Type: p.Type})
		}
		m.Methods = append(m.Methods, method)
	}
	return nil
}

type rawHook struct {
	Event       string `yaml:"event"`
	Description string `yaml:"description"`
	Body        string `yaml:"body"`
}

func parseHooks(model string, n *yaml.Node, m *schema.Model) *diagnostics.Diagnostics {
	var raws []rawHook
	if err := n.Decode(&raws); err != nil {
		return structural(n.Line, "model %s: hooks must be a list of hook declarations", model)
	}
	for _, raw := range raws {
		if raw.Event == "" {
			return structural(n.Line, "model %s: hook declaration missing event", model)
		}
		m.Hooks = append(m.Hooks, schema.Hook{
			Event:       schema.HookEvent(raw.Event),
			Description: raw.Description,
			Body:        raw.Body,
		})
	}
	return nil
}
