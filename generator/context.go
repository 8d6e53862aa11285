package generator

import "github.com/satishbabariya/quickform-go/schema"

// ModelContext is the read-only view a per-model template renders against:
// one model, the global config, and any extra values set by hooks.
type ModelContext struct {
	Model  *schema.Model
	Config *schema.Config
	Extra  map[string]any
}

// ProjectContext is the view for project-level templates, rendered after
// every per-model artifact so it can reference the complete model list.
type ProjectContext struct {
	Schema *schema.Schema
	Config *schema.Config
	Extra  map[string]any
}

func newModelContext(m *schema.Model, s *schema.Schema, extra map[string]any) *ModelContext {
	if extra == nil {
		extra = map[string]any{}
	}
	return &ModelContext{Model: m, Config: &s.Config, Extra: extra}
}

func newProjectContext(s *schema.Schema, extra map[string]any) *ProjectContext {
	if extra == nil {
		extra = map[string]any{}
	}
	return &ProjectContext{Schema: s, Config: &s.Config, Extra: extra}
}
