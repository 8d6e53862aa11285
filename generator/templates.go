package generator

import (
	"github.com/go-openapi/inflect"

	"github.com/satishbabariya/quickform-go/schema"
)

// TemplateSpec describes one per-model template: its logical identifier,
// the output path derived from the model, and an optional feature
// condition. A nil Cond always applies.
type TemplateSpec struct {
	ID   string
	Path func(m *schema.Model) string
	Cond func(m *schema.Model, cfg *schema.Config) bool
}

// ProjectTemplateSpec describes a project-level template rendered once per
// run from the full schema.
type ProjectTemplateSpec struct {
	ID        string
	Path      string
	Mergeable bool
	Skip      func(s *schema.Schema) bool
}

// ModelTemplates is the built-in per-model template set. Feature-gated
// entries pull in additional artifacts: an auth-enabled model gets a
// credential-hashing hook, a search-enabled model an index definition.
var ModelTemplates = []TemplateSpec{
	{
		ID:   "model",
		Path: func(m *schema.Model) string { return "src/models/" + inflect.Underscore(m.Name) + ".ts" },
	},
	{
		ID:   "controller",
		Path: func(m *schema.Model) string { return "src/controllers/" + inflect.Underscore(m.Name) + "_controller.ts" },
	},
	{
		ID:   "auth_hook",
		Path: func(m *schema.Model) string { return "src/models/hooks/" + inflect.Underscore(m.Name) + "_auth.ts" },
		Cond: func(m *schema.Model, _ *schema.Config) bool { return m.Features.Auth },
	},
	{
		ID:   "search_index",
		Path: func(m *schema.Model) string { return "src/search/" + inflect.Underscore(m.Name) + "_index.ts" },
		Cond: func(m *schema.Model, _ *schema.Config) bool { return m.Features.Search },
	},
}

// ProjectTemplates is the built-in project-level template set, rendered
// after all per-model artifacts.
var ProjectTemplates = []ProjectTemplateSpec{
	{ID: "app", Path: "src/app.ts"},
	{ID: "index", Path: "src/index.ts"},
	{ID: "routes", Path: "src/routes/index.ts"},
	{
		ID:   "db",
		Path: "src/db.ts",
		Skip: func(s *schema.Schema) bool { return s.Config.Database == schema.MongoDB },
	},
	{
		ID:   "auth_middleware",
		Path: "src/middleware/auth.ts",
		Skip: func(s *schema.Schema) bool { return s.Config.Auth == schema.AuthNone },
	},
	{
		ID:   "audit",
		Path: "src/audit.ts",
		Skip: func(s *schema.Schema) bool {
			return !s.HasFeature(func(f schema.FeatureSet) bool { return f.Audit })
		},
	},
	{ID: "package", Path: "package.json", Mergeable: true},
	{ID: "readme", Path: "README.md"},
	{ID: "app_test", Path: "tests/app.test.ts"},
}
