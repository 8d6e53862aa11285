// Package schema contains the core data model for a QuickForm generation run.
//
// Everything in this package is pure data: a Schema is built once by the
// parser, checked by the validator, and treated as read-only by every
// downstream component.
package schema

import "strings"

// Schema is the root aggregate for one generation run.
type Schema struct {
	// Models in declaration order.
	Models []Model
	Config Config
}

// ModelByName returns the model with the given name, or nil.
func (s *Schema) ModelByName(name string) *Model {
	for i := range s.Models {
		if s.Models[i].Name == name {
			return &s.Models[i]
		}
	}
	return nil
}

// ModelNames returns all model names in declaration order.
func (s *Schema) ModelNames() []string {
	names := make([]string, len(s.Models))
	for i, m := range s.Models {
		names[i] = m.Name
	}
	return names
}

// HasFeature reports whether any model in the schema enables the given
// feature selector.
func (s *Schema) HasFeature(pick func(FeatureSet) bool) bool {
	for _, m := range s.Models {
		if pick(m.Features) {
			return true
		}
	}
	return false
}

// Model is a single data model declaration.
type Model struct {
	Name        string
	Description string
	Fields      []Field
	Methods     []Method
	Hooks       []Hook
	Relations   []Relation
	Features    FeatureSet
}

// FieldByName returns the field with the given name, or nil.
func (m *Model) FieldByName(name string) *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}

// FeatureSet holds the per-model feature toggles.
type FeatureSet struct {
	Auth       bool
	Audit      bool
	Search     bool
	SoftDelete bool
	Timestamps bool
}

// FieldType is the closed set of semantic field types.
type FieldType string

const (
	TypeString    FieldType = "string"
	TypeNumber    FieldType = "number"
	TypeBoolean   FieldType = "boolean"
	TypeEnum      FieldType = "enum"
	TypeDecimal   FieldType = "decimal"
	TypeDate      FieldType = "date"
	TypeReference FieldType = "reference"
)

// FieldTypes lists every valid field type.
var FieldTypes = []FieldType{
	TypeString, TypeNumber, TypeBoolean, TypeEnum, TypeDecimal, TypeDate, TypeReference,
}

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// Field is a single model field.
type Field struct {
	Name        string
	Type        FieldType
	Description string

	// EnumValues is the value set for enum fields.
	EnumValues []string
	// Reference names the target model for reference fields.
	Reference string

	Required bool
	Unique   bool
	Default  any

	// Storage maps backend-specific option names to literal values,
	// passed through to templates uninterpreted.
	Storage map[string]string
}

// HasDefault reports whether the field declares a default value.
// Template conditionals need this because a zero-valued default (false, 0)
// is still a declared default.
func (f Field) HasDefault() bool {
	return f.Default != nil
}

// Param is a named method parameter.
type Param struct {
	Name string
	Type string
}

// Method is a custom operation on a model. Body is opaque text spliced
// into templates; the generator never parses it.
type Method struct {
	Name        string
	Params      []Param
	Returns     string
	Description string
	Body        string
}

// HookEvent is a lifecycle event name from the closed vocabulary.
type HookEvent string

const (
	PreSave    HookEvent = "preSave"
	PostSave   HookEvent = "postSave"
	PreCreate  HookEvent = "preCreate"
	PostCreate HookEvent = "postCreate"
	PreUpdate  HookEvent = "preUpdate"
	PostUpdate HookEvent = "postUpdate"
	PreDelete  HookEvent = "preDelete"
	PostDelete HookEvent = "postDelete"
)

// HookEvents lists the allowed lifecycle vocabulary.
var HookEvents = []HookEvent{
	PreSave, PostSave, PreCreate, PostCreate,
	PreUpdate, PostUpdate, PreDelete, PostDelete,
}

// Valid reports whether e is in the lifecycle vocabulary.
func (e HookEvent) Valid() bool {
	for _, ev := range HookEvents {
		if e == ev {
			return true
		}
	}
	return false
}

// Stage returns "pre" or "post".
func (e HookEvent) Stage() string {
	if strings.HasPrefix(string(e), "pre") {
		return "pre"
	}
	return "post"
}

// Action returns the lowercased lifecycle action, e.g. "save" for preSave.
func (e HookEvent) Action() string {
	s := strings.TrimPrefix(string(e), "pre")
	s = strings.TrimPrefix(s, "post")
	return strings.ToLower(s)
}

// Hook is a lifecycle callback declaration. Body is opaque, same as
// Method.Body.
type Hook struct {
	Event       HookEvent
	Description string
	Body        string
}

// Cardinality of a relation.
type Cardinality string

const (
	One  Cardinality = "one"
	Many Cardinality = "many"
)

// Valid reports whether c is a known cardinality.
func (c Cardinality) Valid() bool {
	return c == One || c == Many
}

// Relation links the declaring model to a target model.
type Relation struct {
	// Name of the relation as declared on the source model.
	Name string
	// Target is the name of the related model.
	Target      string
	Cardinality Cardinality
	// Owning marks the side that carries the foreign key.
	Owning bool
}
