package parser

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/quickform-go/schema"
)

// descLexer defines the tokens for the compact field descriptor form,
// e.g. `string! unique default="n/a"` or `enum(draft active closed)`.
var descLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Exclaim", Pattern: `!`},
	{Name: "Equal", Pattern: `=`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// rawDesc is the parse tree for a field descriptor.
type rawDesc struct {
	Type     string     `parser:"@Ident"`
	Args     []string   `parser:"( LParen @(Ident|String|Number) ( Comma? @(Ident|String|Number) )* RParen )?"`
	Required bool       `parser:"@Exclaim?"`
	Attrs    []*rawAttr `parser:"@@*"`
}

// rawAttr is a trailing marker: a bare word (`unique`) or an option with a
// literal value (`default="x"`, `mongo=text`).
type rawAttr struct {
	Name  string  `parser:"@Ident"`
	Value *string `parser:"( Equal @(String|Number|Ident) )?"`
}

var descParser = participle.MustBuild[rawDesc](
	participle.Lexer(descLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// parseFieldDesc parses the compact descriptor form into a Field. Only the
// descriptor syntax is checked here; semantic rules (known type, enum value
// sets) are left to the validator.
func parseFieldDesc(name, input string) (schema.Field, error) {
	raw, err := descParser.ParseString(name, input)
	if err != nil {
		return schema.Field{}, fmt.Errorf("invalid field descriptor %q: %w", input, err)
	}

	f := schema.Field{
		Name:     name,
		Type:     schema.FieldType(raw.Type),
		Required: raw.Required,
	}

	switch f.Type {
	case schema.TypeEnum:
		f.EnumValues = raw.Args
	case schema.TypeReference:
		if len(raw.Args) > 0 {
			f.Reference = raw.Args[0]
		}
	default:
		if len(raw.Args) > 0 {
			return schema.Field{}, fmt.Errorf("field descriptor %q: type %s takes no arguments", input, raw.Type)
		}
	}

	for _, attr := range raw.Attrs {
		switch {
		case attr.Name == "unique" && attr.Value == nil:
			f.Unique = true
		case attr.Name == "required" && attr.Value == nil:
			f.Required = true
		case attr.Name == "default" && attr.Value != nil:
			f.Default = coerceLiteral(*attr.Value)
		default:
			// Anything else is a backend storage annotation, passed
			// through uninterpreted.
			if f.Storage == nil {
				f.Storage = make(map[string]string)
			}
			if attr.Value != nil {
				f.Storage[attr.Name] = *attr.Value
			} else {
				f.Storage[attr.Name] = "true"
			}
		}
	}

	return f, nil
}

// coerceLiteral maps a descriptor literal to a typed default value.
func coerceLiteral(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		return fl
	}
	return s
}
