package generator

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"
)

// renderFuncs is the fixed filter set available inside templates: case
// transformation, pluralization, list joining, and indentation of opaque
// multi-line bodies. Nothing here reads the clock, random state, or the
// filesystem, so rendering stays deterministic.
var renderFuncs = template.FuncMap{
	"pascal":   inflect.Camelize,
	"camel":    inflect.CamelizeDownFirst,
	"snake":    inflect.Underscore,
	"kebab":    inflect.Dasherize,
	"plural":   inflect.Pluralize,
	"singular": inflect.Singularize,
	"upper":    strings.ToUpper,
	"lower":    strings.ToLower,
	"join":     strings.Join,
	"indent":   indentBody,
}

// Render is a pure function from (template source, context) to text.
// A reference to an undefined context path fails with a TemplateError
// naming the template identifier; it is never silently replaced with
// empty text.
func Render(id, source string, ctx any) (string, error) {
	tmpl, err := template.New(id).
		Option("missingkey=error").
		Funcs(renderFuncs).
		Parse(source)
	if err != nil {
		return "", &TemplateError{Template: id, Message: "parse", Cause: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", &TemplateError{Template: id, Message: "render", Cause: err}
	}
	return buf.String(), nil
}

// indentBody prefixes every non-empty line of s with n spaces. Used to
// splice opaque method and hook bodies into generated scaffolding without
// touching their content.
func indentBody(n int, s string) string {
	if s == "" {
		return s
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
