package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFuncs(t *testing.T) {
	tests := []struct {
		name   string
		source string
		ctx    any
		want   string
	}{
		{name: "pascal", source: `{{pascal "order_item"}}`, want: "OrderItem"},
		{name: "camel", source: `{{camel "order_item"}}`, want: "orderItem"},
		{name: "snake", source: `{{snake "OrderItem"}}`, want: "order_item"},
		{name: "plural", source: `{{plural "category"}}`, want: "categories"},
		{name: "singular", source: `{{singular "orders"}}`, want: "order"},
		{name: "upper", source: `{{upper "abc"}}`, want: "ABC"},
		{name: "lower", source: `{{lower "ABC"}}`, want: "abc"},
		{
			name:   "join",
			source: `{{join .Items ", "}}`,
			ctx:    map[string]any{"Items": []string{"a", "b"}},
			want:   "a, b",
		},
		{
			name:   "indent",
			source: `{{indent 2 "a\nb"}}`,
			want:   "  a\n  b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render("test", tt.source, tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderSameInputSameOutput(t *testing.T) {
	ctx := map[string]any{"Name": "User"}
	first, err := Render("t", `Hello {{pascal .Name}}`, ctx)
	require.NoError(t, err)
	second, err := Render("t", `Hello {{pascal .Name}}`, ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderUndefinedReferenceFails(t *testing.T) {
	_, err := Render("broken", `{{.missing}}`, map[string]any{})

	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "broken", terr.Template)
	assert.True(t, errors.Is(err, ErrRenderFailed))
}

func TestRenderParseFailure(t *testing.T) {
	_, err := Render("broken", `{{if}}`, nil)

	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "broken", terr.Template)
}

func TestIndentBody(t *testing.T) {
	assert.Equal(t, "", indentBody(2, ""))
	assert.Equal(t, "  a\n\n  b", indentBody(2, "a\n\nb"))
}
