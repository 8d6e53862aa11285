package generator

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltin(t *testing.T) {
	r := NewResolver("")

	for _, spec := range ModelTemplates {
		src, err := r.Resolve(spec.ID)
		require.NoError(t, err, "template %s", spec.ID)
		assert.NotEmpty(t, src)
	}
	for _, spec := range ProjectTemplates {
		src, err := r.Resolve(spec.ID)
		require.NoError(t, err, "template %s", spec.ID)
		assert.NotEmpty(t, src)
	}
}

func TestResolveOverridePrecedence(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "overrides/model.tmpl", []byte("OVERRIDE"), 0644))

	r := NewResolverFs(fs, "overrides")

	src, err := r.Resolve("model")
	require.NoError(t, err)
	assert.Equal(t, "OVERRIDE", src)

	// Identifiers without an override fall through to the built-ins.
	src, err = r.Resolve("controller")
	require.NoError(t, err)
	assert.NotEqual(t, "OVERRIDE", src)
	assert.NotEmpty(t, src)
}

func TestResolveCachesFirstLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "overrides/model.tmpl", []byte("FIRST"), 0644))

	r := NewResolverFs(fs, "overrides")

	src, err := r.Resolve("model")
	require.NoError(t, err)
	assert.Equal(t, "FIRST", src)

	// A change on disk mid-run must not leak into this run.
	require.NoError(t, afero.WriteFile(fs, "overrides/model.tmpl", []byte("SECOND"), 0644))

	src, err = r.Resolve("model")
	require.NoError(t, err)
	assert.Equal(t, "FIRST", src)
}

func TestResolveUnknownIdentifier(t *testing.T) {
	r := NewResolverFs(afero.NewMemMapFs(), "overrides")

	_, err := r.Resolve("nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))

	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "nonexistent", terr.Template)
	assert.NotEmpty(t, terr.Searched)
}
