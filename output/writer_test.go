package output

import (
	"context"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/quickform-go/generator"
	"github.com/satishbabariya/quickform-go/schema"
)

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteFreshTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriterFs(fs, "out", PolicyOverwrite)

	report, err := w.Write([]generator.Artifact{
		{Path: "src/models/user.ts", Content: []byte("model"), Template: "model"},
		{Path: "package.json", Content: []byte(`{"name":"x"}`), Template: "package", Mergeable: true},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"src/models/user.ts", "package.json"}, report.Written)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Merged)
	assert.Equal(t, 2, report.Total())

	assert.Equal(t, "model", readFile(t, fs, "out/src/models/user.ts"))
}

func TestWriteOverwritePolicy(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out/a.txt", []byte("old"), 0644))

	w := NewWriterFs(fs, "out", PolicyOverwrite)
	report, err := w.Write([]generator.Artifact{
		{Path: "a.txt", Content: []byte("new"), Template: "t"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, report.Written)
	assert.Equal(t, "new", readFile(t, fs, "out/a.txt"))
}

func TestWriteSkipPolicy(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out/a.txt", []byte("old"), 0644))

	w := NewWriterFs(fs, "out", PolicySkip)
	report, err := w.Write([]generator.Artifact{
		{Path: "a.txt", Content: []byte("new"), Template: "t"},
		{Path: "b.txt", Content: []byte("fresh"), Template: "t2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, report.Skipped)
	assert.Equal(t, []string{"b.txt"}, report.Written)
	assert.Equal(t, "old", readFile(t, fs, "out/a.txt"))
	assert.Equal(t, "fresh", readFile(t, fs, "out/b.txt"))
}

func TestWriteMergePolicy(t *testing.T) {
	fs := afero.NewMemMapFs()
	existing := `{
  "name": "mine",
  "scripts": {"deploy": "sh deploy.sh"},
  "dependencies": {"left-pad": "^1.0.0"}
}`
	require.NoError(t, afero.WriteFile(fs, "out/package.json", []byte(existing), 0644))
	require.NoError(t, afero.WriteFile(fs, "out/readme.md", []byte("old"), 0644))

	w := NewWriterFs(fs, "out", PolicyMerge)
	report, err := w.Write([]generator.Artifact{
		{
			Path:      "package.json",
			Content:   []byte(`{"name": "generated", "dependencies": {"express": "^4.0.0"}}`),
			Template:  "package",
			Mergeable: true,
		},
		// Non-mergeable artifacts fall back to overwrite under merge.
		{Path: "readme.md", Content: []byte("new"), Template: "readme"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"package.json"}, report.Merged)
	assert.Equal(t, []string{"readme.md"}, report.Written)

	merged := readFile(t, fs, "out/package.json")
	// Incoming values win, untouched keys survive.
	assert.Contains(t, merged, `"generated"`)
	assert.Contains(t, merged, `"express"`)
	assert.Contains(t, merged, `"left-pad"`)
	assert.Contains(t, merged, `"deploy"`)
	assert.NotContains(t, merged, `"mine"`)

	assert.Equal(t, "new", readFile(t, fs, "out/readme.md"))
}

func TestWriteRejectsDuplicatePaths(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriterFs(fs, "out", PolicyOverwrite)

	_, err := w.Write([]generator.Artifact{
		{Path: "a.txt", Content: []byte("1"), Template: "first"},
		{Path: "a.txt", Content: []byte("2"), Template: "second"},
	})

	var dup *DuplicatePathError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a.txt", dup.Path)
	assert.Equal(t, []string{"first", "second"}, dup.Templates)

	// Nothing may be written when the artifact set is rejected.
	exists, _ := afero.Exists(fs, "out/a.txt")
	assert.False(t, exists)
}

func TestWriteStagingFailureTouchesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out/package.json", []byte("not json"), 0644))

	w := NewWriterFs(fs, "out", PolicyMerge)
	_, err := w.Write([]generator.Artifact{
		{Path: "fresh.txt", Content: []byte("x"), Template: "t"},
		{Path: "package.json", Content: []byte(`{"a":1}`), Template: "package", Mergeable: true},
	})

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "merge", ioErr.Op)

	// The artifact staged before the failure must not have been committed.
	exists, _ := afero.Exists(fs, "out/fresh.txt")
	assert.False(t, exists)
}

// A run with rendering failures must leave a previously generated target
// tree byte-identical, end to end through the orchestrator.
func TestCommitRunRefusesFailedRun(t *testing.T) {
	target := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(target, "out/src/models/item.ts", []byte("previous model"), 0644))
	require.NoError(t, afero.WriteFile(target, "out/package.json", []byte(`{"name":"mine"}`), 0644))

	overrides := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(overrides, "tpl/controller.tmpl", []byte(`{{.NoSuchField}}`), 0644))

	s := &schema.Schema{
		Config: schema.Config{
			ProjectName: "catalog",
			Auth:        schema.AuthNone,
			Database:    schema.MongoDB,
			Email:       schema.EmailNone,
		},
		Models: []schema.Model{
			{Name: "Item", Fields: []schema.Field{{Name: "name", Type: schema.TypeString}}},
		},
	}

	result := generator.New(s).
		WithResolver(generator.NewResolverFs(overrides, "tpl")).
		Run(context.Background())
	require.NotEmpty(t, result.Failures)

	w := NewWriterFs(target, "out", PolicyOverwrite)
	_, err := CommitRun(result, w)
	require.ErrorIs(t, err, generator.ErrGenerationFailed)

	assert.Equal(t, "previous model", readFile(t, target, "out/src/models/item.ts"))
	assert.Equal(t, `{"name":"mine"}`, readFile(t, target, "out/package.json"))

	var files []string
	require.NoError(t, afero.Walk(target, "out", func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, path)
		}
		return nil
	}))
	assert.ElementsMatch(t, []string{"out/src/models/item.ts", "out/package.json"}, files)
}

func TestCommitRunWritesCleanRun(t *testing.T) {
	target := afero.NewMemMapFs()
	s := &schema.Schema{
		Config: schema.Config{
			ProjectName: "catalog",
			Auth:        schema.AuthNone,
			Database:    schema.MongoDB,
			Email:       schema.EmailNone,
		},
		Models: []schema.Model{
			{Name: "Item", Fields: []schema.Field{{Name: "name", Type: schema.TypeString}}},
		},
	}

	result := generator.New(s).Run(context.Background())
	require.Empty(t, result.Failures)

	w := NewWriterFs(target, "out", PolicyOverwrite)
	report, err := CommitRun(result, w)
	require.NoError(t, err)
	assert.Equal(t, len(result.Artifacts), report.Total())

	exists, _ := afero.Exists(target, "out/src/models/item.ts")
	assert.True(t, exists)
}

func TestParsePolicy(t *testing.T) {
	for _, p := range Policies {
		got, err := ParsePolicy(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePolicy("append")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overwrite, skip, merge")
}
