package output

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/satishbabariya/quickform-go/generator"
)

// Writer commits artifacts under a root directory according to a conflict
// policy.
type Writer struct {
	target afero.Fs
	root   string
	policy Policy
}

// NewWriter writes to the OS filesystem under root.
func NewWriter(root string, policy Policy) *Writer {
	return NewWriterFs(afero.NewOsFs(), root, policy)
}

// NewWriterFs writes to the given filesystem; used by tests.
func NewWriterFs(fs afero.Fs, root string, policy Policy) *Writer {
	return &Writer{target: fs, root: root, policy: policy}
}

// CommitRun enforces the all-or-nothing discipline for a generation run: a
// run that recorded any failure commits nothing and the target tree keeps
// its pre-run state. Successful runs write through w.
func CommitRun(result *generator.Result, w *Writer) (*Report, error) {
	if err := result.Err(); err != nil {
		return nil, err
	}
	return w.Write(result.Artifacts)
}

// stagedFile is one artifact with its commit decision already made.
type stagedFile struct {
	rel     string
	action  string // "write", "skip", "merge"
	content []byte
}

// Write stages every artifact, then commits. Duplicate output paths abort
// before staging; any staging failure aborts before the target directory is
// touched.
func (w *Writer) Write(artifacts []generator.Artifact) (*Report, error) {
	if err := checkDuplicates(artifacts); err != nil {
		return nil, err
	}

	staging := afero.NewMemMapFs()
	staged := make([]stagedFile, 0, len(artifacts))
	for _, a := range artifacts {
		sf, err := w.stage(staging, a)
		if err != nil {
			return nil, err
		}
		staged = append(staged, sf)
	}

	report := &Report{}
	for _, sf := range staged {
		switch sf.action {
		case "skip":
			report.Skipped = append(report.Skipped, sf.rel)
			continue
		case "merge":
			report.Merged = append(report.Merged, sf.rel)
		default:
			report.Written = append(report.Written, sf.rel)
		}
		full := filepath.Join(w.root, filepath.FromSlash(sf.rel))
		if err := w.target.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return nil, &IOError{Op: "mkdir", Path: filepath.Dir(full), Cause: err}
		}
		if err := afero.WriteFile(w.target, full, sf.content, 0o644); err != nil {
			return nil, &IOError{Op: "write", Path: full, Cause: err}
		}
	}
	return report, nil
}

// stage decides what to do with one artifact and records its final content
// on the staging filesystem.
func (w *Writer) stage(staging afero.Fs, a generator.Artifact) (stagedFile, error) {
	sf := stagedFile{rel: a.Path, action: "write", content: a.Content}

	full := filepath.Join(w.root, filepath.FromSlash(a.Path))
	exists, err := afero.Exists(w.target, full)
	if err != nil {
		return sf, &IOError{Op: "stat", Path: full, Cause: err}
	}
	if exists {
		switch w.policy {
		case PolicySkip:
			sf.action = "skip"
		case PolicyMerge:
			if a.Mergeable {
				existing, err := afero.ReadFile(w.target, full)
				if err != nil {
					return sf, &IOError{Op: "read", Path: full, Cause: err}
				}
				merged, err := MergeJSON(existing, a.Content)
				if err != nil {
					return sf, &IOError{Op: "merge", Path: full, Cause: err}
				}
				sf.action = "merge"
				sf.content = merged
			}
		}
	}

	if sf.action != "skip" {
		if err := staging.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
			return sf, &IOError{Op: "stage", Path: a.Path, Cause: err}
		}
		if err := afero.WriteFile(staging, a.Path, sf.content, os.FileMode(0o644)); err != nil {
			return sf, &IOError{Op: "stage", Path: a.Path, Cause: err}
		}
	}
	return sf, nil
}

func checkDuplicates(artifacts []generator.Artifact) error {
	byPath := make(map[string][]string, len(artifacts))
	for _, a := range artifacts {
		byPath[a.Path] = append(byPath[a.Path], a.Template)
	}
	var dup *DuplicatePathError
	for path, templates := range byPath {
		if len(templates) < 2 {
			continue
		}
		if dup == nil || path < dup.Path {
			sort.Strings(templates)
			dup = &DuplicatePathError{Path: path, Templates: templates}
		}
	}
	if dup != nil {
		return dup
	}
	return nil
}
