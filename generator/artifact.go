package generator

// Artifact is one rendered output file: a path relative to the target
// root, the rendered content, and the identity of the template that
// produced it. Artifacts are immutable; a new run produces a new set.
type Artifact struct {
	// Path is the output-relative file path, always forward-slashed.
	Path string
	// Content is the rendered file content.
	Content []byte
	// Template is the logical identifier of the source template.
	Template string
	// Mergeable marks artifacts whose content is a structured document
	// eligible for the output manager's structured-merge policy.
	Mergeable bool
}
