// Package generator turns a validated schema into the complete artifact set
// for one run: it resolves templates, renders them against model or project
// contexts, and collects the results in a stable order.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrTemplateNotFound indicates an unresolvable template identifier.
	ErrTemplateNotFound = errors.New("quickform: template not found")
	// ErrRenderFailed indicates a template rendering failure.
	ErrRenderFailed = errors.New("quickform: render failed")
	// ErrExtensionFailed indicates a registered hook returned an error.
	ErrExtensionFailed = errors.New("quickform: extension hook failed")
	// ErrGenerationFailed indicates one or more artifacts failed.
	ErrGenerationFailed = errors.New("quickform: generation failed")
)

// TemplateError reports a template resolution or rendering failure. It
// names the template identifier and, for resolution failures, every
// directory that was searched.
type TemplateError struct {
	Template string
	Searched []string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	var b strings.Builder
	b.WriteString("quickform: template ")
	b.WriteString(e.Template)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Searched) > 0 {
		b.WriteString(" (searched: ")
		b.WriteString(strings.Join(e.Searched, ", "))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches a template sentinel.
func (e *TemplateError) Is(target error) bool {
	if target == ErrTemplateNotFound {
		return len(e.Searched) > 0
	}
	return target == ErrRenderFailed
}

// ExtensionError reports a hook failure at a named extension point.
type ExtensionError struct {
	Phase Phase
	Model string
	Cause error
}

// Error implements the error interface.
func (e *ExtensionError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("quickform: extension hook at %s for model %s: %v", e.Phase, e.Model, e.Cause)
	}
	return fmt.Sprintf("quickform: extension hook at %s: %v", e.Phase, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ExtensionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the extension sentinel.
func (e *ExtensionError) Is(target error) bool {
	return target == ErrExtensionFailed
}

// Failure records one artifact or phase that failed during a run.
// Generation continues past failures; the complete set is reported at the
// end and a run with any failure commits nothing.
type Failure struct {
	Template string
	Model    string
	Err      error
}

// String formats the failure for user-facing output.
func (f Failure) String() string {
	if f.Model != "" {
		return fmt.Sprintf("%s (model %s): %v", f.Template, f.Model, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Template, f.Err)
}
