// Package output commits a generated artifact set to the target directory.
//
// Artifacts are staged on an in-memory filesystem first; the target is only
// touched once every artifact has staged cleanly, so a failed run never
// leaves a half-written project behind.
package output

import (
	"fmt"
	"strings"
)

// Policy decides what happens when an artifact's output path already exists.
type Policy string

const (
	// PolicyOverwrite replaces existing files unconditionally.
	PolicyOverwrite Policy = "overwrite"
	// PolicySkip leaves existing files untouched.
	PolicySkip Policy = "skip"
	// PolicyMerge structurally merges mergeable artifacts into existing
	// files and overwrites the rest.
	PolicyMerge Policy = "merge"
)

// Policies lists every valid conflict policy.
var Policies = []Policy{PolicyOverwrite, PolicySkip, PolicyMerge}

// ParsePolicy converts a flag value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range Policies {
		if Policy(s) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown conflict policy %q, expected one of %s", s, joinPolicies())
}

func joinPolicies() string {
	names := make([]string, len(Policies))
	for i, p := range Policies {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// IOError wraps a filesystem failure while committing artifacts.
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

// DuplicatePathError reports two artifacts claiming the same output path.
// This is a template-set configuration problem, not an I/O failure, and is
// detected before anything is staged.
type DuplicatePathError struct {
	Path      string
	Templates []string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("artifact path %q produced by multiple templates: %s",
		e.Path, strings.Join(e.Templates, ", "))
}

// Report summarizes one commit: which relative paths were written fresh,
// skipped because they existed, or structurally merged.
type Report struct {
	Written []string
	Skipped []string
	Merged  []string
}

// Total returns the number of artifacts the commit considered.
func (r *Report) Total() int {
	return len(r.Written) + len(r.Skipped) + len(r.Merged)
}
