// Package diagnostics accumulates schema errors and warnings.
//
// Validation never stops at the first problem: every violation is pushed
// into a Diagnostics collection and the whole set is reported at once, so
// a user can fix all problems in a single pass.
package diagnostics

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is a single validation or parse finding. Model and Field are
// empty when the finding is not tied to a specific declaration; Line and
// Column are zero when unknown.
type Diagnostic struct {
	Severity Severity
	Message  string
	Model    string
	Field    string
	Line     int
	Column   int
}

// String formats the diagnostic without color.
func (d Diagnostic) String() string {
	var buf bytes.Buffer
	switch {
	case d.Model != "" && d.Field != "":
		fmt.Fprintf(&buf, "model %s, field %s: ", d.Model, d.Field)
	case d.Model != "":
		fmt.Fprintf(&buf, "model %s: ", d.Model)
	}
	buf.WriteString(d.Message)
	if d.Line > 0 {
		fmt.Fprintf(&buf, " (line %d)", d.Line)
	}
	return buf.String()
}

// Diagnostics is an ordered collection of errors and warnings.
type Diagnostics struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

// New returns an empty collection.
func New() *Diagnostics {
	return &Diagnostics{}
}

// PushError adds an error-severity diagnostic.
func (d *Diagnostics) PushError(diag Diagnostic) {
	diag.Severity = SeverityError
	d.errors = append(d.errors, diag)
}

// PushWarning adds a warning-severity diagnostic.
func (d *Diagnostics) PushWarning(diag Diagnostic) {
	diag.Severity = SeverityWarning
	d.warnings = append(d.warnings, diag)
}

// Errorf adds an error diagnostic attached to a model/field pair. Either
// name may be empty.
func (d *Diagnostics) Errorf(model, field, format string, args ...any) {
	d.PushError(Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Model:   model,
		Field:   field,
	})
}

// Warnf adds a warning diagnostic attached to a model/field pair. Either
// name may be empty.
func (d *Diagnostics) Warnf(model, field, format string, args ...any) {
	d.PushWarning(Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Model:   model,
		Field:   field,
	})
}

// Errors returns all error diagnostics in push order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.errors
}

// Warnings returns all warning diagnostics in push order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.warnings
}

// HasErrors reports whether at least one error was collected.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

// Merge appends every diagnostic from other.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.errors = append(d.errors, other.errors...)
	d.warnings = append(d.warnings, other.warnings...)
}

// Error implements the error interface so a failed collection can travel
// as an error value and be recovered with errors.As.
func (d *Diagnostics) Error() string {
	n := len(d.errors)
	if n == 1 {
		return fmt.Sprintf("schema validation failed with 1 error: %s", d.errors[0].String())
	}
	return fmt.Sprintf("schema validation failed with %d errors", n)
}

// ToResult returns the collection itself as an error when it contains
// errors, nil otherwise.
func (d *Diagnostics) ToResult() error {
	if d.HasErrors() {
		return d
	}
	return nil
}

// ToPrettyString formats all errors with colors for terminal output.
func (d *Diagnostics) ToPrettyString(fileName string) string {
	var buf bytes.Buffer
	title := color.New(color.FgRed, color.Bold)
	desc := color.New(color.Bold)
	arrow := color.New(color.FgCyan, color.Bold)
	file := color.New(color.Underline)

	for _, diag := range d.errors {
		title.Fprint(&buf, "error")
		fmt.Fprint(&buf, ": ")
		desc.Fprintf(&buf, "%s\n", diag.Message)
		arrow.Fprint(&buf, "  --> ")
		if diag.Line > 0 {
			file.Fprintf(&buf, "%s:%d", fileName, diag.Line)
		} else {
			file.Fprint(&buf, fileName)
		}
		if diag.Model != "" {
			fmt.Fprintf(&buf, " (model %s", diag.Model)
			if diag.Field != "" {
				fmt.Fprintf(&buf, ", field %s", diag.Field)
			}
			fmt.Fprint(&buf, ")")
		}
		fmt.Fprint(&buf, "\n")
	}
	return buf.String()
}

// WarningsToPrettyString formats all warnings with colors.
func (d *Diagnostics) WarningsToPrettyString(fileName string) string {
	var buf bytes.Buffer
	title := color.New(color.FgYellow, color.Bold)
	desc := color.New(color.Bold)

	for _, diag := range d.warnings {
		title.Fprint(&buf, "warning")
		fmt.Fprint(&buf, ": ")
		desc.Fprintf(&buf, "%s\n", diag.String())
	}
	return buf.String()
}
