// Package validator provides a small rule-collecting validator. Every failed
// check is recorded, so callers can report all violations of an operation at
// once instead of stopping at the first one.
package validator

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries every rule violation detected for an operation,
// keyed by field name.
type ValidationError struct {
	Errors map[string]string
}

// Error joins all violation messages into a single string, ordered by field
// name so the output is stable.
func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f, e.Errors[f]))
	}
	return strings.Join(msgs, "; ")
}

// Validator accumulates rule violations.
type Validator struct {
	Errors map[string]string
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no rule has been violated.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records a violation for a field. The first message for a field wins.
func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

// Check records a violation for a field unless ok is true.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// NotBlank reports whether s contains non-whitespace characters.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Err wraps the accumulated violations as an error value.
func (v *Validator) Err() error {
	return ValidationError{Errors: v.Errors}
}
