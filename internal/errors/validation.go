package errors

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ValidationError lists the problems found per field
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// Error lists fields in name order
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, name := range slices.Sorted(maps.Keys(v.Fields)) {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", name, strings.Join(v.Fields[name], ", "))
	}
	return b.String()
}

// ValidationBuilder collects field problems for a config or input struct
type ValidationBuilder struct {
	fields map[string][]string
}

func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// Build returns nil when nothing was recorded. Otherwise it returns an
// InvalidArgument error whose "validation_errors" meta holds the fields.
func (vb *ValidationBuilder) Build() error {
	if len(vb.fields) == 0 {
		return nil
	}
	ve := &ValidationError{Fields: vb.fields}
	return InvalidArgument(ve.Error()).WithMeta("validation_errors", ve.Fields)
}

// ValidateRequired flags a blank value
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange flags value outside [lo, hi]
func ValidateRange(field string, value, lo, hi int, vb *ValidationBuilder) {
	if value < lo || value > hi {
		vb.Fieldf(field, "must be between %d and %d", lo, hi)
	}
}

// ValidateEnum flags value not in allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	if !slices.Contains(allowed, value) {
		vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
	}
}
