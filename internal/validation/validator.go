package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const AgeLength = 2

var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validator runs the submission checks. The phone length depends on locale
// (9 or 10) and comes from configuration.
type Validator struct {
	PhoneLength int
}

func New(phoneLength int) *Validator {
	return &Validator{PhoneLength: phoneLength}
}

// Validate runs the full submission pass: the required check over every
// field first, then the per-field semantic checks. Later checks overwrite or
// clear a field's entry, so the last check run for a field decides its final
// state; a non-empty malformed email ends up with only the shape error.
// Failures never propagate as errors; the returned registry is the whole
// result, and the marks mirror it for input highlighting.
func (v *Validator) Validate(values Values) (*Registry, Marks) {
	registry := NewRegistry()
	marks := make(Marks)

	for _, field := range AllFields {
		v.CheckRequired(registry, marks, field, values[field])
	}

	v.CheckValue(registry, marks, FieldFirstName, values[FieldFirstName])
	v.CheckValue(registry, marks, FieldLastName, values[FieldLastName])
	v.CheckEmail(registry, marks, values[FieldEmail])
	v.CheckLength(registry, marks, FieldPhone, values[FieldPhone], v.PhoneLength)
	v.CheckLength(registry, marks, FieldAge, values[FieldAge], AgeLength)

	return registry, marks
}

// CheckRequired fails when the trimmed value is empty.
func (v *Validator) CheckRequired(registry *Registry, marks Marks, field Field, value string) {
	if strings.TrimSpace(value) == "" {
		registry.SetField(field, fmt.Sprintf("%s is required", field.Label()))
		marks[field] = MarkInvalid
	} else {
		registry.ClearField(field)
		marks[field] = MarkValid
	}
}

// CheckValue re-runs the presence check for a single field. Same rule as
// CheckRequired; it exists so the per-field pass can overwrite whatever the
// earlier bulk pass left behind.
func (v *Validator) CheckValue(registry *Registry, marks Marks, field Field, value string) {
	v.CheckRequired(registry, marks, field, value)
}

// CheckLength fails when a non-empty trimmed value does not have exactly the
// configured length. Empty values are left to the required check.
func (v *Validator) CheckLength(registry *Registry, marks Marks, field Field, value string, length int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	if len(trimmed) == length {
		registry.ClearField(field)
		marks[field] = MarkValid
	} else {
		registry.SetField(field, fmt.Sprintf("%s must be %d characters", field.Label(), length))
		marks[field] = MarkInvalid
	}
}

// CheckEmail fails when a non-empty trimmed value does not look like an
// email address. The shape is deliberately loose: something, "@", something,
// ".", something.
func (v *Validator) CheckEmail(registry *Registry, marks Marks, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	if emailShape.MatchString(trimmed) {
		registry.ClearField(FieldEmail)
		marks[FieldEmail] = MarkValid
	} else {
		registry.SetField(FieldEmail, "Email is not valid")
		marks[FieldEmail] = MarkInvalid
	}
}
