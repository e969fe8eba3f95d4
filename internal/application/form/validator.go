package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/quote"
)

// ErrIncompleteForm blocks the "request quote" action until every field
// meets its minimum.
var ErrIncompleteForm = errors.New("form is incomplete")

// FieldError describes one field that failed its rule.
type FieldError struct {
	// Field is the dotted JSON path of the field (e.g., "dimensions.width")
	Field string `json:"field"`

	// Rule is the failed rule (e.g., "gte", "required")
	Rule string `json:"rule"`

	// Param is the rule parameter (e.g., "0.5")
	Param string `json:"param,omitempty"`

	// Value is the rejected value
	Value any `json:"value,omitempty"`
}

// Message renders the failure in Spanish, the language of the forms.
func (e FieldError) Message() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%s es obligatorio", e.Field)
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", e.Field, e.Param)
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual a %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s no es válido", e.Field)
	}
}

// ValidationError carries every failing field. It matches ErrIncompleteForm
// with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("%s: %s", ErrIncompleteForm, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrIncompleteForm }

// Validator checks form inputs against their `validate` struct tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(doorLeaves, quote.DoorInput{})
	return &Validator{validate: v}
}

// doorLeaves checks the leaf count of vaiven doors. Other door types carry
// no leaves, so whatever the field holds is ignored.
func doorLeaves(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(quote.DoorInput)
	if !ok || in.Type != catalog.DoorVaiven {
		return
	}
	switch {
	case in.Leaves < 1:
		sl.ReportError(in.Leaves, "leaves", "Leaves", "gte", "1")
	case in.Leaves > 2:
		sl.ReportError(in.Leaves, "leaves", "Leaves", "lte", "2")
	}
}

// Validate checks a product input struct.
//
// Parameters:
//   - input: one of the quote input structs
//
// Returns:
//   - error: *ValidationError when any field fails, nil otherwise
func (v *Validator) Validate(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return &ValidationError{Fields: fields}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
