package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Struct tags read by the create and patch validators.
const (
	createTag = "create"
	patchTag  = "patch"
)

var (
	createValidator = newValidator(createTag)
	patchValidator  = newValidator(patchTag)
)

func newValidator(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tag)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validateRate, ShipmentInput{})
	return v
}

func validateRate(sl validator.StructLevel) {
	in := sl.Current().Interface().(ShipmentInput)
	if in.Rate == nil {
		return
	}
	if tag, param := in.Rate.check(); tag != "" {
		sl.ReportError(in.Rate, "rate", "Rate", tag, param)
	}
}

// ValidateCreate checks a create body: the four party and location fields
// are required, everything else is bounded when present.
func (in ShipmentInput) ValidateCreate() error {
	return translate(createValidator.Struct(in))
}

// ValidatePatch checks only the fields present in a partial update.
func (in ShipmentInput) ValidatePatch() error {
	return translate(patchValidator.Struct(in))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	v := &ValidationError{}
	for _, fe := range fieldErrs {
		v.add(fe.Field(), reason(fe))
	}
	return v.orNil()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return "must not be negative"
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "scale":
		return fmt.Sprintf("must have an exponent between -%s and %s", fe.Param(), fe.Param())
	default:
		return "is invalid"
	}
}
