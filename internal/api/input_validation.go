package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the payload's validate tags and returns field-level
// messages keyed by JSON field name, or nil when the payload is valid.
func validateStruct(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fields["payload"] = "invalid payload"
		return fields
	}
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = fieldErrorMessage(fieldError)
	}
	return fields
}

func fieldErrorMessage(fieldError validator.FieldError) string {
	field := fieldError.Field()
	switch fieldError.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldError.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldError.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fieldError.Tag())
	}
}

var maxPriceExclusive = decimal.NewFromInt(1000)

// isValidPrice enforces the decimal(5,2) contract: at most two decimal
// places and at most five digits overall.
func isValidPrice(price decimal.Decimal) bool {
	if price.Exponent() < -2 {
		return false
	}
	return price.Abs().LessThan(maxPriceExclusive)
}
