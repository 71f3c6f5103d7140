package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report violations under the wire name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidationError aggregates field-level constraint violations.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validate checks v against its struct tags and returns a *ValidationError
// listing every violation, or nil.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(violations))
	for _, fe := range violations {
		messages = append(messages, fieldMessage(fe))
	}

	return &ValidationError{Messages: messages}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: must not be blank", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s: must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s: must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s: must be exactly %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s: invalid value", fe.Field())
	}
}
