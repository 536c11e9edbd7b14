package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

// RequestError reports the fields of a request body that failed its
// validate tags, keyed by their JSON names.
type RequestError struct {
	Fields domain.FieldErrors
}

func (e *RequestError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, len(names))
	for i, name := range names {
		msgs[i] = e.Fields[name]
	}
	return strings.Join(msgs, "; ")
}

type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns the echo.Validator used for fixed request bodies
// such as sign-in and setup. Form submissions go through the forms package.
func NewValidator() echo.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(domain.FieldErrors, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &RequestError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

type badRequestResponse struct {
	Error  string             `json:"error"`
	Fields domain.FieldErrors `json:"fields,omitempty"`
}

// badRequest answers a bind or validation failure.
func badRequest(c echo.Context, err error) error {
	var re *RequestError
	if errors.As(err, &re) {
		return c.JSON(http.StatusBadRequest, badRequestResponse{Error: re.Error(), Fields: re.Fields})
	}
	return c.JSON(http.StatusBadRequest, badRequestResponse{Error: "invalid payload"})
}
