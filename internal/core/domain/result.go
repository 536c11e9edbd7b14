package domain

import (
	"errors"
	"net/http"
)

var (
	ErrUnknownForm        = errors.New("unknown form")
	ErrUnknownContentType = errors.New("unknown content type")
)

// ErrorCode classifies a failed ActionResult.
type ErrorCode string

const (
	CodeUnknownForm        ErrorCode = "UNKNOWN_FORM"
	CodeUnknownContentType ErrorCode = "UNKNOWN_CONTENT_TYPE"
	CodeUnauthenticated    ErrorCode = "UNAUTHENTICATED"
	CodePermissionDenied   ErrorCode = "PERMISSION_DENIED"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	CodeServerError        ErrorCode = "SERVER_ERROR"
)

// HTTPStatus maps a code onto the status used by the API surface.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeUnknownForm, CodeUnknownContentType, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusFail    ResultStatus = "fail"
)

type AlertVariant string

const (
	AlertDefault     AlertVariant = "default"
	AlertDestructive AlertVariant = "destructive"
	AlertSuccess     AlertVariant = "success"
	AlertInfo        AlertVariant = "info"
)

// Alert is a user-facing banner message.
type Alert struct {
	Variant     AlertVariant `json:"variant"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
}

// ActionError describes why an action failed.
type ActionError struct {
	Code        ErrorCode `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

// FieldErrors maps a field name to its first error message.
type FieldErrors map[string]string

// ActionResult is the single envelope every mutation path returns.
type ActionResult struct {
	Status      ResultStatus `json:"status"`
	Error       *ActionError `json:"error,omitempty"`
	Alert       *Alert       `json:"alert,omitempty"`
	FieldErrors FieldErrors  `json:"fieldErrors,omitempty"`
	Data        any          `json:"data,omitempty"`
}

func (r ActionResult) OK() bool { return r.Status == StatusSuccess }

// Code returns the failure code, or "" on success.
func (r ActionResult) Code() ErrorCode {
	if r.Error == nil {
		return ""
	}
	return r.Error.Code
}

// HTTPStatus returns okStatus on success and the code's mapping otherwise.
func (r ActionResult) HTTPStatus(okStatus int) int {
	if r.OK() {
		return okStatus
	}
	if r.Error == nil {
		return http.StatusBadRequest
	}
	return r.Error.Code.HTTPStatus()
}

// Success builds a successful result with a success alert.
func Success(title, description string, data any) ActionResult {
	return ActionResult{
		Status: StatusSuccess,
		Alert:  &Alert{Variant: AlertSuccess, Title: title, Description: description},
		Data:   data,
	}
}

// Failure builds a failed result; the alert mirrors the error for display.
func Failure(code ErrorCode, title, description string) ActionResult {
	return ActionResult{
		Status: StatusFail,
		Error:  &ActionError{Code: code, Title: title, Description: description},
		Alert:  &Alert{Variant: AlertDestructive, Title: title, Description: description},
	}
}

// ValidationFailure builds a VALIDATION_FAILED result carrying field messages.
func ValidationFailure(fields FieldErrors) ActionResult {
	r := Failure(CodeValidationFailed, "Validation Error", "Please check the form for errors and try again.")
	r.FieldErrors = fields
	return r
}

// ServerFailure is the generic message for unexpected errors; details stay in the logs.
func ServerFailure(description string) ActionResult {
	if description == "" {
		description = "An unexpected error occurred. Please try again."
	}
	return Failure(CodeServerError, "Error", description)
}

// Values is the canonical key/value form of submitted data. Values are string,
// []string, float64 or bool after transport normalisation.
type Values map[string]any

// String returns the value at key as a string when it is one.
func (v Values) String(key string) (string, bool) {
	s, ok := v[key].(string)
	return s, ok
}

// Has reports whether key was submitted at all.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Without returns a copy of v minus the given keys.
func (v Values) Without(keys ...string) Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
