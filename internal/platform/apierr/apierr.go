package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/yungbote/neurotutor-backend/internal/generation"
	pkgerrors "github.com/yungbote/neurotutor-backend/internal/pkg/errors"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Status int
	Code   string
	Err    error
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthorized(err error) *Error {
	if err == nil {
		err = pkgerrors.ErrUnauthorized
	}
	return New(http.StatusUnauthorized, "unauthorized", err)
}

func InvalidInput(fields ...FieldError) *Error {
	msg := "invalid input"
	if len(fields) > 0 {
		msg = "invalid input: " + fields[0].Field + " " + fields[0].Message
		for _, f := range fields[1:] {
			msg += "; " + f.Field + " " + f.Message
		}
	}
	return &Error{Status: http.StatusBadRequest, Code: "invalid_input", Err: errors.New(msg), Fields: fields}
}

func NotFound(what string) *Error {
	return NotFoundCode("not_found", what)
}

// NotFoundCode reports a missing resource under a resource-specific code.
func NotFoundCode(code, what string) *Error {
	return New(http.StatusNotFound, code, fmt.Errorf("%s %w", what, pkgerrors.ErrNotFound))
}

func Conflict(code string, err error) *Error {
	return New(http.StatusConflict, code, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal_error", err)
}

// From classifies any error returned by a service into an *Error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var genErr *generation.GenerationError
	if errors.As(err, &genErr) {
		return New(http.StatusInternalServerError, "generation_error", err)
	}
	var valErr *generation.ValidationError
	if errors.As(err, &valErr) {
		return New(http.StatusInternalServerError, "validation_error", err)
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, pkgerrors.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, pkgerrors.ErrConflict):
		return New(http.StatusConflict, "conflict", err)
	}
	return Internal(err)
}
