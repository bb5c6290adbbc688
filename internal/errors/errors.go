package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"goresid/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. Domain sentinels are mapped
// to their code so the cause keeps its classification.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    Classify(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code of the outermost AppError, or the code
// derived from domain sentinels.
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	if err == nil {
		return "UNKNOWN"
	}
	return Classify(err)
}

// Predefined error codes
const (
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeNotFound       = "NOT_FOUND"
	CodeShapeMismatch  = "SHAPE_MISMATCH"
	CodeNumerical      = "NUMERICAL_DEGENERACY"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeCanceled       = "CANCELED"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeModelExecution = "MODEL_EXECUTION_ERROR"
)

// Classify maps domain sentinels onto error codes.
func Classify(err error) string {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	case core.IsNotFoundError(err):
		return CodeNotFound
	case core.IsShapeError(err):
		return CodeShapeMismatch
	case core.IsNumericalError(err):
		return CodeNumerical
	case stderrors.Is(err, core.ErrInvalidAlpha), stderrors.Is(err, core.ErrInvalidOrder):
		return CodeInvalidInput
	default:
		return CodeInternalError
	}
}

// HTTPStatus is the response status for an error code.
func HTTPStatus(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeShapeMismatch, CodeNumerical:
		return http.StatusUnprocessableEntity
	case CodeInvalidInput, CodeConfigInvalid:
		return http.StatusBadRequest
	case CodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// ModelExecution reports a predictor failure. A cause carrying a domain
// sentinel keeps that sentinel's code.
func ModelExecution(model string, cause error) *AppError {
	code := Classify(cause)
	if code == CodeInternalError {
		code = CodeModelExecution
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf("model %s failed to predict", model),
		Cause:   cause,
	}
}

func Canceled(cause error) *AppError {
	return &AppError{Code: CodeCanceled, Message: "run canceled", Cause: cause}
}
