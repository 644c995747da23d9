package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Base errors for the two halves of the pipeline. Callers classify with
// errors.Is against these sentinels.
var (
	// Profile side.
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrTimeout      = errors.New("timeout")
	ErrUpstream     = errors.New("upstream error")

	// Roast side.
	ErrConfiguration     = errors.New("configuration error")
	ErrProvider          = errors.New("provider error")
	ErrMalformedResponse = errors.New("malformed response")

	ErrInternal = errors.New("internal server error")
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewInvalidUsername(username string) *AppError {
	msg := fmt.Sprintf("Invalid GitHub username: %s", username)
	return NewAppError(ErrInvalidInput, msg, "usernames are 1-39 alphanumeric characters or hyphens, not starting or ending with a hyphen", nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s '%s' not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier), nil)
}

func NewRateLimited(service string) *AppError {
	msg := fmt.Sprintf("%s rate limit exceeded", service)
	return NewAppError(ErrRateLimited, msg, "retry later or configure an API token for a higher quota", nil)
}

func NewTimeout(operation string, err error) *AppError {
	msg := fmt.Sprintf("%s timed out", operation)
	return NewAppError(ErrTimeout, msg, "the request exceeded its time budget", err)
}

func NewUpstream(details string, err error) *AppError {
	return NewAppError(ErrUpstream, "Upstream service error", details, err)
}

func NewConfiguration(details string) *AppError {
	return NewAppError(ErrConfiguration, "Service is not configured", details, nil)
}

func NewProvider(details string, err error) *AppError {
	return NewAppError(ErrProvider, "LLM provider error", details, err)
}

func NewMalformedResponse(details string) *AppError {
	return NewAppError(ErrMalformedResponse, "LLM returned an unusable response", details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrProvider), errors.Is(err, ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (e *AppError) ToJSON() gin.H {
	return gin.H{
		"error":   e.BaseError.Error(),
		"message": e.Message,
	}
}
