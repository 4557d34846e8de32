package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Business-rule violations surfaced verbatim to the user.
var (
	ErrSelfVote          = errors.New("you cannot vote on your own activity")
	ErrAlreadyVoted      = errors.New("you already voted on this activity")
	ErrActivityFinal     = errors.New("this activity has already been validated")
	ErrNotGroupMember    = errors.New("you are not a member of this group")
	ErrDuplicateActivity = errors.New("you already posted an activity for this day")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrSelfVote) || errors.Is(err, ErrNotGroupMember) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrAlreadyVoted) ||
		errors.Is(err, ErrActivityFinal) || errors.Is(err, ErrDuplicateActivity) {
		return http.StatusConflict
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
