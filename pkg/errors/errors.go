package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Code extracts the AppError code, or INTERNAL_ERROR for foreign errors.
func Code(err error) string {
	if ae, ok := err.(*AppError); ok {
		return ae.Code
	}
	return ErrCodeInternalError
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code string) bool {
	ae, ok := err.(*AppError)
	return ok && ae.Code == code
}

// Common error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeInvalidState  = "INVALID_STATE"
)

// Queue / ready-check codes
const (
	ErrCodeAlreadyQueued    = "ALREADY_QUEUED"
	ErrCodeNotQueued        = "NOT_QUEUED"
	ErrCodeAlreadyInMatch   = "ALREADY_IN_ACTIVE_MATCH"
	ErrCodeBanned           = "BANNED"
	ErrCodeNotInCheck       = "NOT_IN_THIS_CHECK"
	ErrCodeAlreadyConfirmed = "ALREADY_CONFIRMED"
	ErrCodeCheckNotPending  = "CHECK_NOT_PENDING"
)

// Match / veto codes
const (
	ErrCodeNotYourTurn    = "NOT_YOUR_TURN"
	ErrCodeMapUnavailable = "MAP_UNAVAILABLE"
	ErrCodeNotACaptain    = "NOT_A_CAPTAIN"
	ErrCodeVetoInProgress = "VETO_IN_PROGRESS"
	ErrCodeAlreadyClosed  = "ALREADY_CLOSED"
	ErrCodeNotClosed      = "NOT_CLOSED"
)
