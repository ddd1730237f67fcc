package models

import (
	"errors"
	"fmt"
)

// ErrInvalidBoardData is returned when a persisted board column cannot be
// decoded back into a Board.
var ErrInvalidBoardData = errors.New("invalid board data")

// ErrorKind classifies engine failures so the API layer can map them to
// HTTP status codes without inspecting message text.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// Machine-readable error codes surfaced in the `details` field of error
// responses.
const (
	CodeUserNotFound         = "user_not_found"
	CodeSessionNotFound      = "session_not_found"
	CodeUnknownGameType      = "unknown_game_type"
	CodeInvalidCoordinates   = "invalid_coordinates"
	CodeNotInSession         = "not_in_session"
	CodeInvalidPaging        = "invalid_paging"
	CodeInvalidMetric        = "invalid_metric"
	CodeInvalidBody          = "invalid_body"
	CodeNotYourTurn          = "not_your_turn"
	CodeCellOccupied         = "cell_occupied"
	CodeAlreadyFinished      = "already_finished"
	CodeAlreadyFull          = "already_full"
	CodeNotActive            = "not_active"
	CodeCannotJoinOwnSession = "cannot_join_own_session"
	CodeInvariantViolation   = "invariant_violation"
	CodeStorage              = "storage_error"
)

// GameError is the tagged error type returned by the engine and query
// layers. Kind drives the HTTP status, Code is the stable machine code,
// Message is human readable.
type GameError struct {
	Kind    ErrorKind
	Code    string
	Message string
	cause   error
}

func (e *GameError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *GameError) Unwrap() error {
	return e.cause
}

// NewValidationError builds a 400-class error.
func NewValidationError(code, format string, args ...interface{}) *GameError {
	return &GameError{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError builds a 404-class error.
func NewNotFoundError(code, format string, args ...interface{}) *GameError {
	return &GameError{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError builds a 409-class error for state-machine violations.
func NewConflictError(code, format string, args ...interface{}) *GameError {
	return &GameError{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError wraps an unexpected failure (store I/O, invariant
// violation). These indicate a bug or infrastructure fault and are logged.
func NewInternalError(code string, cause error, format string, args ...interface{}) *GameError {
	return &GameError{Kind: KindInternal, Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// AsGameError extracts a *GameError from an error chain.
func AsGameError(err error) (*GameError, bool) {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
