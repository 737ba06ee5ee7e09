package myerrors

import (
	"errors"
	"fmt"
)

var (
	ErrDBConnClosed = errors.New("failed to connect to db")

	// ErrNoRowsUpdated is returned by repositories when a conditional
	// status update matched no row. The service layer re-reads the row
	// to tell a lost race (ConflictError) from a missing id (NotFoundError).
	ErrNoRowsUpdated = errors.New("no rows updated")
)

// ValidationError means required input is missing or malformed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError means the actor is not the owner or assignee
// required by the operation.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string {
	return e.Msg
}

func Authorizationf(format string, args ...any) error {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced request/provider/user id does not resolve.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConflictError means the request is not in a status the transition is
// legal from. It carries the current status: losing a race is an
// expected outcome and the caller needs the post-transition state.
type ConflictError struct {
	CurrentStatus string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("request is already %s", e.CurrentStatus)
}

func Conflict(currentStatus string) error {
	return &ConflictError{CurrentStatus: currentStatus}
}
