// Package common defines the error values shared across RecipeBook layers.
//
// Repositories report failures with the sentinel errors below (match with
// errors.Is). Services translate them into tagged *Error values carrying the
// error kind; the transport layer maps kinds to status codes and response
// envelopes.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
)

// Kind classifies an operation failure. Every service operation returns either
// a payload or exactly one tagged error; kinds are the only contract the
// transport layer relies on when shaping responses.
type Kind string

const (
	KindInvalidInput    Kind = "invalid_input"
	KindUnauthenticated Kind = "unauthenticated"
	KindUnauthorized    Kind = "unauthorized"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// Error is a tagged error returned by service operations. Details carries
// per-field validation messages for KindInvalidInput.
type Error struct {
	Kind    Kind
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Message
}

// Status maps the error kind to its HTTP status equivalent. Validation
// failures map to 403, matching the contract clients already depend on.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidInput:
		return 403
	case KindUnauthenticated, KindUnauthorized:
		return 401
	case KindConflict:
		return 409
	case KindNotFound:
		return 404
	default:
		return 500
	}
}

// Extensions exposes the status code and validation details to the GraphQL
// executor, which carries them into the formatted error output.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"status": e.Status()}
	if len(e.Details) > 0 {
		ext["data"] = e.Details
	}
	return ext
}

func NewInvalidInput(details []string) *Error {
	return &Error{Kind: KindInvalidInput, Message: "Invalid Input", Details: details}
}

func NewUnauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func NewUnauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func NewConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NewNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewInternal() *Error {
	return &Error{Kind: KindInternal, Message: "An error occured"}
}

// HasKind reports whether err is a tagged error of the given kind.
func HasKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
