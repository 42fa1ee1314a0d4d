package domain

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindUnauthenticated   Kind = "unauthenticated"
	KindInvalidCredential Kind = "invalid_credential"
	KindIdentityNotFound  Kind = "identity_not_found"
	KindInvalidLogin      Kind = "invalid_login"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindDuplicateTitle    Kind = "duplicate_title"
	KindDuplicateEmail    Kind = "duplicate_email"
	KindInvalidID         Kind = "invalid_id"
	KindValidation        Kind = "validation"
	KindInternal          Kind = "internal"
)

// Error is the single error shape that crosses the HTTP boundary. Operational
// errors are rendered as-is; anything else becomes a generic 500.
type Error struct {
	Kind        Kind
	Status      int
	Message     string
	Operational bool
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so that errors.Is(err, ErrPostNotFound) holds for any
// not-found error, whatever its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func operational(kind Kind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Message: msg, Operational: true}
}

var (
	ErrUnauthenticated  = operational(KindUnauthenticated, http.StatusUnauthorized, "Not authorized, no token")
	ErrTokenInvalid     = operational(KindInvalidCredential, http.StatusUnauthorized, "Not authorized, token failed")
	ErrTokenExpired     = operational(KindInvalidCredential, http.StatusUnauthorized, "Your token has expired! Please login again.")
	ErrIdentityNotFound = operational(KindIdentityNotFound, http.StatusUnauthorized, "User no longer exists")
	ErrInvalidLogin     = operational(KindInvalidLogin, http.StatusUnauthorized, "Invalid email or password")
	ErrPostNotFound     = operational(KindNotFound, http.StatusNotFound, "Blog not found")
	ErrUserNotFound     = operational(KindNotFound, http.StatusNotFound, "User not found")
	ErrForbiddenUpdate  = operational(KindForbidden, http.StatusForbidden, "You are not authorized to update this blog")
	ErrForbiddenDelete  = operational(KindForbidden, http.StatusForbidden, "You are not authorized to delete this blog")
	ErrDuplicateTitle   = operational(KindDuplicateTitle, http.StatusBadRequest, "Duplicate title")
	ErrDuplicateEmail   = operational(KindDuplicateEmail, http.StatusBadRequest, "Duplicate email")
	ErrInvalidID        = operational(KindInvalidID, http.StatusBadRequest, "Invalid id")
	ErrValidation       = operational(KindValidation, http.StatusBadRequest, "Invalid input data")
	ErrInternal         = &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "Something went very wrong! Please try again later."}
)

// DuplicateField builds the client-facing duplicate-key error for a title or email.
func DuplicateField(kind Kind, value string) *Error {
	return operational(kind, http.StatusBadRequest,
		fmt.Sprintf("Duplicate field value: %q. Please use another value!", value))
}

func InvalidID(field, value string) *Error {
	return operational(KindInvalidID, http.StatusBadRequest,
		fmt.Sprintf("Resource not found. Invalid %s: %s", field, value))
}

func Validation(detail string) *Error {
	return operational(KindValidation, http.StatusBadRequest, "Invalid input data. "+detail)
}

func RouteNotFound(path string) *Error {
	return operational(KindNotFound, http.StatusNotFound, fmt.Sprintf("Can't find %s on this server!", path))
}

// AsError resolves err to the *Error that should be rendered. Unknown errors
// are wrapped as non-operational internal errors so the cause is still logged.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Kind:    ErrInternal.Kind,
		Status:  ErrInternal.Status,
		Message: ErrInternal.Message,
		Err:     err,
	}
}
