package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the HTTP layer can map it to a
// status code without inspecting message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindStoreWrite
	KindNotificationDelivery
	KindUpload
)

// Error is the shared application error type.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// NewValidationError reports rejected input.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewConflictError reports a state conflict.
func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NewDateConflictError reports an event date that is already booked.
func NewDateConflictError(date string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("event date %s is already booked", date)}
}

// NewInvalidStateError reports a disallowed status transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewUnauthorizedError reports failed authentication.
func NewUnauthorizedError(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// NewForbiddenError reports insufficient permissions.
func NewForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NewStoreWriteError wraps a failed write against the backing store.
func NewStoreWriteError(op string, err error) *Error {
	return &Error{Kind: KindStoreWrite, Message: fmt.Sprintf("store write failed: %s", op), Err: err}
}

// NewNotificationError wraps a failed outbound notification. Callers treat it
// as a degraded success, never a rollback.
func NewNotificationError(err error) *Error {
	return &Error{Kind: KindNotificationDelivery, Message: "notification delivery failed", Err: err}
}

// NewUploadError wraps a failed image-hosting call.
func NewUploadError(err error) *Error {
	return &Error{Kind: KindUpload, Message: "image upload failed", Err: err}
}
