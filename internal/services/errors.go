package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error kinds. Handlers map them onto HTTP statuses with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error is a client-facing failure: Error() is safe to return to the caller
// and Unwrap exposes its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func parseID(id, what string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, newError(ErrInvalidInput, "Invalid "+what+" ID format")
	}
	return objID, nil
}
