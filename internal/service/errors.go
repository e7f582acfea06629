package service

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error kinds. Match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrBusinessRule = errors.New("business rule violation")
)

// Error is a failure the caller can act on. Fields carries per-field
// messages keyed by JSON field name.
type Error struct {
	Kind    error
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// StatusCode maps the error kind to its HTTP status.
func (e *Error) StatusCode() int {
	switch {
	case errors.Is(e.Kind, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(e.Kind, ErrBusinessRule):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func notFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func ruleViolation(message string, fields map[string][]string) *Error {
	return &Error{Kind: ErrBusinessRule, Message: message, Fields: fields}
}

// orNotFound reports a vanished row as NotFound with the given message.
func orNotFound(err error, message string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(message)
	}
	return err
}
