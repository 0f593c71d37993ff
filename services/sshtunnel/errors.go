package sshtunnel

import (
	"errors"
	"strings"
)

// Error kinds returned by the SSH tunnel commands. Callers match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidParameters = errors.New("SSH Tunnel parameters are invalid.")
	ErrMissingPort       = errors.New("A database port is required when connecting via SSH Tunnel.")
	ErrAlreadyExists     = errors.New("SSH Tunnel already exists for this database.")
)

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError carries the error kind together with per-field details.
// Error() renders only the kind so messages stay stable for API clients.
type ValidationError struct {
	Kind   error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return e.Kind.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Detail joins the field reasons, e.g. "private_key: required when private_key_password is set".
func (e *ValidationError) Detail() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return strings.Join(parts, "; ")
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{
		Kind:   ErrInvalidParameters,
		Fields: []FieldError{{Field: field, Reason: reason}},
	}
}

func missingPort(reason string) *ValidationError {
	return &ValidationError{
		Kind:   ErrMissingPort,
		Fields: []FieldError{{Field: "server_port", Reason: reason}},
	}
}
