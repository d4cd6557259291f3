package service

import (
	"errors"
	"fmt"
)

// Category sentinels. Errors returned by the service unwrap to exactly one of
// these, so the handler layer can map them to status codes with errors.Is
// while the error message itself stays rule-specific.
var (
	ErrFailedValidation = errors.New("failed validation")
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("conflict")
	ErrSyntax           = errors.New("syntax error")
	ErrInternal         = errors.New("internal error")
)

// messageError carries a user-facing message and unwraps to its category
// sentinel.
type messageError struct {
	msg      string
	category error
}

func (e *messageError) Error() string { return e.msg }

func (e *messageError) Unwrap() error { return e.category }

func notFoundError(format string, args ...interface{}) error {
	return &messageError{msg: fmt.Sprintf(format, args...), category: ErrNotFound}
}

func conflictError(format string, args ...interface{}) error {
	return &messageError{msg: fmt.Sprintf(format, args...), category: ErrConflict}
}

func internalError(message string) error {
	return &messageError{msg: message, category: ErrInternal}
}

// syntaxError is returned whenever a name field contains a regex
// metacharacter, regardless of entity type.
func syntaxError() error {
	return &messageError{msg: "Syntax Error: not allowed characters", category: ErrSyntax}
}

// failedValidation flattens a validation error map into a single error that
// unwraps to ErrFailedValidation.
func failedValidation(errorMap map[string]string) error {
	var msg string
	for k, v := range errorMap {
		msg = fmt.Sprintf("%q %s", k, v)
	}
	return &messageError{msg: msg, category: ErrFailedValidation}
}
