package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrMalformedImport = errors.New("malformed JSON")
	ErrSchemaInvalid   = errors.New("invalid deck format")
	ErrNotInitialized  = errors.New("not initialized")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "deck", "card", "subject", "quiz"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// MalformedImportError indicates deck import data that isn't valid JSON.
// Kept distinct from SchemaInvalidError so callers can tell "invalid JSON"
// apart from "invalid deck format".
type MalformedImportError struct {
	Err error
}

func (e *MalformedImportError) Error() string {
	return fmt.Sprintf("malformed JSON: %v", e.Err)
}

func (e *MalformedImportError) Unwrap() error {
	return ErrMalformedImport
}

// SchemaInvalidError indicates parseable JSON that doesn't match the deck
// wire format.
type SchemaInvalidError struct {
	Detail string
}

func (e *SchemaInvalidError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("invalid deck format: %s", e.Detail)
	}
	return "invalid deck format"
}

func (e *SchemaInvalidError) Unwrap() error {
	return ErrSchemaInvalid
}

// NotInitializedError indicates the examklar data directory isn't set up.
type NotInitializedError struct {
	Path string
}

func (e *NotInitializedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("examklar not initialized in %s (run 'examklar onboard')", e.Path)
	}
	return "examklar not initialized (run 'examklar onboard')"
}

func (e *NotInitializedError) Unwrap() error {
	return ErrNotInitialized
}

// Helper constructors for common cases

func DeckNotFound(id string) error {
	return &NotFoundError{Resource: "deck", ID: id}
}

func CardNotFound(id string) error {
	return &NotFoundError{Resource: "card", ID: id}
}

func SubjectNotFound(idOrName string) error {
	return &NotFoundError{Resource: "subject", ID: idOrName}
}

func QuizNotFound(id string) error {
	return &NotFoundError{Resource: "quiz", ID: id}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func MalformedImport(err error) error {
	return &MalformedImportError{Err: err}
}

func SchemaInvalid(detail string) error {
	return &SchemaInvalidError{Detail: detail}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedImport checks if an error came from unparseable import JSON.
func IsMalformedImport(err error) bool {
	return errors.Is(err, ErrMalformedImport)
}

// IsSchemaInvalid checks if an error came from import schema validation.
func IsSchemaInvalid(err error) bool {
	return errors.Is(err, ErrSchemaInvalid)
}
