// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Category store errors.
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEntry  = errors.New("duplicate entry")
	ErrInvalidCategory = errors.New("invalid category")

	// Table errors.
	ErrSchema            = errors.New("schema mismatch")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyTable        = errors.New("table has no header row")

	// Analysis errors.
	ErrAnalysisFailed = errors.New("analysis failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SchemaError reports every required column that a table lacks.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Is lets errors.Is(err, ErrSchema) match any SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// DuplicateCategoryError is returned when adding a category whose name is taken.
type DuplicateCategoryError struct {
	Name string
}

func (e *DuplicateCategoryError) Error() string {
	return fmt.Sprintf("category %q already exists", e.Name)
}

func (e *DuplicateCategoryError) Unwrap() error {
	return ErrDuplicateEntry
}

// NotFoundError names the kind and key of a missing entity.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound builds a NotFoundError.
func NewNotFound(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the message meant for the analyst. Schema errors are
// spelled out so the missing columns can be fixed in the spreadsheet.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return "the file is missing required columns: " + strings.Join(schemaErr.Missing, ", ")
	}

	return err.Error()
}
