package model

import "errors"

// ErrItemNotFound is returned when an update references an unknown entry ID.
var ErrItemNotFound = errors.New("item not found")

// InvalidEntryError reports the first constraint an entry violated.
type InvalidEntryError struct {
	Field   string // Raw field that failed, e.g. "length"
	Message string // Human-readable message shown to the user
}

func (e *InvalidEntryError) Error() string {
	return e.Message
}

func invalid(field, message string) *InvalidEntryError {
	return &InvalidEntryError{Field: field, Message: message}
}
