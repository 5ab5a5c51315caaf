// Package common defines sentinel errors shared by the bookkeeper layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Input errors (blank required fields, unsupported cover images).
	ErrValidation = errors.New("validation error")

	// Durable storage could not be written; the in-memory state is kept.
	ErrPersistence = errors.New("persistence error")
)
