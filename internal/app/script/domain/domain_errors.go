package domain

import "errors"

// Errors for change records
var (
	// ErrEmptyFieldID indicates a field change was requested without a field id.
	ErrEmptyFieldID = errors.New("field id cannot be empty")

	// ErrUnknownChangeKind indicates a notification carried a kind with no record factory.
	ErrUnknownChangeKind = errors.New("unknown change kind")

	// ErrInvalidHistoryLimit indicates a non-positive stack bound.
	ErrInvalidHistoryLimit = errors.New("history limit must be positive")
)

// Errors raised while replaying records against a document
var (
	// ErrFieldNotFound indicates the target field of a record no longer exists.
	ErrFieldNotFound = errors.New("field not found")

	// ErrMalformedState indicates the stored production state is not valid JSON.
	ErrMalformedState = errors.New("production state is not valid JSON")

	// ErrReplayInProgress indicates an operation was attempted while a replay was running.
	ErrReplayInProgress = errors.New("replay in progress")
)
