package transaction

import "errors"

// Errors returned when validating or applying a ChangeSet. Validation
// runs in full before any mutation, so these always describe a rejected
// set and an untouched document.
var (
	// ErrOutOfBounds reports a change whose range exceeds the current
	// document length.
	ErrOutOfBounds = errors.New("change range out of bounds")

	// ErrOverlappingChanges reports two changes in one set whose ranges
	// overlap after offset adjustment.
	ErrOverlappingChanges = errors.New("changes overlap after offset adjustment")

	// ErrEmptyTransaction reports an attempt to apply a transaction
	// carrying no changes.
	ErrEmptyTransaction = errors.New("transaction contains no changes")

	// ErrAlreadyApplied reports a second apply of the same transaction
	// value.
	ErrAlreadyApplied = errors.New("transaction already applied")
)
