package buffer

import (
	"errors"

	"github.com/calebmills/inkwell/internal/engine/transaction"
)

// Errors returned by buffer operations. Bounds and overlap failures
// originate in the transaction layer and are re-exported here so
// callers need only this package to classify them.
var (
	// ErrOutOfBounds reports a change whose range exceeds the current
	// text length. The transaction is rejected whole; text and version
	// are unchanged.
	ErrOutOfBounds = transaction.ErrOutOfBounds

	// ErrOverlappingChanges reports two changes in one transaction that
	// overlap after offset adjustment. Rejected whole.
	ErrOverlappingChanges = transaction.ErrOverlappingChanges

	// ErrEmptyTransaction reports a transaction with no changes.
	ErrEmptyTransaction = transaction.ErrEmptyTransaction

	// ErrHistoryCorrupt reports an inverse on the history stack that no
	// longer applies cleanly. This cannot happen while all mutation
	// goes through the buffer's own API; seeing it means an invariant
	// was broken elsewhere.
	ErrHistoryCorrupt = errors.New("history corrupt: stored inverse no longer applies")
)
