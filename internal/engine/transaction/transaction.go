package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/calebmills/inkwell/internal/engine/rope"
)

// Transaction is the unit of history: a ChangeSet plus opaque metadata.
// Once applied it carries the inverse ChangeSet that restores the
// pre-apply text. Metadata and the parent link never influence how text
// is mutated or inverted.
type Transaction struct {
	id      uuid.UUID
	parent  uuid.UUID
	changes *ChangeSet
	inverse *ChangeSet
	meta    Metadata
	typed   bool
	created time.Time
}

// New creates a transaction around a change set. Metadata may be the
// zero value.
func New(changes *ChangeSet, meta Metadata) *Transaction {
	return &Transaction{
		id:      uuid.New(),
		changes: changes,
		meta:    meta,
		created: time.Now(),
	}
}

// NewTyped creates a transaction flagged as ordinary typed input, which
// makes it a candidate for history coalescing.
func NewTyped(changes *ChangeSet, meta Metadata) *Transaction {
	tx := New(changes, meta)
	tx.typed = true
	return tx
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() uuid.UUID {
	return t.id
}

// Parent returns the id of the transaction this one descends from, or
// uuid.Nil when it has none. Inverse transactions point at the
// transaction they undo; coalesced units point at the unit they merged
// into.
func (t *Transaction) Parent() uuid.UUID {
	return t.parent
}

// SetParent records a lineage link. It has no effect on application or
// inversion.
func (t *Transaction) SetParent(id uuid.UUID) {
	t.parent = id
}

// Changes returns the transaction's change set.
func (t *Transaction) Changes() *ChangeSet {
	return t.changes
}

// Metadata returns the opaque metadata attached to the transaction.
func (t *Transaction) Metadata() Metadata {
	return t.meta
}

// Typed reports whether this transaction was submitted as ordinary
// typed input.
func (t *Transaction) Typed() bool {
	return t.typed
}

// CreatedAt returns when the transaction was constructed.
func (t *Transaction) CreatedAt() time.Time {
	return t.created
}

// Applied reports whether the transaction has been applied and so
// carries an inverse.
func (t *Transaction) Applied() bool {
	return t.inverse != nil
}

// Inverse returns the cached inverse change set. The second result is
// false until the transaction has been applied.
func (t *Transaction) Inverse() (*ChangeSet, bool) {
	return t.inverse, t.inverse != nil
}

// Apply executes the transaction's changes against r. On success it
// caches the inverse change set and returns the new text together with
// the inverse transaction, whose parent is this transaction's id and
// which inherits metadata and the typed flag. On failure r is returned
// unchanged and no inverse exists.
func (t *Transaction) Apply(r rope.Rope) (rope.Rope, *Transaction, error) {
	if t.Applied() {
		return r, nil, ErrAlreadyApplied
	}

	out, applied, err := t.changes.Apply(r)
	if err != nil {
		return r, nil, err
	}

	t.inverse = Inverse(applied)
	inv := &Transaction{
		id:      uuid.New(),
		parent:  t.id,
		changes: t.inverse,
		meta:    t.meta,
		typed:   t.typed,
		created: time.Now(),
	}
	return out, inv, nil
}

// Summary returns a short human-readable description.
func (t *Transaction) Summary() string {
	return t.changes.Summary()
}
