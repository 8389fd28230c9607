package transaction

import (
	"fmt"
	"sort"
	"strings"

	"github.com/calebmills/inkwell/internal/engine/rope"
)

// ChangeSet is an ordered batch of changes applied atomically. All
// change positions are declared against the pre-apply text; the running
// length delta of earlier changes in the set shifts each position at
// execution time.
type ChangeSet struct {
	changes []Change
}

// NewChangeSet creates a change set from the given changes.
func NewChangeSet(changes ...Change) *ChangeSet {
	return &ChangeSet{changes: changes}
}

// Add appends a change to the set.
func (cs *ChangeSet) Add(c Change) {
	cs.changes = append(cs.changes, c)
}

// Changes returns the changes in declaration order.
func (cs *ChangeSet) Changes() []Change {
	return cs.changes
}

// Len returns the number of changes.
func (cs *ChangeSet) Len() int {
	return len(cs.changes)
}

// IsEmpty returns true if there are no changes.
func (cs *ChangeSet) IsEmpty() bool {
	return len(cs.changes) == 0
}

// Delta returns the net length change the whole set causes.
func (cs *ChangeSet) Delta() ByteOffset {
	var delta ByteOffset
	for _, c := range cs.changes {
		delta += c.Delta()
	}
	return delta
}

// Summary returns a short human-readable description of the set.
func (cs *ChangeSet) Summary() string {
	if cs.IsEmpty() {
		return "no changes"
	}
	if len(cs.changes) == 1 {
		return cs.changes[0].String()
	}

	var inserts, deletes, replaces int
	for _, c := range cs.changes {
		switch c.Kind {
		case KindInsert:
			inserts++
		case KindDelete:
			deletes++
		case KindReplace:
			replaces++
		}
	}

	var parts []string
	if inserts > 0 {
		parts = append(parts, fmt.Sprintf("%d inserts", inserts))
	}
	if deletes > 0 {
		parts = append(parts, fmt.Sprintf("%d deletes", deletes))
	}
	if replaces > 0 {
		parts = append(parts, fmt.Sprintf("%d replaces", replaces))
	}
	return strings.Join(parts, ", ")
}

// Validate checks the whole set against a document of the given length
// without touching any text. Every range must lie within bounds, and no
// two ranges may overlap once the running delta is accounted for.
//
// Overlap after delta adjustment is equivalent to overlap in declared
// coordinates: the delta accumulated before a change shifts its start
// and the previous change's end by the same amount. So the check runs
// directly on declared positions, sorted by start.
func (cs *ChangeSet) Validate(docLen ByteOffset) error {
	if cs.IsEmpty() {
		return ErrEmptyTransaction
	}

	for _, c := range cs.changes {
		if !c.Range.InBounds(docLen) {
			return fmt.Errorf("%w: %s exceeds length %d", ErrOutOfBounds, c.Range, docLen)
		}
	}

	order := cs.executionOrder()
	for i := 1; i < len(order); i++ {
		prev := cs.changes[order[i-1]].Range
		cur := cs.changes[order[i]].Range
		if cur.Start < prev.End {
			return fmt.Errorf("%w: %s and %s", ErrOverlappingChanges, prev, cur)
		}
	}
	return nil
}

// executionOrder returns change indexes sorted ascending by declared
// start. The sort is stable so same-position changes keep their
// declaration order.
func (cs *ChangeSet) executionOrder() []int {
	order := make([]int, len(cs.changes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cs.changes[order[a]].Range.Start < cs.changes[order[b]].Range.Start
	})
	return order
}

// Apply validates the set against r and, if valid, executes every
// change in ascending start order, shifting each declared position by
// the running delta. It returns the new text and one Applied record per
// change in execution order. On error the returned rope is r unchanged.
func (cs *ChangeSet) Apply(r rope.Rope) (rope.Rope, []Applied, error) {
	if err := cs.Validate(r.Len()); err != nil {
		return r, nil, err
	}

	applied := make([]Applied, 0, len(cs.changes))
	var delta ByteOffset
	for _, idx := range cs.executionOrder() {
		c := cs.changes[idx]
		eff := c.Range.Shift(delta)

		var oldText string
		if c.Kind != KindInsert {
			oldText = r.Slice(eff.Start, eff.End)
		}
		r = r.Replace(eff.Start, eff.End, c.Text)

		applied = append(applied, Applied{
			Change:   c,
			EffRange: eff,
			NewRange: Range{Start: eff.Start, End: eff.Start + ByteOffset(len(c.Text))},
			OldText:  oldText,
		})
		delta += c.Delta()
	}
	return r, applied, nil
}

// Inverse builds the ChangeSet that undoes a sequence of applied
// changes: each change inverted, in reverse execution order, addressed
// against the post-apply text.
func Inverse(applied []Applied) *ChangeSet {
	inv := make([]Change, len(applied))
	for i, a := range applied {
		inv[len(applied)-1-i] = a.Invert()
	}
	return NewChangeSet(inv...)
}
