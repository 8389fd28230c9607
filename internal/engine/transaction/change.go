package transaction

import "fmt"

// Kind discriminates the edit primitives. The set is closed: every
// application and inversion site switches exhaustively over it.
type Kind uint8

const (
	KindInsert  Kind = iota // Text added at a point
	KindDelete              // Text removed from a range
	KindReplace             // Text in a range swapped for new text
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change is a single primitive edit. Range is addressed against the
// text as it stood before the enclosing ChangeSet applied; for inserts
// the range is empty (Start == End).
type Change struct {
	Kind  Kind
	Range Range
	Text  string // Replacement text; empty for deletes
}

// Insert creates a Change that inserts text at a point.
func Insert(at ByteOffset, text string) Change {
	return Change{
		Kind:  KindInsert,
		Range: Range{Start: at, End: at},
		Text:  text,
	}
}

// Delete creates a Change that removes the range [start, end).
func Delete(start, end ByteOffset) Change {
	return Change{
		Kind:  KindDelete,
		Range: Range{Start: start, End: end},
	}
}

// Replace creates a Change that swaps the range [start, end) for text.
func Replace(start, end ByteOffset, text string) Change {
	return Change{
		Kind:  KindReplace,
		Range: Range{Start: start, End: end},
		Text:  text,
	}
}

// Delta returns the signed length change this edit causes.
func (c Change) Delta() ByteOffset {
	return ByteOffset(len(c.Text)) - c.Range.Len()
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Kind {
	case KindInsert:
		return fmt.Sprintf("Insert(%d, %q)", c.Range.Start, clip(c.Text))
	case KindDelete:
		return fmt.Sprintf("Delete%s", c.Range)
	case KindReplace:
		return fmt.Sprintf("Replace%s with %q", c.Range, clip(c.Text))
	default:
		return "Unknown change"
	}
}

func clip(s string) string {
	if len(s) > 20 {
		return s[:17] + "..."
	}
	return s
}

// Applied records what a Change actually did when it executed: the
// effective range after offset adjustment, the range its new text
// occupies, and the exact text it removed. The removed text is read
// from the document at execution time, which is what makes the inverse
// trustworthy.
type Applied struct {
	Change
	EffRange Range  // Range edited, in at-execution coordinates
	NewRange Range  // Range the new text occupies afterwards
	OldText  string // Text removed; captured at execution time
}

// Invert returns the Change that undoes this applied change. Its range
// is addressed against the post-apply text.
func (a Applied) Invert() Change {
	switch a.Kind {
	case KindInsert:
		return Delete(a.NewRange.Start, a.NewRange.End)
	case KindDelete:
		return Insert(a.EffRange.Start, a.OldText)
	case KindReplace:
		return Replace(a.NewRange.Start, a.NewRange.End, a.OldText)
	default:
		return a.Change
	}
}
