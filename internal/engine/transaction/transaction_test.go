package transaction

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/calebmills/inkwell/internal/engine/rope"
)

func TestChangeConstructors(t *testing.T) {
	ins := Insert(5, "hi")
	if ins.Kind != KindInsert || ins.Range.Start != 5 || ins.Range.End != 5 || ins.Text != "hi" {
		t.Error("wrong insert change")
	}

	del := Delete(2, 7)
	if del.Kind != KindDelete || del.Range.Start != 2 || del.Range.End != 7 || del.Text != "" {
		t.Error("wrong delete change")
	}

	rep := Replace(1, 4, "xyz")
	if rep.Kind != KindReplace || rep.Range.Start != 1 || rep.Range.End != 4 || rep.Text != "xyz" {
		t.Error("wrong replace change")
	}
}

func TestChangeDelta(t *testing.T) {
	tests := []struct {
		name string
		c    Change
		want int64
	}{
		{"insert grows", Insert(0, "hello"), 5},
		{"delete shrinks", Delete(0, 5), -5},
		{"replace longer", Replace(0, 3, "hello"), 2},
		{"replace shorter", Replace(0, 5, "hi"), -3},
		{"replace same", Replace(0, 5, "world"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Delta(); got != tt.want {
				t.Errorf("Delta() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAppliedInvert(t *testing.T) {
	ins := Applied{
		Change:   Insert(3, "ab"),
		EffRange: NewRange(3, 3),
		NewRange: NewRange(3, 5),
	}
	inv := ins.Invert()
	if inv.Kind != KindDelete || inv.Range != NewRange(3, 5) {
		t.Errorf("insert inverse wrong: %v", inv)
	}

	del := Applied{
		Change:   Delete(3, 5),
		EffRange: NewRange(3, 5),
		NewRange: NewRange(3, 3),
		OldText:  "cd",
	}
	inv = del.Invert()
	if inv.Kind != KindInsert || inv.Range.Start != 3 || inv.Text != "cd" {
		t.Errorf("delete inverse wrong: %v", inv)
	}

	rep := Applied{
		Change:   Replace(3, 5, "XYZ"),
		EffRange: NewRange(3, 5),
		NewRange: NewRange(3, 6),
		OldText:  "cd",
	}
	inv = rep.Invert()
	if inv.Kind != KindReplace || inv.Range != NewRange(3, 6) || inv.Text != "cd" {
		t.Errorf("replace inverse wrong: %v", inv)
	}
}

func TestChangeSetOffsetShift(t *testing.T) {
	// The insert adds two bytes, so every later declared range must
	// land two positions further right in the shifted text.
	t.Run("shifted delete at end", func(t *testing.T) {
		cs := NewChangeSet(
			Insert(2, "XX"),
			Delete(5, 6),
		)

		out, applied, err := cs.Apply(rope.FromString("abcdef"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.String(); got != "abXXcde" {
			t.Errorf("got %q, want %q", got, "abXXcde")
		}
		if applied[1].EffRange != NewRange(7, 8) {
			t.Errorf("delete effective range = %v, want [7:8)", applied[1].EffRange)
		}
		if applied[1].OldText != "f" {
			t.Errorf("captured %q, want %q", applied[1].OldText, "f")
		}
	})

	t.Run("shifted delete in middle", func(t *testing.T) {
		cs := NewChangeSet(
			Insert(2, "XX"),
			Delete(3, 5),
		)

		out, applied, err := cs.Apply(rope.FromString("abcdef"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := out.String(); got != "abXXcf" {
			t.Errorf("got %q, want %q", got, "abXXcf")
		}
		if applied[1].EffRange != NewRange(5, 7) {
			t.Errorf("delete effective range = %v, want [5:7)", applied[1].EffRange)
		}
		if applied[1].OldText != "de" {
			t.Errorf("captured %q, want %q", applied[1].OldText, "de")
		}
	})
}

func TestChangeSetAppliesInAscendingStartOrder(t *testing.T) {
	// Declared out of order; execution must sort by start.
	cs := NewChangeSet(
		Delete(3, 5),
		Insert(2, "XX"),
	)

	out, _, err := cs.Apply(rope.FromString("abcdef"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "abXXcf" {
		t.Errorf("got %q, want %q", got, "abXXcf")
	}
}

func TestChangeSetLazyInverseCapture(t *testing.T) {
	// The replace executes after the insert shifted its range; the
	// inverse must capture the text present at execution time.
	cs := NewChangeSet(
		Insert(0, "abc"),
		Replace(2, 4, "??"),
	)

	out, applied, err := cs.Apply(rope.FromString("0123456"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "abc01??456" {
		t.Errorf("got %q, want %q", got, "abc01??456")
	}
	if applied[1].OldText != "23" {
		t.Errorf("captured %q, want %q", applied[1].OldText, "23")
	}
}

func TestChangeSetValidateBounds(t *testing.T) {
	tests := []struct {
		name string
		c    Change
	}{
		{"delete past end", Delete(100, 105)},
		{"insert past end", Insert(9, "x")},
		{"end past length", Delete(0, 9)},
		{"negative start", Delete(-1, 2)},
		{"inverted range", Change{Kind: KindDelete, Range: Range{Start: 5, End: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewChangeSet(tt.c)
			if err := cs.Validate(8); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected ErrOutOfBounds, got %v", err)
			}
		})
	}
}

func TestChangeSetValidateOverlap(t *testing.T) {
	cs := NewChangeSet(
		Delete(2, 6),
		Replace(4, 8, "x"),
	)
	if err := cs.Validate(10); !errors.Is(err, ErrOverlappingChanges) {
		t.Errorf("expected ErrOverlappingChanges, got %v", err)
	}

	// Touching ranges are not an overlap.
	cs = NewChangeSet(
		Delete(2, 4),
		Delete(4, 6),
	)
	if err := cs.Validate(10); err != nil {
		t.Errorf("touching ranges should validate, got %v", err)
	}
}

func TestChangeSetRejectsAtomically(t *testing.T) {
	// One bad change poisons the whole set before anything runs.
	cs := NewChangeSet(
		Insert(0, "ok"),
		Delete(50, 60),
	)

	r := rope.FromString("short")
	out, applied, err := cs.Apply(r)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if applied != nil {
		t.Error("no changes should have applied")
	}
	if out.String() != "short" {
		t.Errorf("text modified on rejection: %q", out.String())
	}
}

func TestChangeSetValidateEmpty(t *testing.T) {
	if err := NewChangeSet().Validate(10); !errors.Is(err, ErrEmptyTransaction) {
		t.Errorf("expected ErrEmptyTransaction, got %v", err)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		base string
		cs   *ChangeSet
	}{
		{"single insert", "original", NewChangeSet(Insert(8, " text"))},
		{"single delete", "hello world", NewChangeSet(Delete(5, 11))},
		{"single replace", "hello world", NewChangeSet(Replace(0, 5, "goodbye"))},
		{"insert then delete", "abcdef", NewChangeSet(Insert(2, "XX"), Delete(5, 6))},
		{"three changes", "0123456789", NewChangeSet(
			Replace(0, 2, "a"),
			Delete(4, 6),
			Insert(8, "zz"),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := rope.FromString(tt.base)

			after, applied, err := tt.cs.Apply(base)
			if err != nil {
				t.Fatalf("apply failed: %v", err)
			}

			restored, _, err := Inverse(applied).Apply(after)
			if err != nil {
				t.Fatalf("inverse apply failed: %v", err)
			}
			if restored.String() != tt.base {
				t.Errorf("round trip got %q, want %q", restored.String(), tt.base)
			}
		})
	}
}

func TestTransactionApply(t *testing.T) {
	tx := New(NewChangeSet(Insert(8, " text")), Metadata{})

	if tx.Applied() {
		t.Error("fresh transaction should not be applied")
	}
	if _, ok := tx.Inverse(); ok {
		t.Error("fresh transaction should have no inverse")
	}

	out, inv, err := tx.Apply(rope.FromString("original"))
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if out.String() != "original text" {
		t.Errorf("got %q, want %q", out.String(), "original text")
	}
	if !tx.Applied() {
		t.Error("transaction should be applied")
	}
	if inv.Parent() != tx.ID() {
		t.Error("inverse should link back to the applied transaction")
	}

	restored, _, err := inv.Apply(out)
	if err != nil {
		t.Fatalf("inverse apply failed: %v", err)
	}
	if restored.String() != "original" {
		t.Errorf("undo got %q, want %q", restored.String(), "original")
	}
}

func TestTransactionApplyTwice(t *testing.T) {
	tx := New(NewChangeSet(Insert(0, "x")), Metadata{})

	r := rope.FromString("abc")
	r, _, err := tx.Apply(r)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, _, err := tx.Apply(r); !errors.Is(err, ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestTransactionTypedFlag(t *testing.T) {
	plain := New(NewChangeSet(Insert(0, "a")), Metadata{})
	typed := NewTyped(NewChangeSet(Insert(0, "a")), Metadata{})

	if plain.Typed() {
		t.Error("plain transaction should not be typed")
	}
	if !typed.Typed() {
		t.Error("typed transaction should be typed")
	}

	// The inverse inherits the flag.
	_, inv, err := typed.Apply(rope.FromString(""))
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !inv.Typed() {
		t.Error("inverse of typed transaction should stay typed")
	}
}

func TestTransactionParentLineage(t *testing.T) {
	tx := New(NewChangeSet(Insert(0, "a")), Metadata{})
	if tx.Parent() != uuid.Nil {
		t.Error("fresh transaction should have no parent")
	}

	other := uuid.New()
	tx.SetParent(other)
	if tx.Parent() != other {
		t.Error("parent not recorded")
	}
}

func TestMetadata(t *testing.T) {
	m, err := NewMetadata([]byte(`{"selection":{"anchor":4,"head":9}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := m.Get("selection.anchor").Int(); got != 4 {
		t.Errorf("anchor = %d, want 4", got)
	}
	if m.Get("missing.path").Exists() {
		t.Error("missing path should not exist")
	}

	m2, err := m.Set("selection.head", 12)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := m2.Get("selection.head").Int(); got != 12 {
		t.Errorf("head = %d, want 12", got)
	}
	if got := m.Get("selection.head").Int(); got != 9 {
		t.Error("Set modified the receiver")
	}
}

func TestMetadataRejectsInvalidJSON(t *testing.T) {
	if _, err := NewMetadata([]byte(`{broken`)); err == nil {
		t.Error("invalid JSON should be rejected")
	}
}

func TestMetadataZero(t *testing.T) {
	var m Metadata
	if !m.IsZero() {
		t.Error("zero metadata should be zero")
	}
	if m.Get("anything").Exists() {
		t.Error("zero metadata has no paths")
	}

	m2, err := m.Set("key", "value")
	if err != nil {
		t.Fatalf("set on zero metadata failed: %v", err)
	}
	if got := m2.Get("key").String(); got != "value" {
		t.Errorf("key = %q, want %q", got, "value")
	}
}
