package inkwell_test

import (
	"errors"
	"testing"
	"time"

	"github.com/calebmills/inkwell"
)

// The full editing surface must be reachable through the root package
// alone; nothing here imports internal packages.

func TestPublicWorkedExample(t *testing.T) {
	buf := inkwell.NewBufferFromString("original")

	if err := buf.Insert(8, " text"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if buf.Text() != "original text" {
		t.Errorf("got %q, want %q", buf.Text(), "original text")
	}

	if ok, err := buf.Undo(); !ok || err != nil {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if buf.Text() != "original" {
		t.Errorf("after undo got %q", buf.Text())
	}

	if ok, err := buf.Redo(); !ok || err != nil {
		t.Fatalf("redo: ok=%v err=%v", ok, err)
	}
	if buf.Text() != "original text" {
		t.Errorf("after redo got %q", buf.Text())
	}
	if buf.Version() != 3 {
		t.Errorf("version = %d, want 3", buf.Version())
	}
}

func TestPublicMultiChangeTransaction(t *testing.T) {
	buf := inkwell.NewBufferFromString("abcdef")

	tx := inkwell.NewTransaction(
		inkwell.NewChangeSet(
			inkwell.Insert(2, "XX"),
			inkwell.Delete(3, 5),
		),
		inkwell.Metadata{},
	)
	if err := buf.Apply(tx); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if buf.Text() != "abXXcf" {
		t.Errorf("got %q, want %q", buf.Text(), "abXXcf")
	}

	if ok, err := buf.Undo(); !ok || err != nil {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if buf.Text() != "abcdef" {
		t.Errorf("after undo got %q", buf.Text())
	}
}

func TestPublicErrorsClassify(t *testing.T) {
	buf := inkwell.NewBufferFromString("original")

	err := buf.Delete(100, 105)
	if !errors.Is(err, inkwell.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if buf.Text() != "original" || buf.Version() != 0 {
		t.Error("rejected transaction changed the buffer")
	}

	err = buf.Apply(inkwell.NewTransaction(
		inkwell.NewChangeSet(
			inkwell.Delete(0, 4),
			inkwell.Replace(2, 6, "x"),
		),
		inkwell.Metadata{},
	))
	if !errors.Is(err, inkwell.ErrOverlappingChanges) {
		t.Errorf("expected ErrOverlappingChanges, got %v", err)
	}
}

func TestPublicOptionsAndSnapshot(t *testing.T) {
	buf := inkwell.NewBufferFromString("before",
		inkwell.WithMaxHistory(5),
		inkwell.WithCoalescing(inkwell.CoalesceConfig{
			Enabled:  true,
			Interval: time.Hour,
			MaxRun:   64,
		}),
	)

	snap := buf.Snapshot()
	if err := buf.Type(6, "!"); err != nil {
		t.Fatal(err)
	}

	if snap.Text() != "before" {
		t.Errorf("snapshot observed a later edit: %q", snap.Text())
	}
	if !snap.IsStale(buf) {
		t.Error("snapshot should be stale after the edit")
	}
}

func TestPublicMetadata(t *testing.T) {
	meta, err := inkwell.NewMetadata([]byte(`{"selection":{"anchor":3}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := inkwell.NewBufferFromString("abc")
	tx := inkwell.NewTransaction(
		inkwell.NewChangeSet(inkwell.Insert(3, "!")),
		meta,
	)
	if err := buf.Apply(tx); err != nil {
		t.Fatal(err)
	}
	if got := tx.Metadata().Get("selection.anchor").Int(); got != 3 {
		t.Errorf("anchor = %d, want 3", got)
	}
}
