package buffer

import (
	"strings"
	"testing"

	"github.com/calebmills/inkwell/internal/engine/transaction"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeBuffer(b *testing.B, lines int) *Buffer {
	b.Helper()
	var sb strings.Builder
	line := strings.Repeat("x", 80) + "\n"
	for i := 0; i < lines; i++ {
		sb.WriteString(line)
	}
	return NewBufferFromString(sb.String())
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkBufferText(b *testing.B) {
	buf := setupLargeBuffer(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = buf.Text()
	}
}

func BenchmarkBufferTextRange(b *testing.B) {
	buf := setupLargeBuffer(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = buf.TextRange(1000, 2000)
	}
}

func BenchmarkBufferSnapshot(b *testing.B) {
	buf := setupLargeBuffer(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = buf.Snapshot()
	}
}

// ============================================================================
// Edit Operation Benchmarks
// ============================================================================

func BenchmarkBufferInsertMiddle(b *testing.B) {
	buf := setupLargeBuffer(b, 10000)
	mid := buf.Len() / 2
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := buf.Insert(mid, "y"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBufferApplyMultiChange(b *testing.B) {
	buf := setupLargeBuffer(b, 10000)
	end := buf.Len()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		tx := transaction.New(
			transaction.NewChangeSet(
				transaction.Insert(0, "a"),
				transaction.Replace(end/2, end/2+1, "b"),
				transaction.Insert(end, "c"),
			),
			transaction.Metadata{},
		)
		if err := buf.Apply(tx); err != nil {
			b.Fatal(err)
		}
		end = buf.Len()
	}
}

func BenchmarkBufferUndoRedo(b *testing.B) {
	buf := setupLargeBuffer(b, 1000)
	if err := buf.Insert(0, "edit"); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := buf.Undo(); err != nil {
			b.Fatal(err)
		}
		if _, err := buf.Redo(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBufferTypedRun(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		buf := NewBufferFromString("")
		b.StartTimer()

		for j := 0; j < 32; j++ {
			if err := buf.Type(ByteOffset(j), "x"); err != nil {
				b.Fatal(err)
			}
		}
	}
}
