package history

import (
	"time"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/calebmills/inkwell/internal/engine/transaction"
)

// CoalesceConfig tunes how typing runs merge into single undo units.
type CoalesceConfig struct {
	// Enabled turns coalescing on.
	Enabled bool

	// Interval is the longest pause between keystrokes that still
	// extends the current run.
	Interval time.Duration

	// MaxRun caps a merged unit's length in grapheme clusters.
	MaxRun int
}

// DefaultCoalesceConfig returns the standard typing-run policy.
func DefaultCoalesceConfig() CoalesceConfig {
	return CoalesceConfig{
		Enabled:  true,
		Interval: time.Second,
		MaxRun:   64,
	}
}

// Coalescer decides whether a freshly applied transaction may merge
// with the previous undo unit. It only ever merges ordinary typing:
// single-change typed inserts of printable text, each starting exactly
// where the previous one ended, close together in time. Anything else
// closes the current run, as does an explicit Break from a cursor move
// or focus change.
type Coalescer struct {
	cfg CoalesceConfig

	active     bool
	nextOffset transaction.ByteOffset
	runLen     int
	lastAt     time.Time
}

// NewCoalescer creates a coalescer with the given policy.
func NewCoalescer(cfg CoalesceConfig) *Coalescer {
	return &Coalescer{cfg: cfg}
}

// ShouldMerge reports whether tx extends the current typing run and may
// merge with the previous undo unit.
func (c *Coalescer) ShouldMerge(tx *transaction.Transaction, now time.Time) bool {
	if !c.cfg.Enabled || !c.active {
		return false
	}
	ch, ok := typedInsert(tx)
	if !ok {
		return false
	}
	if ch.Range.Start != c.nextOffset {
		return false
	}
	if now.Sub(c.lastAt) > c.cfg.Interval {
		return false
	}
	return c.runLen+uniseg.GraphemeClusterCount(ch.Text) <= c.cfg.MaxRun
}

// Observe updates run state after tx was applied. merged reports
// whether the caller actually merged tx into the previous undo unit.
func (c *Coalescer) Observe(tx *transaction.Transaction, now time.Time, merged bool) {
	ch, ok := typedInsert(tx)
	if !ok {
		c.Break()
		return
	}

	g := uniseg.GraphemeClusterCount(ch.Text)
	if merged {
		c.runLen += g
	} else {
		c.runLen = g
	}
	c.active = true
	c.nextOffset = ch.Range.Start + transaction.ByteOffset(len(ch.Text))
	c.lastAt = now
}

// Break closes the current typing run. The next typed insert starts a
// fresh undo unit.
func (c *Coalescer) Break() {
	c.active = false
	c.runLen = 0
}

// typedInsert returns tx's sole change if tx is ordinary typed input:
// flagged as typed, exactly one insert, printable text.
func typedInsert(tx *transaction.Transaction) (transaction.Change, bool) {
	if !tx.Typed() || tx.Changes().Len() != 1 {
		return transaction.Change{}, false
	}
	ch := tx.Changes().Changes()[0]
	if ch.Kind != transaction.KindInsert || !ordinaryText(ch.Text) {
		return transaction.Change{}, false
	}
	return ch, true
}

// ordinaryText reports whether s looks like characters a user typed:
// non-empty and free of control characters. Newlines and tabs count as
// control here, so line breaks always start a new undo unit.
func ordinaryText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// MergeInverses merges the inverse of the newest typed insert into the
// inverse of the run it extends. For contiguous typing both inverses
// are single deletes over adjacent ranges, so the merged inverse is one
// delete spanning the whole run. The merged transaction keeps prev's
// metadata and lineage. Returns false when the shapes do not line up.
func MergeInverses(prev, next *transaction.Transaction) (*transaction.Transaction, bool) {
	if prev.Changes().Len() != 1 || next.Changes().Len() != 1 {
		return nil, false
	}
	a := prev.Changes().Changes()[0]
	b := next.Changes().Changes()[0]
	if a.Kind != transaction.KindDelete || b.Kind != transaction.KindDelete {
		return nil, false
	}
	if b.Range.Start != a.Range.End {
		return nil, false
	}

	merged := transaction.NewTyped(
		transaction.NewChangeSet(transaction.Delete(a.Range.Start, b.Range.End)),
		prev.Metadata(),
	)
	merged.SetParent(prev.Parent())
	return merged, true
}
