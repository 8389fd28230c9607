package buffer

import "github.com/calebmills/inkwell/internal/engine/history"

type options struct {
	maxHistory int
	coalesce   history.CoalesceConfig
}

func defaultOptions() options {
	return options{
		maxHistory: history.DefaultMaxEntries,
		coalesce:   history.DefaultCoalesceConfig(),
	}
}

// Option is a functional option for configuring a Buffer.
type Option func(*options)

// WithMaxHistory bounds the undo stack to n units; the oldest units are
// evicted beyond the cap. Non-positive values keep the default.
func WithMaxHistory(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxHistory = n
		}
	}
}

// WithCoalescing sets the typing-run coalescing policy.
func WithCoalescing(cfg history.CoalesceConfig) Option {
	return func(o *options) {
		o.coalesce = cfg
	}
}

// WithoutCoalescing disables undo coalescing entirely; every typed
// insert stays its own undo unit.
func WithoutCoalescing() Option {
	return func(o *options) {
		o.coalesce.Enabled = false
	}
}
