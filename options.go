package statediff

import "log/slog"

// DefaultMaxDepth is the comparison depth used when a registration does
// not specify [WithMaxDepth]. Differences nested deeper than this many
// levels below the tracked property are aggregated into one change at
// the ancestor path at this depth.
const DefaultMaxDepth = 3

// TrackerOption configures a Tracker at construction time.
type TrackerOption func(*Tracker)

// WithAtomicValues installs a predicate that marks matching values as
// atomic: compared wholesale and never recursed into. Use it for domain
// value types (identifiers, money, custom value objects) that should be
// replaced rather than field-diffed. The default predicate matches
// nothing, so only nil, scalars, and time values are atomic.
func WithAtomicValues(pred func(value any) bool) TrackerOption {
	return func(t *Tracker) {
		t.isAtomic = pred
	}
}

// WithDiagnostics registers an observer invoked for every suppressed
// failure and registry transition. Observers run after the triggering
// operation releases the registry lock and may call back into the
// Tracker.
func WithDiagnostics(fn func(Event)) TrackerOption {
	return func(t *Tracker) {
		if fn != nil {
			t.observers = append(t.observers, fn)
		}
	}
}

// WithLogger registers an observer that logs diagnostic events to l.
// Registry transitions log at debug level, suppressed failures at warn.
func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if l == nil {
			return
		}
		t.observers = append(t.observers, func(ev Event) {
			attrs := []any{
				slog.String("event_id", ev.ID),
				slog.String("owner", ev.Owner),
				slog.String("property", ev.Property),
			}
			if ev.Err != nil {
				attrs = append(attrs, slog.String("error", ev.Err.Error()))
				l.Warn("statediff: "+ev.Kind.String(), attrs...)
				return
			}
			l.Debug("statediff: "+ev.Kind.String(), attrs...)
		})
	}
}

// TrackOption configures a single registration.
type TrackOption func(*trackConfig)

type trackConfig struct {
	maxDepth int
}

// WithMaxDepth bounds the recursive comparison depth for one entry.
// Negative values are treated as zero, which aggregates every
// difference into a single change at the property's own path.
func WithMaxDepth(depth int) TrackOption {
	return func(c *trackConfig) {
		if depth < 0 {
			depth = 0
		}
		c.maxDepth = depth
	}
}
