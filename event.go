package statediff

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies what a diagnostic event reports.
type EventKind uint8

const (
	// EventReadFailed indicates a property read failed. The affected
	// entry, if any, was left untouched.
	EventReadFailed EventKind = iota

	// EventCopyFailed indicates a deep copy failed. During registration
	// no entry was created; during commitment the entry was dropped.
	EventCopyFailed

	// EventOwnerGone indicates the owner was garbage collected and its
	// entry removed.
	EventOwnerGone

	// EventEntryReplaced indicates a registration displaced an existing
	// entry under the same (owner type, property) key.
	EventEntryReplaced
)

// String returns a human-readable representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventReadFailed:
		return "read_failed"
	case EventCopyFailed:
		return "copy_failed"
	case EventOwnerGone:
		return "owner_gone"
	case EventEntryReplaced:
		return "entry_replaced"
	default:
		return "unknown"
	}
}

// Event describes one suppressed failure or registry transition. The
// engine never surfaces errors to callers; events are the observability
// channel for everything it swallows.
type Event struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Time is when the event was recorded.
	Time time.Time

	// Kind categorizes the event.
	Kind EventKind

	// Owner is the type name of the affected owner.
	Owner string

	// Property is the tracked property name.
	Property string

	// Err is the underlying cause. Nil for registry transitions such as
	// EventEntryReplaced and EventOwnerGone.
	Err error
}

// newEvent builds an event for the given registry key.
func newEvent(kind EventKind, key entryKey, err error) Event {
	return Event{
		ID:       uuid.NewString(),
		Time:     time.Now(),
		Kind:     kind,
		Owner:    key.typeName,
		Property: key.property,
		Err:      err,
	}
}
