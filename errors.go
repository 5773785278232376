package statediff

import "errors"

// Sentinel errors reported through diagnostic events. No public Tracker
// operation returns these directly; they appear as [Event.Err] values.
var (
	// ErrNilOwner is reported when registration is attempted with a nil owner.
	ErrNilOwner = errors.New("owner is nil")

	// ErrPropertyNotFound is reported when an owner has no property with
	// the requested name.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrUnreadableProperty is reported when a property exists but its
	// value cannot be read (unexported field, panicking getter, nil map).
	ErrUnreadableProperty = errors.New("property cannot be read")

	// ErrUncopyable is reported when a value cannot be deep-copied
	// (channels, functions, unsafe pointers, or structs whose unexported
	// fields hold references).
	ErrUncopyable = errors.New("value cannot be deep-copied")

	// ErrCyclicValue is reported when a value graph contains a cycle.
	// Cyclic values are treated as uncopyable.
	ErrCyclicValue = errors.New("value contains a cycle")
)
