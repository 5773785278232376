package statediff

import (
	"reflect"
	"sort"
	"sync"
	"weak"
)

// entryKey identifies a registry entry: the owner's type name plus the
// property name. Keying by type rather than instance means at most one
// entry exists per (type, property) pair registry-wide; registering the
// same pair again replaces the prior entry.
type entryKey struct {
	typeName string
	property string
}

func (k entryKey) String() string {
	return k.typeName + "." + k.property
}

// ownerRef is a non-owning reference to a tracked owner. It never keeps
// the owner alive; resolve reports false once the owner is collected.
type ownerRef interface {
	// resolve returns the live owner, or false if it is gone.
	resolve() (any, bool)

	// matches reports whether the reference still resolves to exactly
	// the given owner instance.
	matches(owner any) bool
}

// weakRef adapts a weak.Pointer to ownerRef.
type weakRef[T any] struct {
	ptr weak.Pointer[T]
}

func newWeakRef[T any](owner *T) weakRef[T] {
	return weakRef[T]{ptr: weak.Make(owner)}
}

func (r weakRef[T]) resolve() (any, bool) {
	p := r.ptr.Value()
	if p == nil {
		return nil, false
	}
	return p, true
}

func (r weakRef[T]) matches(owner any) bool {
	p := r.ptr.Value()
	if p == nil {
		return false
	}
	o, ok := owner.(*T)
	return ok && o == p
}

// entry is one registered observation point: a weak owner reference and
// the deep-copied baseline of the observed property.
type entry struct {
	key      entryKey
	ref      ownerRef
	baseline any
	maxDepth int
}

// Tracker maintains the registry of tracked (owner type, property)
// entries and runs the comparison machinery over them.
// All operations are thread-safe.
type Tracker struct {
	mu      sync.RWMutex
	entries map[entryKey]*entry

	// isAtomic marks values that are compared wholesale. Nil means only
	// nil, scalars, and time values are atomic.
	isAtomic func(any) bool

	// observers receive diagnostic events. Set at construction, never
	// mutated afterward.
	observers []func(Event)
}

// NewTracker creates a tracker with an empty registry.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		entries: make(map[entryKey]*entry),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// StartTrack registers the named property of owner for change detection
// and returns its current live value. The caller keeps mutating the real
// value directly; the engine never intercepts writes.
//
// A fresh deep-copied baseline is captured at registration. If an entry
// already exists for owner's type and the property name it is replaced,
// even when it was registered by a different instance of the same type.
//
// StartTrack never fails loudly: if the property cannot be read, or its
// value cannot be deep-copied, no entry is created, a diagnostic event
// is published, and the live value (nil when unreadable) is returned.
func StartTrack[T any](t *Tracker, owner *T, property string, opts ...TrackOption) any {
	if t == nil {
		return nil
	}
	key := entryKey{typeName: reflect.TypeFor[T]().String(), property: property}
	if owner == nil {
		t.publish(newEvent(EventReadFailed, key, ErrNilOwner))
		return nil
	}

	live, err := readProperty(owner, property)
	if err != nil {
		t.publish(newEvent(EventReadFailed, key, err))
		return nil
	}

	baseline, err := cloneValue(live)
	if err != nil {
		t.publish(newEvent(EventCopyFailed, key, err))
		return live
	}

	cfg := trackConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	t.mu.Lock()
	_, replaced := t.entries[key]
	t.entries[key] = &entry{
		key:      key,
		ref:      newWeakRef(owner),
		baseline: baseline,
		maxDepth: cfg.maxDepth,
	}
	t.mu.Unlock()

	if replaced {
		t.publish(newEvent(EventEntryReplaced, key, nil))
	}
	return live
}

// StopTrack removes the entry for owner's type and the property name,
// but only if the registry still resolves to this exact instance.
// Calling it with a stale or different instance is a no-op.
func StopTrack[T any](t *Tracker, owner *T, property string) {
	if t == nil || owner == nil {
		return
	}
	key := entryKey{typeName: reflect.TypeFor[T]().String(), property: property}

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok || !e.ref.matches(owner) {
		return
	}
	delete(t.entries, key)
}

// StopAllTracks clears the entire registry.
func (t *Tracker) StopAllTracks() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[entryKey]*entry)
}

// PeekChanges compares every baseline against its live value and returns
// the differences. Baselines are never modified: repeated calls with no
// intervening mutation or UpdateSnapshots return identical results.
//
// Entries whose owner has been collected are dropped. Entries whose
// property cannot currently be read are skipped for this call only.
func (t *Tracker) PeekChanges() []Change {
	t.mu.Lock()
	var events []Event
	var changes []Change

	for _, key := range t.sortedKeysLocked() {
		e := t.entries[key]

		owner, alive := e.ref.resolve()
		if !alive {
			delete(t.entries, key)
			events = append(events, newEvent(EventOwnerGone, key, nil))
			continue
		}

		live, err := readProperty(owner, key.property)
		if err != nil {
			events = append(events, newEvent(EventReadFailed, key, err))
			continue
		}

		changes = append(changes, t.diffValues(e.baseline, live, key.property, e.maxDepth, 0)...)
	}
	t.mu.Unlock()

	for _, ev := range events {
		t.publish(ev)
	}
	return changes
}

// PeekChangeSet runs PeekChanges and wraps the result in a ChangeSet.
func (t *Tracker) PeekChangeSet() *ChangeSet {
	return &ChangeSet{Changes: t.PeekChanges()}
}

// UpdateSnapshots commits the current live values as the new baselines.
// An immediately following PeekChanges on otherwise-untouched values
// returns nothing.
//
// Entries whose owner has been collected are dropped. Entries whose
// property cannot currently be read keep their old baseline. Entries
// whose live value cannot be deep-copied are dropped entirely; tracking
// is abandoned rather than left inconsistent.
func (t *Tracker) UpdateSnapshots() {
	t.mu.Lock()
	var events []Event

	for _, key := range t.sortedKeysLocked() {
		e := t.entries[key]

		owner, alive := e.ref.resolve()
		if !alive {
			delete(t.entries, key)
			events = append(events, newEvent(EventOwnerGone, key, nil))
			continue
		}

		live, err := readProperty(owner, key.property)
		if err != nil {
			events = append(events, newEvent(EventReadFailed, key, err))
			continue
		}

		baseline, err := cloneValue(live)
		if err != nil {
			delete(t.entries, key)
			events = append(events, newEvent(EventCopyFailed, key, err))
			continue
		}
		e.baseline = baseline
	}
	t.mu.Unlock()

	for _, ev := range events {
		t.publish(ev)
	}
}

// TrackCount returns the number of registry entries.
func (t *Tracker) TrackCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// TrackedInfo describes one registry entry.
type TrackedInfo struct {
	// Owner is the type name of the tracked owner.
	Owner string

	// Property is the tracked property name.
	Property string

	// MaxDepth is the entry's comparison depth bound.
	MaxDepth int

	// Alive reports whether the owner was still reachable at the time
	// of the call.
	Alive bool
}

// Tracked returns a snapshot of the registry, sorted by owner type and
// property. It never mutates the registry, even for collected owners.
func (t *Tracker) Tracked() []TrackedInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	infos := make([]TrackedInfo, 0, len(t.entries))
	for _, e := range t.entries {
		_, alive := e.ref.resolve()
		infos = append(infos, TrackedInfo{
			Owner:    e.key.typeName,
			Property: e.key.property,
			MaxDepth: e.maxDepth,
			Alive:    alive,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Owner != infos[j].Owner {
			return infos[i].Owner < infos[j].Owner
		}
		return infos[i].Property < infos[j].Property
	})

	return infos
}

// sortedKeysLocked returns the registry keys in stable order so that
// repeated inspections emit changes deterministically (must hold lock).
func (t *Tracker) sortedKeysLocked() []entryKey {
	keys := make([]entryKey, 0, len(t.entries))
	for key := range t.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].typeName != keys[j].typeName {
			return keys[i].typeName < keys[j].typeName
		}
		return keys[i].property < keys[j].property
	})
	return keys
}

// publish delivers an event to every observer. Called outside the
// registry lock so observers may call back into the tracker.
func (t *Tracker) publish(ev Event) {
	for _, fn := range t.observers {
		fn(ev)
	}
}
