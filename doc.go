// Package statediff provides snapshot-based change detection for live,
// mutable, arbitrarily nested values.
//
// A [Tracker] maintains a registry of tracked (owner type, property)
// pairs. Registering a property with [StartTrack] captures a deep-copied
// baseline of its current value; the caller keeps mutating the real value
// directly. [Tracker.PeekChanges] compares each baseline against the live
// value and reports the sub-paths that differ; [Tracker.UpdateSnapshots]
// commits the live values as the new baselines.
//
// # Core Components
//
//   - [Change]: One reported difference (path plus old and new value)
//   - [ChangeSet]: A collection of changes with summary helpers
//   - [Tracker]: Registry and comparison orchestration
//   - [StartTrack] / [StopTrack]: Per-property registration lifecycle
//
// # Usage
//
// Track a property, mutate it, and inspect:
//
//	tracker := statediff.NewTracker()
//
//	customer := &Customer{Address: Address{City: "Anytown"}}
//	statediff.StartTrack(tracker, customer, "Address")
//
//	customer.Address.City = "New City"
//
//	for _, change := range tracker.PeekChanges() {
//	    fmt.Println(change) // Address.City: "Anytown" -> "New City"
//	}
//
//	tracker.UpdateSnapshots() // commit; next PeekChanges is empty
//
// # Aggregation Policy
//
// The differ walks both values in lockstep and reports the deepest
// differing path, subject to two aggregation rules:
//
//   - Depth ceiling: changes below an entry's maximum depth are reported
//     as one change at the ancestor path at that depth.
//   - Structural changes: a sequence that changed length, or a record
//     whose key set changed, is reported as one change at the
//     collection's own path with the whole old and new value attached.
//
// Values classified as atomic (nil, scalars, time.Time, or anything
// matched by the [WithAtomicValues] predicate) are never recursed into;
// they are compared wholesale.
//
// # Failure Policy
//
// No public operation returns an error or panics. A property read that
// fails, a value that cannot be deep-copied, or an owner that has been
// garbage collected degrades to a no-op or to removal of the affected
// entry. Each suppressed failure is published as an [Event] to observers
// registered with [WithDiagnostics] or [WithLogger].
//
// # Owner Lifetime
//
// The registry holds weak references to owners. A tracked entry never
// keeps its owner alive; once the owner is collected, the entry is
// discarded on the next PeekChanges or UpdateSnapshots.
//
// # Thread Safety
//
// All Tracker operations are thread-safe through internal locking.
package statediff
