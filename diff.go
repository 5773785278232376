package statediff

import (
	"fmt"
	"slices"
)

// diffValues compares oldV and newV at path and returns the resulting
// changes. Policy, evaluated top-down:
//
//  1. At or beyond maxDepth the subtree is not inspected further; one
//     change at path iff the values differ.
//  2. If either side is atomic, one change at path iff the values differ.
//  3. Sequences of different lengths are a structural change: one change
//     at the sequence's own path with the whole old and new collection.
//     Equal lengths recurse per index.
//  4. Records with differing key sets are a structural change: one
//     change at the record's own path. Matching key sets recurse per key.
//  5. Mismatched shapes (sequence vs record) fall back to one change at
//     path iff the values differ.
func (t *Tracker) diffValues(oldV, newV any, path string, maxDepth, depth int) []Change {
	if depth >= maxDepth {
		if equalValues(oldV, newV) {
			return nil
		}
		return []Change{t.changeAt(path, oldV, newV)}
	}

	oldKind := t.classify(oldV)
	newKind := t.classify(newV)

	if oldKind.atomic() || newKind.atomic() {
		if equalValues(oldV, newV) {
			return nil
		}
		return []Change{t.changeAt(path, oldV, newV)}
	}

	if oldKind == kindSequence && newKind == kindSequence {
		if seqLen(oldV) != seqLen(newV) {
			return []Change{t.changeAt(path, oldV, newV)}
		}
		var changes []Change
		for i := 0; i < seqLen(oldV); i++ {
			changes = append(changes,
				t.diffValues(seqIndex(oldV, i), seqIndex(newV, i), indexPath(path, i), maxDepth, depth+1)...)
		}
		return changes
	}

	if oldKind == kindRecord && newKind == kindRecord {
		oldKeys := recordKeys(oldV)
		newKeys := recordKeys(newV)
		if !slices.Equal(oldKeys, newKeys) {
			return []Change{t.changeAt(path, oldV, newV)}
		}
		if equalValues(oldV, newV) {
			return nil
		}
		var changes []Change
		for _, key := range oldKeys {
			changes = append(changes,
				t.diffValues(recordField(oldV, key), recordField(newV, key), keyPath(path, key), maxDepth, depth+1)...)
		}
		return changes
	}

	// Mixed shapes.
	if equalValues(oldV, newV) {
		return nil
	}
	return []Change{t.changeAt(path, oldV, newV)}
}

// changeAt builds a change record for path, copying non-atomic values so
// later mutation of the live value cannot alter the record.
func (t *Tracker) changeAt(path string, oldV, newV any) Change {
	return Change{
		Path:     path,
		OldValue: t.emitValue(oldV),
		NewValue: t.emitValue(newV),
	}
}

// emitValue prepares a value for inclusion in a change record. If a
// non-atomic value cannot be copied, the value itself is emitted; a
// degraded record beats a dropped one.
func (t *Tracker) emitValue(v any) any {
	if t.classify(v).atomic() {
		return v
	}
	copied, err := cloneValue(v)
	if err != nil {
		return v
	}
	return copied
}

// indexPath appends a bracketed sequence index to path.
func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// keyPath appends a dotted record key to path.
func keyPath(path, key string) string {
	return path + "." + key
}
