package statediff

import (
	"reflect"
	"sort"
	"time"
)

// valueKind is the closed classification the differ dispatches over.
// Every value maps to exactly one kind; the recursive algorithm never
// inspects language-level types beyond this point.
type valueKind uint8

const (
	// kindNil is an untyped nil or a nil pointer.
	kindNil valueKind = iota

	// kindScalar is a bool, number, or string.
	kindScalar

	// kindTime is a time.Time, compared with Time.Equal.
	kindTime

	// kindSequence is an ordered, indexable collection (slice or array).
	kindSequence

	// kindRecord exposes named fields (struct or string-keyed map).
	kindRecord

	// kindOpaque is compared wholesale and never recursed into:
	// values matched by the atomic predicate, plus shapes the differ
	// cannot address (non-string map keys, channels, functions).
	kindOpaque
)

// String returns a human-readable representation of the kind.
func (k valueKind) String() string {
	switch k {
	case kindNil:
		return "nil"
	case kindScalar:
		return "scalar"
	case kindTime:
		return "time"
	case kindSequence:
		return "sequence"
	case kindRecord:
		return "record"
	case kindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// atomic reports whether values of this kind are compared only by
// whole-value equality.
func (k valueKind) atomic() bool {
	switch k {
	case kindNil, kindScalar, kindTime, kindOpaque:
		return true
	default:
		return false
	}
}

// classify assigns v to a comparison kind. The caller-supplied atomic
// predicate wins over every structural rule so domain value types can be
// replaced wholesale instead of field-diffed.
func (t *Tracker) classify(v any) valueKind {
	if v == nil {
		return kindNil
	}
	if t.isAtomic != nil && t.isAtomic(v) {
		return kindOpaque
	}
	if _, ok := v.(time.Time); ok {
		return kindTime
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return kindScalar
	case reflect.Slice, reflect.Array:
		return kindSequence
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return kindRecord
		}
		return kindOpaque
	case reflect.Struct:
		return kindRecord
	case reflect.Pointer:
		if rv.IsNil() {
			return kindNil
		}
		return t.classify(rv.Elem().Interface())
	default:
		return kindOpaque
	}
}

// equalValues is the structural equality used throughout the engine.
// time.Time pairs compare by instant so that identical times with
// different monotonic readings are still equal.
func equalValues(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Equal(bt)
		}
	}
	return reflect.DeepEqual(a, b)
}

// derecord unwraps pointers so record helpers see the underlying
// struct or map.
func derecord(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv
}

// recordKeys returns the named fields of a record value in sorted order.
// Struct records expose exported fields; map records expose their keys.
func recordKeys(v any) []string {
	rv := derecord(v)
	switch rv.Kind() {
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return keys
	case reflect.Struct:
		rt := rv.Type()
		var keys []string
		for i := 0; i < rt.NumField(); i++ {
			if rt.Field(i).IsExported() {
				keys = append(keys, rt.Field(i).Name)
			}
		}
		sort.Strings(keys)
		return keys
	default:
		return nil
	}
}

// recordField returns the value stored under key in a record value.
func recordField(v any, key string) any {
	rv := derecord(v)
	switch rv.Kind() {
	case reflect.Map:
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Struct:
		fv := rv.FieldByName(key)
		if !fv.IsValid() {
			return nil
		}
		return fv.Interface()
	default:
		return nil
	}
}

// seqLen returns the length of a sequence value.
func seqLen(v any) int {
	return derecord(v).Len()
}

// seqIndex returns the element at position i of a sequence value.
func seqIndex(v any, i int) any {
	return derecord(v).Index(i).Interface()
}
