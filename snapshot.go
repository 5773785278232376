package statediff

import (
	"fmt"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// cloneValue produces a fully independent deep copy of v. Later mutation
// of v never affects the copy and vice versa. Channels, functions,
// unsafe pointers, cyclic value graphs, and structs whose unexported
// fields hold references cannot be copied; those return an error
// wrapping [ErrUncopyable] or [ErrCyclicValue].
func cloneValue(v any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrUncopyable, r)
		}
	}()

	rv, err := cloneReflected(reflect.ValueOf(v), make(map[uintptr]struct{}))
	if err != nil {
		return nil, err
	}
	if !rv.IsValid() {
		return nil, nil
	}
	return rv.Interface(), nil
}

// cloneReflected clones rv recursively. seen holds the pointer identities
// of the current ancestor chain; revisiting one means the value is cyclic.
func cloneReflected(rv reflect.Value, seen map[uintptr]struct{}) (reflect.Value, error) {
	if !rv.IsValid() {
		return rv, nil
	}

	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return rv, nil

	case reflect.Interface:
		if rv.IsNil() {
			return rv, nil
		}
		elem, err := cloneReflected(rv.Elem(), seen)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(elem)
		return out, nil

	case reflect.Pointer:
		if rv.IsNil() {
			return rv, nil
		}
		ptr := rv.Pointer()
		if _, ok := seen[ptr]; ok {
			return reflect.Value{}, fmt.Errorf("%w: pointer %s", ErrCyclicValue, rv.Type())
		}
		seen[ptr] = struct{}{}
		defer delete(seen, ptr)

		elem, err := cloneReflected(rv.Elem(), seen)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(rv.Type().Elem())
		out.Elem().Set(elem)
		return out, nil

	case reflect.Slice:
		if rv.IsNil() {
			return rv, nil
		}
		ptr := rv.Pointer()
		if _, ok := seen[ptr]; ok {
			return reflect.Value{}, fmt.Errorf("%w: slice %s", ErrCyclicValue, rv.Type())
		}
		seen[ptr] = struct{}{}
		defer delete(seen, ptr)

		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := cloneReflected(rv.Index(i), seen)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil

	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			ev, err := cloneReflected(rv.Index(i), seen)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil

	case reflect.Map:
		if rv.IsNil() {
			return rv, nil
		}
		ptr := rv.Pointer()
		if _, ok := seen[ptr]; ok {
			return reflect.Value{}, fmt.Errorf("%w: map %s", ErrCyclicValue, rv.Type())
		}
		seen[ptr] = struct{}{}
		defer delete(seen, ptr)

		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			kv, err := cloneReflected(iter.Key(), seen)
			if err != nil {
				return reflect.Value{}, err
			}
			vv, err := cloneReflected(iter.Value(), seen)
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(kv, vv)
		}
		return out, nil

	case reflect.Struct:
		// time.Time is value-semantic; copying it wholesale is safe.
		if rv.Type() == timeType {
			return rv, nil
		}
		rt := rv.Type()
		out := reflect.New(rt).Elem()
		// Wholesale copy first so unexported fields carry over, then
		// deep-copy each exported field on top.
		out.Set(rv)
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				if typeHoldsReferences(f.Type) {
					return reflect.Value{}, fmt.Errorf("%w: unexported field %s.%s holds references",
						ErrUncopyable, rt, f.Name)
				}
				continue
			}
			fv, err := cloneReflected(rv.Field(i), seen)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(fv)
		}
		return out, nil

	default:
		return reflect.Value{}, fmt.Errorf("%w: %s value", ErrUncopyable, rv.Kind())
	}
}

// typeHoldsReferences reports whether values of t can alias other values,
// which would make a shallow copy non-independent.
func typeHoldsReferences(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	case reflect.Array:
		return typeHoldsReferences(t.Elem())
	case reflect.Struct:
		if t == timeType {
			return false
		}
		for i := 0; i < t.NumField(); i++ {
			if typeHoldsReferences(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
