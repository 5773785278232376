package statediff

import (
	"fmt"
	"reflect"
)

// PropertyReader lets an owner expose named properties directly,
// including computed ones. When an owner implements it, ReadProperty is
// consulted instead of reflecting over the owner's fields. Returning an
// error marks the property unreadable for the current operation.
type PropertyReader interface {
	ReadProperty(name string) (any, error)
}

// readProperty returns the named property's current value from owner.
// Struct owners expose exported fields; map owners with string keys
// expose their entries. A panicking read is converted to an error.
func readProperty(owner any, name string) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("%w: %q: %v", ErrUnreadableProperty, name, r)
		}
	}()

	if pr, ok := owner.(PropertyReader); ok {
		return pr.ReadProperty(name)
	}

	rv := reflect.ValueOf(owner)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: %q through nil pointer", ErrUnreadableProperty, name)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q on %s", ErrPropertyNotFound, name, rv.Type())
		}
		if !f.IsExported() {
			return nil, fmt.Errorf("%w: %q on %s is unexported", ErrUnreadableProperty, name, rv.Type())
		}
		return rv.FieldByIndex(f.Index).Interface(), nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %q on %s (non-string keys)", ErrUnreadableProperty, name, rv.Type())
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, fmt.Errorf("%w: key %q on %s", ErrPropertyNotFound, name, rv.Type())
		}
		return mv.Interface(), nil

	default:
		return nil, fmt.Errorf("%w: %q on %s", ErrPropertyNotFound, name, rv.Type())
	}
}
