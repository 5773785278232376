package statediff

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestCloneValue(t *testing.T) {
	t.Run("nested maps and slices are independent", func(t *testing.T) {
		original := map[string]any{
			"list": []any{"a", map[string]any{"inner": 1}},
			"nested": map[string]any{
				"value": "before",
			},
		}

		cloned, err := cloneValue(original)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(cloned, original) {
			t.Fatalf("clone differs from original: %v", cloned)
		}

		original["nested"].(map[string]any)["value"] = "after"
		original["list"].([]any)[0] = "mutated"

		got := cloned.(map[string]any)
		if got["nested"].(map[string]any)["value"] != "before" {
			t.Error("clone aliased a nested map")
		}
		if got["list"].([]any)[0] != "a" {
			t.Error("clone aliased a slice")
		}
	})

	t.Run("structs with pointers are independent", func(t *testing.T) {
		type inner struct {
			N int
		}
		type outer struct {
			In *inner
		}
		original := outer{In: &inner{N: 1}}

		cloned, err := cloneValue(original)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		original.In.N = 99
		if cloned.(outer).In.N != 1 {
			t.Error("clone aliased a pointer field")
		}
	})

	t.Run("time values copy by value", func(t *testing.T) {
		at := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
		cloned, err := cloneValue(map[string]any{"at": at})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := cloned.(map[string]any)["at"].(time.Time)
		if !got.Equal(at) {
			t.Errorf("expected %v, got %v", at, got)
		}
	})

	t.Run("nil clones to nil", func(t *testing.T) {
		cloned, err := cloneValue(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cloned != nil {
			t.Errorf("expected nil, got %v", cloned)
		}
	})

	t.Run("unexported scalar fields carry over", func(t *testing.T) {
		type counted struct {
			Name string
			hits int
		}
		cloned, err := cloneValue(counted{Name: "x", hits: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cloned.(counted).hits != 7 {
			t.Errorf("expected unexported scalar copied, got %+v", cloned)
		}
	})

	t.Run("channels are uncopyable", func(t *testing.T) {
		_, err := cloneValue(map[string]any{"ch": make(chan int)})
		if !errors.Is(err, ErrUncopyable) {
			t.Errorf("expected ErrUncopyable, got %v", err)
		}
	})

	t.Run("functions are uncopyable", func(t *testing.T) {
		_, err := cloneValue([]any{func() {}})
		if !errors.Is(err, ErrUncopyable) {
			t.Errorf("expected ErrUncopyable, got %v", err)
		}
	})

	t.Run("unexported reference fields are uncopyable", func(t *testing.T) {
		type sneaky struct {
			Name string
			refs []int
		}
		_, err := cloneValue(sneaky{Name: "x", refs: []int{1}})
		if !errors.Is(err, ErrUncopyable) {
			t.Errorf("expected ErrUncopyable, got %v", err)
		}
	})

	t.Run("cyclic pointers are rejected", func(t *testing.T) {
		type node struct {
			Next *node
		}
		n := &node{}
		n.Next = n
		_, err := cloneValue(n)
		if !errors.Is(err, ErrCyclicValue) {
			t.Errorf("expected ErrCyclicValue, got %v", err)
		}
	})

	t.Run("cyclic maps are rejected", func(t *testing.T) {
		m := map[string]any{}
		m["self"] = m
		_, err := cloneValue(m)
		if !errors.Is(err, ErrCyclicValue) {
			t.Errorf("expected ErrCyclicValue, got %v", err)
		}
	})

	t.Run("shared non-cyclic pointers are allowed", func(t *testing.T) {
		type leaf struct {
			N int
		}
		shared := &leaf{N: 1}
		_, err := cloneValue(map[string]any{"a": shared, "b": shared})
		if err != nil {
			t.Errorf("unexpected error for diamond sharing: %v", err)
		}
	})
}
