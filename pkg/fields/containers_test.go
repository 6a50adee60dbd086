package fields

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCoercedListAppend(t *testing.T) {
	list := NewCoercedList(nil, "numbers", New(Integer{}))
	if err := list.Append(3); err != nil {
		t.Fatalf("append: %v", err)
	}
	if list.Len() != 1 || list.Get(0) != int64(3) {
		t.Fatalf("unexpected contents: %v", list.Values())
	}
}

func TestCoercedListAppendFailureLeavesListUnchanged(t *testing.T) {
	list := NewCoercedList(nil, "numbers", New(Integer{}))
	if err := list.Append(1); err != nil {
		t.Fatalf("append: %v", err)
	}
	err := list.Append("not-an-int")
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Attr != "numbers[1]" {
		t.Fatalf("attr path mismatch: got %q", mismatch.Attr)
	}
	if diff := cmp.Diff([]any{int64(1)}, list.Values()); diff != "" {
		t.Fatalf("failed append must not mutate (-want +got):\n%s", diff)
	}
}

func TestCoercedListInsertAndSet(t *testing.T) {
	list := NewCoercedList(nil, "numbers", New(Integer{}))
	if err := list.Extend([]any{1, 3}); err != nil {
		t.Fatalf("extend: %v", err)
	}
	if err := list.Insert(1, "2"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := list.Set(2, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	if diff := cmp.Diff([]any{int64(1), int64(2), int64(30)}, list.Values()); diff != "" {
		t.Fatalf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestCoercedListExtendIsAllOrNothing(t *testing.T) {
	list := NewCoercedList(nil, "numbers", New(Integer{}))
	if err := list.Extend([]any{1, "x", 3}); err == nil {
		t.Fatalf("expected extend to fail")
	}
	if list.Len() != 0 {
		t.Fatalf("failed extend must not mutate: %v", list.Values())
	}
}

func TestCoercedListSetSlice(t *testing.T) {
	list := NewCoercedList(nil, "numbers", New(Integer{}))
	if err := list.Extend([]any{1, 2, 3, 4}); err != nil {
		t.Fatalf("extend: %v", err)
	}
	if err := list.SetSlice(1, 3, []any{"20", 30.0}); err != nil {
		t.Fatalf("set slice: %v", err)
	}
	if diff := cmp.Diff([]any{int64(1), int64(20), int64(30), int64(4)}, list.Values()); diff != "" {
		t.Fatalf("contents mismatch (-want +got):\n%s", diff)
	}
}

func TestCoercedListUnboundPassesThrough(t *testing.T) {
	list := NewCoercedList(nil, "raw", nil)
	if err := list.Append("anything"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if list.Get(0) != "anything" {
		t.Fatalf("unbound container must not coerce")
	}
}

func TestCoercedMapSet(t *testing.T) {
	m := NewCoercedMap(nil, "meta", New(String{}))
	if err := m.Set("a", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok := m.Get("a")
	if !ok || v != "1" {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestCoercedMapRejectsNonStringKey(t *testing.T) {
	m := NewCoercedMap(nil, "meta", New(String{}))
	err := m.Set(7, "x")
	var keyErr *KeyTypeError
	if !errors.As(err, &keyErr) {
		t.Fatalf("expected KeyTypeError, got %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("failed set must not mutate")
	}
}

func TestCoercedMapUpdateIsAllOrNothing(t *testing.T) {
	m := NewCoercedMap(nil, "counts", New(Integer{}))
	if err := m.Update(map[string]any{"a": 1, "b": "x"}); err == nil {
		t.Fatalf("expected update to fail")
	}
	if m.Len() != 0 {
		t.Fatalf("failed update must not mutate")
	}
	if err := m.Update(map[string]any{"a": 1, "b": 2}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"a": int64(1), "b": int64(2)}, m.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestCoercedMapSetDefault(t *testing.T) {
	m := NewCoercedMap(nil, "counts", New(Integer{}))
	got, err := m.SetDefault("a", "1")
	if err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got != int64(1) {
		t.Fatalf("got %v", got)
	}
	// Present keys keep their value.
	got, err = m.SetDefault("a", 99)
	if err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got != int64(1) {
		t.Fatalf("existing value must win: got %v", got)
	}
}

func TestCoercedSetAddAndUnion(t *testing.T) {
	s := NewCoercedSet(nil, "ids", New(Integer{}))
	if err := s.Add("1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.UnionWith([]any{2, 3}); err != nil {
		t.Fatalf("union: %v", err)
	}
	if diff := cmp.Diff([]any{int64(1), int64(2), int64(3)}, s.Values()); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestCoercedSetUnionIsAllOrNothing(t *testing.T) {
	s := NewCoercedSet(nil, "ids", New(Integer{}))
	if err := s.UnionWith([]any{1, "x"}); err == nil {
		t.Fatalf("expected union to fail")
	}
	if s.Len() != 0 {
		t.Fatalf("failed union must not mutate")
	}
}

func TestCoercedSetDifference(t *testing.T) {
	s := NewCoercedSet(nil, "ids", New(Integer{}))
	if err := s.UnionWith([]any{1, 2, 3}); err != nil {
		t.Fatalf("union: %v", err)
	}
	s.DifferenceWith([]any{int64(2)})
	if s.Contains(int64(2)) {
		t.Fatalf("2 should be gone")
	}
	if s.Len() != 2 {
		t.Fatalf("unexpected size %d", s.Len())
	}
}
