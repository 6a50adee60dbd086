package fields

import (
	"fmt"
	"sort"
)

// The coerced containers are mutable values that keep a live binding to
// their element Field and owner context. Every mutating operation funnels
// through one coerce-then-delegate step, so elements stay type-safe long
// after the initial assignment. A container built with a nil element field
// behaves as a plain pass-through container.

// CoercedList is a sequence that re-applies element coercion on every
// mutation.
type CoercedList struct {
	obj   any
	attr  string
	elem  *Field
	items []any
}

// NewCoercedList builds an empty list bound to the given owner, attribute
// name, and element field.
func NewCoercedList(obj any, attr string, elem *Field) *CoercedList {
	return &CoercedList{obj: obj, attr: attr, elem: elem}
}

func (l *CoercedList) coerceElement(attr string, value any) (any, error) {
	if l.elem == nil {
		return value, nil
	}
	return l.elem.Coerce(l.obj, attr, value)
}

// Len returns the number of elements.
func (l *CoercedList) Len() int { return len(l.items) }

// Get returns the element at index i.
func (l *CoercedList) Get(i int) any { return l.items[i] }

// Values returns a copy of the backing slice.
func (l *CoercedList) Values() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)
	return out
}

// Append coerces value and adds it at the end. On failure the list is left
// unchanged.
func (l *CoercedList) Append(value any) error {
	coerced, err := l.coerceElement(fmt.Sprintf("%s[%d]", l.attr, len(l.items)), value)
	if err != nil {
		return err
	}
	l.items = append(l.items, coerced)
	return nil
}

// Insert coerces value and inserts it before index i.
func (l *CoercedList) Insert(i int, value any) error {
	coerced, err := l.coerceElement(fmt.Sprintf("%s[%d]", l.attr, i), value)
	if err != nil {
		return err
	}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = coerced
	return nil
}

// Set coerces value and replaces the element at index i.
func (l *CoercedList) Set(i int, value any) error {
	coerced, err := l.coerceElement(fmt.Sprintf("%s[%d]", l.attr, i), value)
	if err != nil {
		return err
	}
	l.items[i] = coerced
	return nil
}

// SetSlice coerces all values and replaces the range [i, j). Coercion is
// all-or-nothing: a failure leaves the list unchanged.
func (l *CoercedList) SetSlice(i, j int, values []any) error {
	coerced := make([]any, len(values))
	for k, value := range values {
		c, err := l.coerceElement(fmt.Sprintf("%s[%d]", l.attr, i+k), value)
		if err != nil {
			return err
		}
		coerced[k] = c
	}
	rest := make([]any, len(l.items)-j)
	copy(rest, l.items[j:])
	l.items = append(append(l.items[:i], coerced...), rest...)
	return nil
}

// Extend coerces all values and appends them. Coercion is all-or-nothing.
func (l *CoercedList) Extend(values []any) error {
	coerced := make([]any, len(values))
	for k, value := range values {
		c, err := l.coerceElement(fmt.Sprintf("%s[%d]", l.attr, len(l.items)+k), value)
		if err != nil {
			return err
		}
		coerced[k] = c
	}
	l.items = append(l.items, coerced...)
	return nil
}

// Remove deletes the element at index i.
func (l *CoercedList) Remove(i int) {
	l.items = append(l.items[:i], l.items[i+1:]...)
}

// CoercedMap is a string-keyed mapping that re-applies element coercion on
// every mutation. Non-string keys fail with KeyTypeError before any element
// coercion runs.
type CoercedMap struct {
	obj   any
	attr  string
	elem  *Field
	items map[string]any
}

// NewCoercedMap builds an empty mapping bound to the given owner, attribute
// name, and element field.
func NewCoercedMap(obj any, attr string, elem *Field) *CoercedMap {
	return &CoercedMap{obj: obj, attr: attr, elem: elem, items: make(map[string]any)}
}

func (m *CoercedMap) coerceElement(key string, value any) (any, error) {
	if m.elem == nil {
		return value, nil
	}
	return m.elem.Coerce(m.obj, fmt.Sprintf("%s[%q]", m.attr, key), value)
}

// Len returns the number of entries.
func (m *CoercedMap) Len() int { return len(m.items) }

// Get returns the value stored under key.
func (m *CoercedMap) Get(key string) (any, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (m *CoercedMap) Keys() []string {
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns a copy of the backing map.
func (m *CoercedMap) Items() map[string]any {
	out := make(map[string]any, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out
}

// Set checks the key type, coerces value, and stores it.
func (m *CoercedMap) Set(key any, value any) error {
	k, ok := key.(string)
	if !ok {
		return &KeyTypeError{Attr: m.attr, Key: key}
	}
	coerced, err := m.coerceElement(k, value)
	if err != nil {
		return err
	}
	m.items[k] = coerced
	return nil
}

// Update coerces every entry and merges it in. Coercion is all-or-nothing:
// a failure leaves the mapping unchanged.
func (m *CoercedMap) Update(entries map[string]any) error {
	coerced := make(map[string]any, len(entries))
	for _, k := range sortedKeys(entries) {
		c, err := m.coerceElement(k, entries[k])
		if err != nil {
			return err
		}
		coerced[k] = c
	}
	for k, v := range coerced {
		m.items[k] = v
	}
	return nil
}

// SetDefault stores the coerced value under key only when the key is absent,
// and returns the value now present.
func (m *CoercedMap) SetDefault(key string, value any) (any, error) {
	if existing, ok := m.items[key]; ok {
		return existing, nil
	}
	coerced, err := m.coerceElement(key, value)
	if err != nil {
		return nil, err
	}
	m.items[key] = coerced
	return coerced, nil
}

// Delete removes the entry stored under key.
func (m *CoercedMap) Delete(key string) {
	delete(m.items, key)
}

// CoercedSet is a set that re-applies element coercion on every insertion.
// Elements must coerce to comparable natural forms.
type CoercedSet struct {
	obj   any
	attr  string
	elem  *Field
	items map[any]struct{}
}

// NewCoercedSet builds an empty set bound to the given owner, attribute
// name, and element field.
func NewCoercedSet(obj any, attr string, elem *Field) *CoercedSet {
	return &CoercedSet{obj: obj, attr: attr, elem: elem, items: make(map[any]struct{})}
}

func (s *CoercedSet) coerceElement(value any) (any, error) {
	if s.elem == nil {
		return value, nil
	}
	return s.elem.Coerce(s.obj, fmt.Sprintf("%s[%v]", s.attr, value), value)
}

// Len returns the number of elements.
func (s *CoercedSet) Len() int { return len(s.items) }

// Contains reports whether value is a member. No coercion is applied to the
// probe value.
func (s *CoercedSet) Contains(value any) bool {
	_, ok := s.items[value]
	return ok
}

// Values returns the members sorted by their textual form.
func (s *CoercedSet) Values() []any {
	out := make([]any, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
	})
	return out
}

// Add coerces value and inserts it.
func (s *CoercedSet) Add(value any) error {
	coerced, err := s.coerceElement(value)
	if err != nil {
		return err
	}
	s.items[coerced] = struct{}{}
	return nil
}

// Remove deletes value from the set.
func (s *CoercedSet) Remove(value any) {
	delete(s.items, value)
}

// UnionWith coerces every value and inserts it, in place. Coercion is
// all-or-nothing: a failure leaves the set unchanged.
func (s *CoercedSet) UnionWith(values []any) error {
	coerced := make([]any, len(values))
	for i, value := range values {
		c, err := s.coerceElement(value)
		if err != nil {
			return err
		}
		coerced[i] = c
	}
	for _, c := range coerced {
		s.items[c] = struct{}{}
	}
	return nil
}

// DifferenceWith removes every given value, in place. Values are matched
// as-is; removal needs no coercion.
func (s *CoercedSet) DifferenceWith(values []any) {
	for _, value := range values {
		delete(s.items, value)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
