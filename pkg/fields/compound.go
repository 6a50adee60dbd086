package fields

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// The compound types each wrap exactly one element Field and apply it
// recursively to every member. Coercion produces a coerced container bound
// to the owner and attribute name, so later in-place mutation stays
// type-safe.

// sliceElements extracts the members of any slice-shaped value.
func sliceElements(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		copy(out, v)
		return out, true
	case *CoercedList:
		return v.Values(), true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// mapElements extracts the entries of any map-shaped value. A non-string key
// yields a KeyTypeError; a non-map value yields ok == false.
func mapElements(attr string, value any) (map[string]any, bool, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = e
		}
		return out, true, nil
	case *CoercedMap:
		return v.Items(), true, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, false, nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()
		if key.Kind() != reflect.String {
			return nil, true, &KeyTypeError{Attr: attr, Key: key.Interface()}
		}
		out[key.String()] = iter.Value().Interface()
	}
	return out, true, nil
}

// List is a sequence of one element type.
type List struct {
	elem *Field
}

// NewList builds a List over the given element type. Options apply to the
// element field, so NewList(String{}, WithNullable()) holds nullable
// strings.
func NewList(elementType FieldType, opts ...Option) *List {
	return &List{elem: New(elementType, opts...)}
}

// Element returns the element field.
func (t *List) Element() *Field { return t.elem }

func (t *List) Coerce(obj any, attr string, value any) (any, error) {
	elements, ok := sliceElements(value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "list", Actual: typeName(value)}
	}
	coerced := &CoercedList{obj: obj, attr: attr, elem: t.elem, items: make([]any, len(elements))}
	for i, element := range elements {
		c, err := t.elem.Coerce(obj, fmt.Sprintf("%s[%d]", attr, i), element)
		if err != nil {
			return nil, err
		}
		coerced.items[i] = c
	}
	return coerced, nil
}

func (t *List) FromPrimitive(obj any, attr string, value any) (any, error) {
	elements, ok := sliceElements(value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "list", Actual: typeName(value)}
	}
	natural := make([]any, len(elements))
	for i, element := range elements {
		e, err := t.elem.FromPrimitive(obj, attr, element)
		if err != nil {
			return nil, err
		}
		natural[i] = e
	}
	return t.Coerce(obj, attr, natural)
}

func (t *List) ToPrimitive(obj any, attr string, value any) (any, error) {
	elements, ok := sliceElements(value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "list", Actual: typeName(value)}
	}
	primitive := make([]any, len(elements))
	for i, element := range elements {
		p, err := t.elem.ToPrimitive(obj, attr, element)
		if err != nil {
			return nil, err
		}
		primitive[i] = p
	}
	return primitive, nil
}

func (t *List) Describe() string {
	return fmt.Sprintf("List<%s>", t.elem.Describe())
}

func (t *List) Stringify(value any) string {
	elements, ok := sliceElements(value)
	if !ok {
		return typeName(value)
	}
	parts := make([]string, len(elements))
	for i, element := range elements {
		parts[i] = t.elem.Stringify(element)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Mapping is a string-keyed mapping of one element type.
type Mapping struct {
	elem *Field
}

// NewMapping builds a Mapping over the given element type. Options apply to
// the element field.
func NewMapping(elementType FieldType, opts ...Option) *Mapping {
	return &Mapping{elem: New(elementType, opts...)}
}

// Element returns the element field.
func (t *Mapping) Element() *Field { return t.elem }

func (t *Mapping) Coerce(obj any, attr string, value any) (any, error) {
	entries, ok, err := mapElements(attr, value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "mapping", Actual: typeName(value)}
	}
	if err != nil {
		return nil, err
	}
	coerced := &CoercedMap{obj: obj, attr: attr, elem: t.elem, items: make(map[string]any, len(entries))}
	for _, key := range sortedKeys(entries) {
		c, err := t.elem.Coerce(obj, fmt.Sprintf("%s[%q]", attr, key), entries[key])
		if err != nil {
			return nil, err
		}
		coerced.items[key] = c
	}
	return coerced, nil
}

func (t *Mapping) FromPrimitive(obj any, attr string, value any) (any, error) {
	entries, ok, err := mapElements(attr, value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "mapping", Actual: typeName(value)}
	}
	if err != nil {
		return nil, err
	}
	natural := make(map[string]any, len(entries))
	for key, element := range entries {
		e, err := t.elem.FromPrimitive(obj, fmt.Sprintf("%s[%q]", attr, key), element)
		if err != nil {
			return nil, err
		}
		natural[key] = e
	}
	return t.Coerce(obj, attr, natural)
}

func (t *Mapping) ToPrimitive(obj any, attr string, value any) (any, error) {
	entries, ok, err := mapElements(attr, value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "mapping", Actual: typeName(value)}
	}
	if err != nil {
		return nil, err
	}
	primitive := make(map[string]any, len(entries))
	for key, element := range entries {
		p, err := t.elem.ToPrimitive(obj, fmt.Sprintf("%s[%q]", attr, key), element)
		if err != nil {
			return nil, err
		}
		primitive[key] = p
	}
	return primitive, nil
}

func (t *Mapping) Describe() string {
	return fmt.Sprintf("Mapping<%s>", t.elem.Describe())
}

func (t *Mapping) Stringify(value any) string {
	entries, ok, err := mapElements("", value)
	if !ok || err != nil {
		return typeName(value)
	}
	parts := make([]string, 0, len(entries))
	for _, key := range sortedKeys(entries) {
		parts = append(parts, fmt.Sprintf("%s=%s", key, t.elem.Stringify(entries[key])))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Set is an unordered collection of one element type. Elements must coerce
// to comparable natural forms. The primitive form is a sequence sorted by
// the elements' textual form, keeping serialization deterministic.
type Set struct {
	elem *Field
}

// NewSet builds a Set over the given element type. Options apply to the
// element field.
func NewSet(elementType FieldType, opts ...Option) *Set {
	return &Set{elem: New(elementType, opts...)}
}

// Element returns the element field.
func (t *Set) Element() *Field { return t.elem }

// setElements extracts members from set-shaped values. Slices are accepted
// as set literals.
func setElements(value any) ([]any, bool) {
	switch v := value.(type) {
	case *CoercedSet:
		return v.Values(), true
	case map[any]struct{}:
		out := make([]any, 0, len(v))
		for e := range v {
			out = append(out, e)
		}
		sort.Slice(out, func(i, j int) bool {
			return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
		})
		return out, true
	}
	return sliceElements(value)
}

func (t *Set) Coerce(obj any, attr string, value any) (any, error) {
	elements, ok := setElements(value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "set", Actual: typeName(value)}
	}
	coerced := &CoercedSet{obj: obj, attr: attr, elem: t.elem, items: make(map[any]struct{}, len(elements))}
	for _, element := range elements {
		c, err := t.elem.Coerce(obj, fmt.Sprintf("%s[%v]", attr, element), element)
		if err != nil {
			return nil, err
		}
		coerced.items[c] = struct{}{}
	}
	return coerced, nil
}

func (t *Set) FromPrimitive(obj any, attr string, value any) (any, error) {
	elements, ok := sliceElements(value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "list", Actual: typeName(value)}
	}
	natural := make([]any, len(elements))
	for i, element := range elements {
		e, err := t.elem.FromPrimitive(obj, attr, element)
		if err != nil {
			return nil, err
		}
		natural[i] = e
	}
	return t.Coerce(obj, attr, natural)
}

func (t *Set) ToPrimitive(obj any, attr string, value any) (any, error) {
	elements, ok := setElements(value)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "set", Actual: typeName(value)}
	}
	primitive := make([]any, len(elements))
	for i, element := range elements {
		p, err := t.elem.ToPrimitive(obj, attr, element)
		if err != nil {
			return nil, err
		}
		primitive[i] = p
	}
	return primitive, nil
}

func (t *Set) Describe() string {
	return fmt.Sprintf("Set<%s>", t.elem.Describe())
}

func (t *Set) Stringify(value any) string {
	elements, ok := setElements(value)
	if !ok {
		return typeName(value)
	}
	parts := make([]string, len(elements))
	for i, element := range elements {
		parts[i] = t.elem.Stringify(element)
	}
	return "set([" + strings.Join(parts, ",") + "])"
}
