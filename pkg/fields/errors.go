package fields

import (
	"fmt"
)

// TypeMismatchError reports a value that could not be converted to the
// declared type of a field. Attr carries the full attribute path, including
// any synthesized element position such as `tags[3]` or `meta["key"]`.
type TypeMismatchError struct {
	Attr     string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("a %s is required in field %s, not %s", e.Expected, e.Attr, e.Actual)
}

// KeyTypeError reports a mapping key that is not a string. It is distinct
// from TypeMismatchError so callers can tell a bad key from a bad element.
type KeyTypeError struct {
	Attr string
	Key  any
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("key %v in field %s must be a string, not %s", e.Key, e.Attr, typeName(e.Key))
}

// RequiredError reports a null assigned to a non-nullable field that has no
// default value.
type RequiredError struct {
	Attr string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("field %s cannot be null", e.Attr)
}

// EnumValueError reports either an out-of-set value at assignment time or a
// malformed valid-value set at schema-definition time (Valid is nil in the
// latter case).
type EnumValueError struct {
	Attr  string
	Value any
	Valid []string
}

func (e *EnumValueError) Error() string {
	if e.Valid == nil {
		return fmt.Sprintf("field %s requires a non-empty set of valid values", e.Attr)
	}
	return fmt.Sprintf("field %s value %v is not one of %v", e.Attr, e.Value, e.Valid)
}

// FormatError reports a pattern or format validation failure: MAC address,
// IP address or network, version predicate, datetime parse.
type FormatError struct {
	Attr   string
	Format string
	Value  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("field %s: malformed %s %q", e.Attr, e.Format, e.Value)
}

// SchemaMismatchError reports an object value whose declared schema name
// does not match the expected name or allowed-subclass set.
type SchemaMismatchError struct {
	Attr     string
	Expected string
	Actual   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("an object of type %s is required in field %s, not %s", e.Expected, e.Attr, e.Actual)
}

// typeName renders the concrete type of a value for error messages.
func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
