// Package fields implements the typed field and coercion layer for versioned
// value objects: a hierarchy of scalar and compound field types, the Field
// wrapper binding a type to nullability and default policy, and mutable
// containers that keep element coercion live across in-place mutation.
//
// Every value a field accepts can be turned into a wire-safe primitive form
// (strings, numbers, booleans, null, sequences, string-keyed mappings) and
// reconstructed from it.
package fields

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

// FieldType is the capability implemented by every concrete field type.
//
// obj is the owning object (or any opaque caller context) and is passed
// through untouched; ObjectReference uses it to reach the external
// deserializer. attr is the name of the attribute being operated on and
// appears verbatim in error messages.
type FieldType interface {
	// Coerce converts a value being assigned into the natural in-memory
	// representation of the type, or fails if no sane conversion exists.
	Coerce(obj any, attr string, value any) (any, error)

	// FromPrimitive reconstructs the natural form from the output of
	// ToPrimitive.
	FromPrimitive(obj any, attr string, value any) (any, error)

	// ToPrimitive serializes a coerced value to primitive form.
	ToPrimitive(obj any, attr string, value any) (any, error)

	// Describe returns a short description of the type.
	Describe() string

	// Stringify returns a short human-readable rendering of a value.
	Stringify(value any) string
}

type unspecified struct{}

func (unspecified) String() string { return "<unset>" }

// UnspecifiedDefault marks a field that has no declared default value.
var UnspecifiedDefault any = unspecified{}

// Field binds a FieldType to the attribute-level contract: nullability,
// default value, and read-only policy. Field values are immutable schema
// metadata, created once at schema-definition time and shared by every
// instance of that schema.
type Field struct {
	fieldType FieldType
	nullable  bool
	def       any
	readOnly  bool
}

// Option configures a Field at construction time.
type Option func(*Field)

// WithNullable makes the field accept null, returning null itself.
func WithNullable() Option {
	return func(f *Field) { f.nullable = true }
}

// WithDefault declares the value substituted when null is assigned to a
// non-nullable field. The default is deep-copied and re-coerced on every
// substitution, so mutable defaults are never shared between objects.
func WithDefault(value any) Option {
	return func(f *Field) { f.def = value }
}

// WithReadOnly marks the field read-only. The flag is stored and exposed
// here; rejecting reassignment is the owning object's job.
func WithReadOnly() Option {
	return func(f *Field) { f.readOnly = true }
}

// New constructs a Field over the given type.
func New(fieldType FieldType, opts ...Option) *Field {
	f := &Field{fieldType: fieldType, def: UnspecifiedDefault}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Type returns the wrapped field type.
func (f *Field) Type() FieldType { return f.fieldType }

// Nullable reports whether null is an acceptable value.
func (f *Field) Nullable() bool { return f.nullable }

// ReadOnly reports whether the field is declared read-only.
func (f *Field) ReadOnly() bool { return f.readOnly }

// Default returns the declared default value and whether one was declared.
func (f *Field) Default() (any, bool) {
	if f.def == UnspecifiedDefault {
		return nil, false
	}
	return f.def, true
}

func (f *Field) null(obj any, attr string) (any, error) {
	if f.nullable {
		return nil, nil
	}
	if f.def != UnspecifiedDefault {
		// The default is copied and coerced each time so the type gets to
		// examine the object and attribute name at assignment time, and so
		// no two objects ever share one mutable default instance.
		return f.fieldType.Coerce(obj, attr, deepcopy.Copy(f.def))
	}
	return nil, &RequiredError{Attr: attr}
}

// Coerce applies the nullability/default policy and routes every non-null
// value into the wrapped type's coercion. It is called any time a value is
// set on an object attribute.
func (f *Field) Coerce(obj any, attr string, value any) (any, error) {
	if value == nil {
		return f.null(obj, attr)
	}
	return f.fieldType.Coerce(obj, attr, value)
}

// FromPrimitive deserializes a value from primitive form. Null passes
// through unchanged.
func (f *Field) FromPrimitive(obj any, attr string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return f.fieldType.FromPrimitive(obj, attr, value)
}

// ToPrimitive serializes a value to primitive form. Null passes through
// unchanged.
func (f *Field) ToPrimitive(obj any, attr string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return f.fieldType.ToPrimitive(obj, attr, value)
}

// Describe returns the wrapped type's description, prefixed to mark
// nullability.
func (f *Field) Describe() string {
	if f.nullable {
		return "Nullable" + f.fieldType.Describe()
	}
	return f.fieldType.Describe()
}

// Stringify returns a short human-readable rendering of a value.
func (f *Field) Stringify(value any) string {
	if value == nil {
		return "null"
	}
	return f.fieldType.Stringify(value)
}

// String renders the field's structural identity: type description, default,
// and nullability. The rendering is stable and feeds schema fingerprints.
func (f *Field) String() string {
	return fmt.Sprintf("%s(default=%v,nullable=%t)", f.fieldType.Describe(), f.def, f.nullable)
}
