package fields

import (
	"fmt"
	"slices"
)

// Object is implemented by versioned objects that can appear as field
// values. The object base living outside this package provides the
// implementation; this package only consumes it.
type Object interface {
	// ObjectName returns the declared schema name of the object.
	ObjectName() string

	// ObjectParents returns the schema names of the object's ancestors,
	// nearest first. Objects with no ancestry return nil.
	ObjectParents() []string

	// ObjectPrimitive serializes the object to primitive form.
	ObjectPrimitive() (any, error)
}

// Identifiable is optionally implemented by objects that carry a short
// identity (a uuid or id attribute) worth including in stringified output.
type Identifiable interface {
	ObjectIdent() string
}

// Resolver reconstructs objects from primitive form. The external registry
// layer implements it; ctx is the opaque caller context passed through every
// field operation.
type Resolver interface {
	ObjectFromPrimitive(ctx any, primitive any) (Object, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx any, primitive any) (Object, error)

func (f ResolverFunc) ObjectFromPrimitive(ctx any, primitive any) (Object, error) {
	return f(ctx, primitive)
}

// ObjectReference is a field type holding a nested versioned object of a
// named schema.
type ObjectReference struct {
	name       string
	subclasses bool
	resolver   Resolver
}

// ObjectReferenceOption configures an ObjectReference.
type ObjectReferenceOption func(*ObjectReference)

// AcceptSubclasses makes the reference accept any object whose ancestor
// chain contains the expected schema name.
func AcceptSubclasses() ObjectReferenceOption {
	return func(t *ObjectReference) { t.subclasses = true }
}

// WithResolver supplies the registry handle used to rebuild objects from
// primitive form.
func WithResolver(r Resolver) ObjectReferenceOption {
	return func(t *ObjectReference) { t.resolver = r }
}

// NewObjectReference builds a reference to the named schema.
func NewObjectReference(name string, opts ...ObjectReferenceOption) *ObjectReference {
	t := &ObjectReference{name: name}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TargetName returns the expected schema name.
func (t *ObjectReference) TargetName() string { return t.name }

func (t *ObjectReference) Coerce(obj any, attr string, value any) (any, error) {
	candidate, ok := value.(Object)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "Object<" + t.name + ">", Actual: typeName(value)}
	}
	if candidate.ObjectName() == t.name {
		return candidate, nil
	}
	if t.subclasses && slices.Contains(candidate.ObjectParents(), t.name) {
		return candidate, nil
	}
	return nil, &SchemaMismatchError{Attr: attr, Expected: t.name, Actual: candidate.ObjectName()}
}

func (t *ObjectReference) FromPrimitive(obj any, attr string, value any) (any, error) {
	// Values already hydrated by the serializer pass back unchanged.
	if candidate, ok := value.(Object); ok {
		return candidate, nil
	}
	if t.resolver == nil {
		return nil, fmt.Errorf("field %s: no resolver configured for Object<%s>", attr, t.name)
	}
	return t.resolver.ObjectFromPrimitive(obj, value)
}

func (t *ObjectReference) ToPrimitive(obj any, attr string, value any) (any, error) {
	candidate, ok := value.(Object)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "Object<" + t.name + ">", Actual: typeName(value)}
	}
	return candidate.ObjectPrimitive()
}

func (t *ObjectReference) Describe() string { return "Object<" + t.name + ">" }

func (t *ObjectReference) Stringify(value any) string {
	if ident, ok := value.(Identifiable); ok {
		return fmt.Sprintf("%s(%s)", t.name, ident.ObjectIdent())
	}
	return t.name
}
