package fields

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// VersionPredicate coerces to a version-range expression such as
// ">= 1.0, < 2.0". The natural form stays textual; coercion only validates
// the grammar.
type VersionPredicate struct{}

func (VersionPredicate) Coerce(obj any, attr string, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, &TypeMismatchError{Attr: attr, Expected: "version predicate", Actual: typeName(value)}
	}
	if _, err := goversion.NewConstraint(s); err != nil {
		return nil, &FormatError{Attr: attr, Format: "version predicate", Value: s}
	}
	return s, nil
}

func (t VersionPredicate) FromPrimitive(obj any, attr string, value any) (any, error) {
	return t.Coerce(obj, attr, value)
}

func (VersionPredicate) ToPrimitive(obj any, attr string, value any) (any, error) {
	return value, nil
}

func (VersionPredicate) Describe() string { return "VersionPredicate" }

func (VersionPredicate) Stringify(value any) string { return fmt.Sprintf("%s", value) }
