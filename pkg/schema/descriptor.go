// Package schema holds the registration-table collaborator surface: the
// per-schema descriptor (fields, remotely-invocable method signatures,
// nested-child version pins, compatibility relationships) and the registry
// that the surrounding system owns and passes by handle into version
// checking and object resolution.
package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/goliatone/go-schemakit/pkg/fields"
)

var (
	errNameMissing    = errors.New("schema: descriptor name is required")
	errVersionMissing = errors.New("schema: descriptor version is required")
)

// MethodSignature is the canonical description of one remotely-invocable
// method. Methods are declared explicitly in this table rather than
// discovered by reflection, so two methods with identical
// behavior-affecting signatures always render identically.
type MethodSignature struct {
	// Args names the arguments in declaration order.
	Args []string
	// Variadic marks a trailing variadic argument.
	Variadic bool
}

// Canonical renders the signature in the stable textual form used by
// fingerprinting.
func (s MethodSignature) Canonical() string {
	args := strings.Join(s.Args, ",")
	if s.Variadic {
		args += "..."
	}
	return "(" + args + ")"
}

// VersionPair is one entry of a compatibility relationship: the owning
// schema's version paired with the minimum child version it ships with.
type VersionPair struct {
	Owner string
	Child string
}

func (p VersionPair) String() string {
	return fmt.Sprintf("%s->%s", p.Owner, p.Child)
}

// Descriptor declares one versioned object schema: its named fields, its
// remotely-invocable method table, and (optionally) the version pins of its
// nested children. Descriptors are immutable once registered.
type Descriptor struct {
	Name    string
	Version string

	// Fields maps attribute name to its field declaration.
	Fields map[string]*fields.Field

	// Methods is the explicit remotely-invocable method table.
	Methods map[string]MethodSignature

	// ChildVersions pins the minimum supported version per nested child
	// schema. Nil when the schema declares none.
	ChildVersions map[string]string

	// Relationships holds, per related-child field, the ordered sequence of
	// (owner version, child version) compatibility pairs.
	Relationships map[string][]VersionPair
}

// Validate checks that the descriptor is well-formed: name and version
// present, version and every declared version pin parseable.
func (d *Descriptor) Validate() error {
	if d.Name == "" {
		return errNameMissing
	}
	if d.Version == "" {
		return errVersionMissing
	}
	if _, err := goversion.NewVersion(d.Version); err != nil {
		return fmt.Errorf("schema %s: invalid version %q: %w", d.Name, d.Version, err)
	}
	for child, v := range d.ChildVersions {
		if _, err := goversion.NewVersion(v); err != nil {
			return fmt.Errorf("schema %s: invalid version %q for child %s: %w", d.Name, v, child, err)
		}
	}
	for field, pairs := range d.Relationships {
		for _, pair := range pairs {
			if _, err := goversion.NewVersion(pair.Owner); err != nil {
				return fmt.Errorf("schema %s: field %s: invalid owner version %q: %w", d.Name, field, pair.Owner, err)
			}
			if _, err := goversion.NewVersion(pair.Child); err != nil {
				return fmt.Errorf("schema %s: field %s: invalid child version %q: %w", d.Name, field, pair.Child, err)
			}
		}
	}
	return nil
}

// FieldNames returns the declared field names in sorted order.
func (d *Descriptor) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MethodNames returns the declared method names in sorted order.
func (d *Descriptor) MethodNames() []string {
	names := make([]string, 0, len(d.Methods))
	for name := range d.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
