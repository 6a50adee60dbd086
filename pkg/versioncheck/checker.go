// Package versioncheck detects unintended schema drift. It computes a
// deterministic fingerprint per registered schema, diffs fingerprints
// against a stored baseline, derives the nested-object dependency tree, and
// verifies that declared compatibility-version pairs stay monotonic.
//
// Fingerprint mismatches and ordering violations are reported as structured
// data rather than raised, so test tooling can render a readable report and
// decide what constitutes failure.
package versioncheck

import (
	"fmt"
	"sort"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-schemakit/pkg/fields"
	"github.com/goliatone/go-schemakit/pkg/schema"
)

// Checker walks a registry of schema descriptors. The registry must be
// fully populated before any check runs.
type Checker struct {
	registry *schema.Registry
	logger   zerolog.Logger
	extra    func(*schema.Descriptor) any
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger supplies the logger used while walking schemas.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

// WithExtraData registers a hook contributing additional per-schema data to
// each fingerprint, for callers whose schemas carry versioning-relevant
// state beyond fields and methods.
func WithExtraData(fn func(*schema.Descriptor) any) Option {
	return func(c *Checker) { c.extra = fn }
}

// New builds a Checker over the given registry.
func New(registry *schema.Registry, opts ...Option) *Checker {
	c := &Checker{registry: registry, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fingerprint computes the fingerprint of the newest registered version of
// the named schema.
func (c *Checker) Fingerprint(name string) (string, error) {
	d, ok := c.registry.Latest(name)
	if !ok {
		return "", fmt.Errorf("versioncheck: schema %s is not registered", name)
	}
	fp := fingerprint(d, c.extra)
	c.logger.Debug().Str("schema", name).Str("fingerprint", fp).Msg("computed fingerprint")
	return fp, nil
}

// Hashes returns the fingerprint of every registered schema, keyed by name.
func (c *Checker) Hashes() map[string]string {
	hashes := make(map[string]string)
	for _, name := range c.registry.Names() {
		fp, err := c.Fingerprint(name)
		if err != nil {
			continue
		}
		hashes[name] = fp
	}
	return hashes
}

// Mismatch reports the schemas whose fingerprints differ from a stored
// baseline. For every changed name both sides are recorded; an empty string
// marks a side that has no entry.
type Mismatch struct {
	Expected map[string]string
	Actual   map[string]string
}

// Empty reports whether no fingerprint changed.
func (m Mismatch) Empty() bool {
	return len(m.Expected) == 0 && len(m.Actual) == 0
}

func (m Mismatch) String() string {
	names := make(map[string]struct{})
	for name := range m.Expected {
		names[name] = struct{}{}
	}
	for name := range m.Actual {
		names[name] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	lines := make([]string, len(sorted))
	for i, name := range sorted {
		lines[i] = fmt.Sprintf("%s: expected %q, actual %q", name, m.Expected[name], m.Actual[name])
	}
	return strings.Join(lines, "\n")
}

// CompareHashes computes current fingerprints and diffs them against the
// stored baseline by symmetric difference on (name, fingerprint) pairs. A
// non-empty result means any consumer pinned to an old fingerprint must be
// assumed incompatible until reviewed.
func (c *Checker) CompareHashes(expected map[string]string) Mismatch {
	actual := c.Hashes()
	mismatch := Mismatch{Expected: make(map[string]string), Actual: make(map[string]string)}
	for name, fp := range expected {
		if actual[name] != fp {
			mismatch.Expected[name] = fp
			mismatch.Actual[name] = actual[name]
		}
	}
	for name, fp := range actual {
		if expected[name] != fp {
			mismatch.Expected[name] = expected[name]
			mismatch.Actual[name] = fp
		}
	}
	if !mismatch.Empty() {
		c.logger.Warn().Int("changed", len(mismatch.Actual)).Msg("schema fingerprints differ from baseline")
	}
	return mismatch
}

// DependencyTree maps each schema name to the schemas its ObjectReference
// fields point at, labeled with the child's current version. Compound
// element types are unwrapped, so a list of objects contributes an edge
// too. The walk is memoized per schema name and treats an already-visited
// schema as a leaf, so self-referential schemas terminate.
func (c *Checker) DependencyTree() (map[string]map[string]string, error) {
	tree := make(map[string]map[string]string)
	visited := make(map[string]bool)
	for _, name := range c.registry.Names() {
		d, _ := c.registry.Latest(name)
		if err := c.dependencies(tree, visited, d); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func (c *Checker) dependencies(tree map[string]map[string]string, visited map[string]bool, d *schema.Descriptor) error {
	if visited[d.Name] {
		return nil
	}
	visited[d.Name] = true
	for _, fieldName := range d.FieldNames() {
		for _, target := range objectTargets(d.Fields[fieldName].Type()) {
			child, ok := c.registry.Latest(target)
			if !ok {
				return fmt.Errorf("versioncheck: schema %s field %s references unregistered schema %s", d.Name, fieldName, target)
			}
			if err := c.dependencies(tree, visited, child); err != nil {
				return err
			}
			if tree[d.Name] == nil {
				tree[d.Name] = make(map[string]string)
			}
			tree[d.Name][target] = child.Version
		}
	}
	return nil
}

// objectTargets collects the schema names referenced by a field type,
// unwrapping compound element types.
func objectTargets(ft fields.FieldType) []string {
	switch t := ft.(type) {
	case *fields.ObjectReference:
		return []string{t.TargetName()}
	case *fields.List:
		return objectTargets(t.Element().Type())
	case *fields.Mapping:
		return objectTargets(t.Element().Type())
	case *fields.Set:
		return objectTargets(t.Element().Type())
	}
	return nil
}

// TreeMismatch reports dependency subtrees that differ from an expected
// tree.
type TreeMismatch struct {
	Expected map[string]map[string]string
	Actual   map[string]map[string]string
}

// Empty reports whether no subtree changed.
func (m TreeMismatch) Empty() bool {
	return len(m.Expected) == 0 && len(m.Actual) == 0
}

// CompareDependencyTree diffs the current dependency tree against an
// expected one, keyed by owning schema name.
func (c *Checker) CompareDependencyTree(expected map[string]map[string]string) (TreeMismatch, error) {
	actual, err := c.DependencyTree()
	if err != nil {
		return TreeMismatch{}, err
	}
	mismatch := TreeMismatch{
		Expected: make(map[string]map[string]string),
		Actual:   make(map[string]map[string]string),
	}
	for name, deps := range expected {
		if fmt.Sprint(actual[name]) != fmt.Sprint(deps) {
			mismatch.Expected[name] = deps
			mismatch.Actual[name] = actual[name]
		}
	}
	for name, deps := range actual {
		if fmt.Sprint(expected[name]) != fmt.Sprint(deps) {
			mismatch.Expected[name] = expected[name]
			mismatch.Actual[name] = deps
		}
	}
	return mismatch, nil
}

// OrderingViolation reports one out-of-order entry in a declared
// compatibility relationship.
type OrderingViolation struct {
	Schema string
	Field  string
	Pair   schema.VersionPair
	Prev   schema.VersionPair
	Reason string
}

func (v OrderingViolation) String() string {
	return fmt.Sprintf("schema %s relationship %s for field %s is out of order after %s: %s",
		v.Schema, v.Pair, v.Field, v.Prev, v.Reason)
}

// CheckRelationshipOrdering walks the consecutive version pairs of every
// declared child relationship of one schema. The owner version must
// strictly increase and the child version must never decrease between
// consecutive entries. All violations are collected, not just the first.
func CheckRelationshipOrdering(d *schema.Descriptor) []OrderingViolation {
	var violations []OrderingViolation
	fieldNames := make([]string, 0, len(d.Relationships))
	for field := range d.Relationships {
		fieldNames = append(fieldNames, field)
	}
	sort.Strings(fieldNames)

	for _, field := range fieldNames {
		prevOwner := goversion.Must(goversion.NewVersion("0.0"))
		prevChild := goversion.Must(goversion.NewVersion("0.0"))
		prev := schema.VersionPair{Owner: "0.0", Child: "0.0"}
		for _, pair := range d.Relationships[field] {
			owner, child, reason := compareOrdering(prevOwner, prevChild, pair)
			if reason != "" {
				violations = append(violations, OrderingViolation{
					Schema: d.Name,
					Field:  field,
					Pair:   pair,
					Prev:   prev,
					Reason: reason,
				})
			}
			// A malformed pair never becomes the comparison baseline.
			if owner != nil && child != nil {
				prevOwner, prevChild, prev = owner, child, pair
			}
		}
	}
	return violations
}

func compareOrdering(prevOwner, prevChild *goversion.Version, pair schema.VersionPair) (*goversion.Version, *goversion.Version, string) {
	owner, err := goversion.NewVersion(pair.Owner)
	if err != nil {
		return nil, nil, fmt.Sprintf("malformed owner version %q", pair.Owner)
	}
	child, err := goversion.NewVersion(pair.Child)
	if err != nil {
		return nil, nil, fmt.Sprintf("malformed child version %q", pair.Child)
	}
	if !owner.GreaterThan(prevOwner) {
		return owner, child, "owner version did not increase"
	}
	if child.LessThan(prevChild) {
		return owner, child, "child version decreased"
	}
	return owner, child, ""
}

// RelationshipsInOrder checks relationship ordering across every registered
// schema version.
func (c *Checker) RelationshipsInOrder() []OrderingViolation {
	var violations []OrderingViolation
	for _, d := range c.registry.All() {
		violations = append(violations, CheckRelationshipOrdering(d)...)
	}
	if len(violations) > 0 {
		c.logger.Warn().Int("violations", len(violations)).Msg("relationship ordering violations found")
	}
	return violations
}
