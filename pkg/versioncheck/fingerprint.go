package versioncheck

import (
	"crypto/md5"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/goliatone/go-schemakit/pkg/schema"
)

// dumper renders the relevant schema data deterministically: map keys
// sorted, pointer addresses and capacities suppressed, methods ignored.
var dumper = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	SpewKeys:                true,
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// fingerprint digests the schema-shape data of one descriptor: its fields
// sorted by name, its method table sorted by name, and its child-version
// pins when declared. The reported string prepends the declared version, so
// a version bump alone changes the fingerprint even when the structural
// digest does not.
func fingerprint(d *schema.Descriptor, extra func(*schema.Descriptor) any) string {
	fieldEntries := make([][2]string, 0, len(d.Fields))
	for _, name := range d.FieldNames() {
		fieldEntries = append(fieldEntries, [2]string{name, d.Fields[name].String()})
	}

	methodEntries := make([][2]string, 0, len(d.Methods))
	for _, name := range d.MethodNames() {
		methodEntries = append(methodEntries, [2]string{name, d.Methods[name].Canonical()})
	}

	relevant := []any{fieldEntries, methodEntries}
	if d.ChildVersions != nil {
		relevant = append(relevant, d.ChildVersions)
	}
	if extra != nil {
		relevant = append(relevant, extra(d))
	}

	digest := md5.Sum([]byte(dumper.Sdump(relevant)))
	return fmt.Sprintf("%s-%x", d.Version, digest)
}
