package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemakit/pkg/fields"
)

func descriptor(name, version string) *Descriptor {
	return &Descriptor{
		Name:    name,
		Version: version,
		Fields: map[string]*fields.Field{
			"name": fields.StringField(),
		},
	}
}

func TestRegisterAndLatest(t *testing.T) {
	r := NewRegistry()
	for _, v := range []string{"1.0", "1.2", "1.1"} {
		if err := r.Register(descriptor("Widget", v)); err != nil {
			t.Fatalf("register %s: %v", v, err)
		}
	}
	latest, ok := r.Latest("Widget")
	if !ok {
		t.Fatalf("expected Widget to be registered")
	}
	if latest.Version != "1.2" {
		t.Fatalf("latest version mismatch: got %s", latest.Version)
	}
	versions := r.Versions("Widget")
	if len(versions) != 3 || versions[0].Version != "1.2" || versions[2].Version != "1.0" {
		t.Fatalf("versions must sort newest first: %v", versions)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(descriptor("Widget", "1.0")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Register(descriptor("Widget", "1.0")); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegisterValidates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Descriptor{Version: "1.0"}); err == nil {
		t.Fatalf("expected missing name to fail")
	}
	if err := r.Register(&Descriptor{Name: "Widget"}); err == nil {
		t.Fatalf("expected missing version to fail")
	}
	if err := r.Register(&Descriptor{Name: "Widget", Version: "not-a-version"}); err == nil {
		t.Fatalf("expected malformed version to fail")
	}
}

func TestValidateChecksRelationshipVersions(t *testing.T) {
	d := descriptor("Widget", "1.0")
	d.Relationships = map[string][]VersionPair{
		"child": {{Owner: "1.0", Child: "bogus"}},
	}
	if err := d.Validate(); err == nil {
		t.Fatalf("expected malformed relationship version to fail")
	}
}

func TestNames(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if err := r.Register(descriptor(name, "1.0")); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	if diff := cmp.Diff([]string{"Alpha", "Mid", "Zeta"}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestAllGroupsByName(t *testing.T) {
	r := NewRegistry()
	for _, d := range []*Descriptor{
		descriptor("Beta", "1.0"),
		descriptor("Alpha", "1.1"),
		descriptor("Alpha", "1.0"),
	} {
		if err := r.Register(d); err != nil {
			t.Fatalf("register %s %s: %v", d.Name, d.Version, err)
		}
	}
	all := r.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(all))
	}
	if all[0].Name != "Alpha" || all[0].Version != "1.1" {
		t.Fatalf("expected newest Alpha first, got %s %s", all[0].Name, all[0].Version)
	}
	if all[2].Name != "Beta" {
		t.Fatalf("expected Beta last, got %s", all[2].Name)
	}
}

func TestMethodSignatureCanonical(t *testing.T) {
	cases := []struct {
		sig  MethodSignature
		want string
	}{
		{MethodSignature{}, "()"},
		{MethodSignature{Args: []string{"context", "id"}}, "(context,id)"},
		{MethodSignature{Args: []string{"context", "values"}, Variadic: true}, "(context,values...)"},
	}
	for _, tc := range cases {
		if got := tc.sig.Canonical(); got != tc.want {
			t.Fatalf("canonical mismatch: got %q, want %q", got, tc.want)
		}
	}
}

func TestFieldNamesSorted(t *testing.T) {
	d := &Descriptor{
		Name:    "Widget",
		Version: "1.0",
		Fields: map[string]*fields.Field{
			"b": fields.StringField(),
			"a": fields.StringField(),
			"c": fields.StringField(),
		},
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, d.FieldNames()); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
}
