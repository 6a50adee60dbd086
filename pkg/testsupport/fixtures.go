// Package testsupport provides shared schema fixtures for tests across the
// module: a small registry of related schemas exercising nesting,
// self-reference, method tables, and compatibility relationships.
package testsupport

import (
	"testing"

	"github.com/goliatone/go-schemakit/pkg/fields"
	"github.com/goliatone/go-schemakit/pkg/schema"
)

// NewInstanceRegistry builds a registry with a compute-flavored schema
// family: Instance nests Flavor and a list of Ports, and Node references
// itself through its peer field.
func NewInstanceRegistry(t *testing.T) *schema.Registry {
	t.Helper()

	registry := schema.NewRegistry()
	descriptors := []*schema.Descriptor{
		InstanceDescriptor(),
		FlavorDescriptor(),
		PortDescriptor(),
		NodeDescriptor(),
	}
	for _, d := range descriptors {
		if err := registry.Register(d); err != nil {
			t.Fatalf("register %s: %v", d.Name, err)
		}
	}
	return registry
}

// InstanceDescriptor declares the Instance schema: scalars, compounds, and
// two nested-object fields.
func InstanceDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Name:    "Instance",
		Version: "1.2",
		Fields: map[string]*fields.Field{
			"id":       fields.UUIDField(fields.WithReadOnly()),
			"name":     fields.StringField(),
			"host":     fields.StringField(fields.WithNullable()),
			"memory":   fields.IntegerField(fields.WithDefault(512)),
			"tags":     fields.ListOfStringsField(fields.WithDefault([]any{})),
			"metadata": fields.DictOfStringsField(fields.WithNullable()),
			"flavor":   fields.ObjectField("Flavor", nil),
			"ports":    fields.ListOfObjectsField("Port", nil),
		},
		Methods: map[string]schema.MethodSignature{
			"Save":    {Args: []string{"context"}},
			"Refresh": {Args: []string{"context"}},
		},
		ChildVersions: map[string]string{
			"Flavor": "1.0",
			"Port":   "1.1",
		},
		Relationships: map[string][]schema.VersionPair{
			"flavor": {
				{Owner: "1.0", Child: "1.0"},
				{Owner: "1.1", Child: "1.0"},
				{Owner: "1.2", Child: "1.0"},
			},
			"ports": {
				{Owner: "1.1", Child: "1.0"},
				{Owner: "1.2", Child: "1.1"},
			},
		},
	}
}

// FlavorDescriptor declares the Flavor schema.
func FlavorDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Name:    "Flavor",
		Version: "1.0",
		Fields: map[string]*fields.Field{
			"name":  fields.StringField(),
			"vcpus": fields.IntegerField(),
			"ram":   fields.IntegerField(),
		},
	}
}

// PortDescriptor declares the Port schema.
func PortDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Name:    "Port",
		Version: "1.1",
		Fields: map[string]*fields.Field{
			"address": fields.MACAddressField(),
			"network": fields.IPNetworkField(fields.WithNullable()),
		},
	}
}

// NodeDescriptor declares the self-referential Node schema.
func NodeDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Name:    "Node",
		Version: "1.0",
		Fields: map[string]*fields.Field{
			"hostname": fields.StringField(),
			"peer":     fields.ObjectField("Node", nil, fields.WithNullable()),
		},
	}
}

// FakeObject is a minimal fields.Object implementation for coercion tests.
type FakeObject struct {
	Name    string
	Parents []string
	Ident   string
	Data    map[string]any
}

func (o *FakeObject) ObjectName() string { return o.Name }

func (o *FakeObject) ObjectParents() []string { return o.Parents }

func (o *FakeObject) ObjectPrimitive() (any, error) {
	primitive := map[string]any{"name": o.Name}
	for k, v := range o.Data {
		primitive[k] = v
	}
	return primitive, nil
}

func (o *FakeObject) ObjectIdent() string { return o.Ident }
