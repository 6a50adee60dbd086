package schema

import (
	"fmt"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// Registry is the explicit registration table mapping schema name to its
// version-tagged descriptors, newest first. The surrounding system owns the
// registry and must finish registration before handing it to readers;
// registering mid-computation is not supported.
type Registry struct {
	classes map[string][]*Descriptor
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string][]*Descriptor)}
}

// Register validates the descriptor and adds it under its name. Multiple
// versions of one name may coexist; duplicates of an exact (name, version)
// pair are rejected.
func (r *Registry) Register(d *Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for _, existing := range r.classes[d.Name] {
		if existing.Version == d.Version {
			return fmt.Errorf("schema: %s version %s is already registered", d.Name, d.Version)
		}
	}
	versions := append(r.classes[d.Name], d)
	sort.Slice(versions, func(i, j int) bool {
		vi := goversion.Must(goversion.NewVersion(versions[i].Version))
		vj := goversion.Must(goversion.NewVersion(versions[j].Version))
		return vi.GreaterThan(vj)
	})
	r.classes[d.Name] = versions
	return nil
}

// Latest returns the newest registered descriptor for name.
func (r *Registry) Latest(name string) (*Descriptor, bool) {
	versions := r.classes[name]
	if len(versions) == 0 {
		return nil, false
	}
	return versions[0], true
}

// Versions returns every registered descriptor for name, newest first.
func (r *Registry) Versions(name string) []*Descriptor {
	versions := r.classes[name]
	out := make([]*Descriptor, len(versions))
	copy(out, versions)
	return out
}

// All returns every registered descriptor, grouped by sorted name, newest
// version first within each name.
func (r *Registry) All() []*Descriptor {
	var out []*Descriptor
	for _, name := range r.Names() {
		out = append(out, r.classes[name]...)
	}
	return out
}

// Names returns every registered schema name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
