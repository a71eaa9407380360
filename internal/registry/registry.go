// Package registry implements the reflective class and datatype registry:
// a flat, string-keyed store of ClassDescriptor and DatatypeDescriptor
// values, with one derived-first inheritance expansion rule applied
// uniformly to both.
package registry

import "github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"

// Registry is the ClassManager's backing store. It is built once at
// bootstrap and never mutated afterwards, so it needs no locking of its
// own; concurrent reads are always safe.
type Registry struct {
	classOrder []string
	classes    map[string]model.ClassDescriptor

	datatypeOrder []string
	datatypes     map[string]model.DatatypeDescriptor
}

// New returns an empty registry ready for AddClass/AddDatatype calls.
func New() *Registry {
	return &Registry{
		classes:   make(map[string]model.ClassDescriptor),
		datatypes: make(map[string]model.DatatypeDescriptor),
	}
}

// AddClass registers a class descriptor in its non-inheritance-expanded
// form, keyed by the dotted form of its class id.
func (r *Registry) AddClass(c model.ClassDescriptor) {
	key := c.ClassId.Dotted()
	if _, exists := r.classes[key]; !exists {
		r.classOrder = append(r.classOrder, key)
	}
	r.classes[key] = c
}

// AddDatatype registers a datatype descriptor, keyed by name.
func (r *Registry) AddDatatype(d model.DatatypeDescriptor) {
	if _, exists := r.datatypes[d.Name]; !exists {
		r.datatypeOrder = append(r.datatypeOrder, d.Name)
	}
	r.datatypes[d.Name] = d
}

// ControlClasses returns every registered class descriptor, non-expanded,
// in registration order; the value backing ClassManager property (3,1).
func (r *Registry) ControlClasses() []model.ClassDescriptor {
	out := make([]model.ClassDescriptor, 0, len(r.classOrder))
	for _, key := range r.classOrder {
		out = append(out, r.classes[key])
	}
	return out
}

// Datatypes returns every registered datatype descriptor in registration
// order; the value backing ClassManager property (3,2).
func (r *Registry) Datatypes() []model.DatatypeDescriptor {
	out := make([]model.DatatypeDescriptor, 0, len(r.datatypeOrder))
	for _, name := range r.datatypeOrder {
		out = append(out, r.datatypes[name])
	}
	return out
}

// GetControlClass looks a class up by id. When includeInherited is true the
// returned descriptor's Properties/Methods/Events are the derived-first
// concatenation of the class's own members followed by its expanded
// parent's.
func (r *Registry) GetControlClass(id model.ClassId, includeInherited bool) (model.ClassDescriptor, bool) {
	c, ok := r.classes[id.Dotted()]
	if !ok {
		return model.ClassDescriptor{}, false
	}
	if !includeInherited {
		return c.Clone(), true
	}
	return r.expandClass(c), true
}

// expandClass concatenates c's own descriptors with its expanded parent's,
// derived-first, walking the Parent class-id chain.
func (r *Registry) expandClass(c model.ClassDescriptor) model.ClassDescriptor {
	out := c.Clone()
	if c.Parent == nil {
		return out
	}
	parent, ok := r.classes[c.Parent.Dotted()]
	if !ok {
		return out
	}
	expandedParent := r.expandClass(parent)
	out.Properties = append(out.Properties, expandedParent.Properties...)
	out.Methods = append(out.Methods, expandedParent.Methods...)
	out.Events = append(out.Events, expandedParent.Events...)
	return out
}

// GetDatatype looks a datatype up by name. When includeInherited is true and
// the datatype is a Struct, its Fields are the derived-first concatenation
// of its own fields with its expanded ParentType's fields.
func (r *Registry) GetDatatype(name string, includeInherited bool) (model.DatatypeDescriptor, bool) {
	d, ok := r.datatypes[name]
	if !ok {
		return model.DatatypeDescriptor{}, false
	}
	if !includeInherited || d.Kind != model.DatatypeStruct {
		return d.Clone(), true
	}
	return r.expandStruct(d), true
}

func (r *Registry) expandStruct(d model.DatatypeDescriptor) model.DatatypeDescriptor {
	out := d.Clone()
	if out.ParentType == "" {
		return out
	}
	parent, ok := r.datatypes[out.ParentType]
	if !ok || parent.Kind != model.DatatypeStruct {
		return out
	}
	expandedParent := r.expandStruct(parent)
	out.Fields = append(out.Fields, expandedParent.Fields...)
	return out
}
