package object

import (
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/registry"
)

// ClassManager is the fixed-role [1,3,2] object exposing the reflective
// class and datatype registry.
type ClassManager struct {
	core *ObjectCore
	reg  *registry.Registry
}

// NewClassManager builds a class manager backed by reg, built once at
// bootstrap and shared read-only thereafter.
func NewClassManager(core *ObjectCore, reg *registry.Registry) *ClassManager {
	return &ClassManager{core: core, reg: reg}
}

func (c *ClassManager) Core() *ObjectCore  { return c.core }
func (c *ClassManager) Children() []Member { return nil }

func (c *ClassManager) GetProperty(id model.ElementId) model.MethodResult {
	if id.Level == 3 {
		switch id.Index {
		case 1:
			return model.Ok(c.reg.ControlClasses())
		case 2:
			return model.Ok(c.reg.Datatypes())
		default:
			return model.Err(model.StatusPropertyNotImplemented, "no such property")
		}
	}
	if r, ok := c.core.baseGetProperty(id); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (c *ClassManager) SetProperty(id model.ElementId, value interface{}) model.MethodResult {
	if id.Level == 3 {
		if id.Index == 1 || id.Index == 2 {
			return model.Err(model.StatusReadonly, "class-manager property is read-only")
		}
		return model.Err(model.StatusPropertyNotImplemented, "no such property")
	}
	if r, ok := c.core.baseSetProperty(id, value); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (c *ClassManager) InvokeMethod(id model.ElementId, args map[string]interface{}) model.MethodResult {
	if id.Level == 3 {
		switch id.Index {
		case 1:
			classId, ok := argClassId(args, "classId")
			if !ok {
				return model.Err(model.StatusBadCommandFormat, "missing classId argument")
			}
			includeInherited, _ := argBool(args, "includeInherited")
			desc, found := c.reg.GetControlClass(classId, includeInherited)
			if !found {
				return model.Err(model.StatusPropertyNotImplemented, "no such control class")
			}
			return model.Ok(desc)
		case 2:
			name, ok := argString(args, "name")
			if !ok {
				return model.Err(model.StatusBadCommandFormat, "missing name argument")
			}
			includeInherited, _ := argBool(args, "includeInherited")
			desc, found := c.reg.GetDatatype(name, includeInherited)
			if !found {
				return model.Err(model.StatusPropertyNotImplemented, "no such datatype")
			}
			return model.Ok(desc)
		default:
			return model.Err(model.StatusMethodNotImplemented, "no such method")
		}
	}
	if r, ok := invokeBaseMethod(c, id, args); ok {
		return r
	}
	return model.Err(model.StatusMethodNotImplemented, "no such method")
}

func (c *ClassManager) SequenceLength(id model.ElementId) (int, model.Status) {
	if id.Level == 3 && id.Index == 1 {
		return len(c.reg.ControlClasses()), model.StatusOk
	}
	if id.Level == 3 && id.Index == 2 {
		return len(c.reg.Datatypes()), model.StatusOk
	}
	if n, status, ok := c.core.baseSequenceLength(id); ok {
		return n, status
	}
	return 0, model.StatusPropertyNotImplemented
}

func (c *ClassManager) SequenceItem(id model.ElementId, index int) (interface{}, model.Status) {
	if id.Level == 3 && id.Index == 1 {
		items := c.reg.ControlClasses()
		if index < 0 || index >= len(items) {
			return nil, model.StatusIndexOutOfBounds
		}
		return items[index], model.StatusOk
	}
	if id.Level == 3 && id.Index == 2 {
		items := c.reg.Datatypes()
		if index < 0 || index >= len(items) {
			return nil, model.StatusIndexOutOfBounds
		}
		return items[index], model.StatusOk
	}
	if v, status, ok := c.core.baseSequenceItem(id, index); ok {
		return v, status
	}
	return nil, model.StatusPropertyNotImplemented
}
