package object

import "github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"

// Object is a leaf Member exposing only the inherited level-1 surface.
type Object struct {
	core *ObjectCore
}

// NewObject wraps core as a plain leaf object.
func NewObject(core *ObjectCore) *Object {
	return &Object{core: core}
}

func (o *Object) Core() *ObjectCore  { return o.core }
func (o *Object) Children() []Member { return nil }

func (o *Object) GetProperty(id model.ElementId) model.MethodResult {
	if r, ok := o.core.baseGetProperty(id); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (o *Object) SetProperty(id model.ElementId, value interface{}) model.MethodResult {
	if r, ok := o.core.baseSetProperty(id, value); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (o *Object) InvokeMethod(id model.ElementId, args map[string]interface{}) model.MethodResult {
	if r, ok := invokeBaseMethod(o, id, args); ok {
		return r
	}
	return model.Err(model.StatusMethodNotImplemented, "no such method")
}

func (o *Object) SequenceLength(id model.ElementId) (int, model.Status) {
	if n, status, ok := o.core.baseSequenceLength(id); ok {
		return n, status
	}
	return 0, model.StatusPropertyNotImplemented
}

func (o *Object) SequenceItem(id model.ElementId, index int) (interface{}, model.Status) {
	if v, status, ok := o.core.baseSequenceItem(id, index); ok {
		return v, status
	}
	return nil, model.StatusPropertyNotImplemented
}
