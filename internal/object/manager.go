package object

import "github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"

// Manager is the abstract grouping level: no additional fields, present
// only so the class hierarchy has a concrete [1,3] to derive from.
// It is never instantiated on its own in this runtime (DeviceManager and
// ClassManager are), but it satisfies Member for completeness of the
// tagged variant.
type Manager struct {
	core *ObjectCore
}

func NewManager(core *ObjectCore) *Manager { return &Manager{core: core} }

func (m *Manager) Core() *ObjectCore  { return m.core }
func (m *Manager) Children() []Member { return nil }

func (m *Manager) GetProperty(id model.ElementId) model.MethodResult {
	if r, ok := m.core.baseGetProperty(id); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (m *Manager) SetProperty(id model.ElementId, value interface{}) model.MethodResult {
	if r, ok := m.core.baseSetProperty(id, value); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (m *Manager) InvokeMethod(id model.ElementId, args map[string]interface{}) model.MethodResult {
	if r, ok := invokeBaseMethod(m, id, args); ok {
		return r
	}
	return model.Err(model.StatusMethodNotImplemented, "no such method")
}

func (m *Manager) SequenceLength(id model.ElementId) (int, model.Status) {
	if n, status, ok := m.core.baseSequenceLength(id); ok {
		return n, status
	}
	return 0, model.StatusPropertyNotImplemented
}

func (m *Manager) SequenceItem(id model.ElementId, index int) (interface{}, model.Status) {
	if v, status, ok := m.core.baseSequenceItem(id, index); ok {
		return v, status
	}
	return nil, model.StatusPropertyNotImplemented
}
