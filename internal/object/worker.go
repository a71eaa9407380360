package object

import (
	"sync"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
)

// Worker adds a writable (2,1) enabled property to the base surface.
type Worker struct {
	core *ObjectCore

	mu      sync.RWMutex
	enabled bool
}

// NewWorker builds a worker with the given initial enabled state.
func NewWorker(core *ObjectCore, enabled bool) *Worker {
	return &Worker{core: core, enabled: enabled}
}

func (w *Worker) Core() *ObjectCore  { return w.core }
func (w *Worker) Children() []Member { return nil }

func (w *Worker) Enabled() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.enabled
}

func (w *Worker) GetProperty(id model.ElementId) model.MethodResult {
	if id.Level == 2 && id.Index == 1 {
		return model.Ok(w.Enabled())
	}
	if id.Level == 2 {
		return model.Err(model.StatusPropertyNotImplemented, "no such property")
	}
	if r, ok := w.core.baseGetProperty(id); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (w *Worker) SetProperty(id model.ElementId, value interface{}) model.MethodResult {
	if id.Level == 2 && id.Index == 1 {
		b, ok := value.(bool)
		if !ok {
			return model.Err(model.StatusParameterError, "enabled must be a boolean")
		}
		w.mu.Lock()
		changed := w.enabled != b
		w.enabled = b
		w.mu.Unlock()
		if changed {
			w.core.emitChange(model.NewElementId(2, 1), model.ChangeValueChanged, b)
		}
		return model.Ok(nil)
	}
	if id.Level == 2 {
		return model.Err(model.StatusPropertyNotImplemented, "no such property")
	}
	if r, ok := w.core.baseSetProperty(id, value); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (w *Worker) InvokeMethod(id model.ElementId, args map[string]interface{}) model.MethodResult {
	if r, ok := invokeBaseMethod(w, id, args); ok {
		return r
	}
	return model.Err(model.StatusMethodNotImplemented, "no such method")
}

func (w *Worker) SequenceLength(id model.ElementId) (int, model.Status) {
	if n, status, ok := w.core.baseSequenceLength(id); ok {
		return n, status
	}
	return 0, model.StatusPropertyNotImplemented
}

func (w *Worker) SequenceItem(id model.ElementId, index int) (interface{}, model.Status) {
	if v, status, ok := w.core.baseSequenceItem(id, index); ok {
		return v, status
	}
	return nil, model.StatusPropertyNotImplemented
}
