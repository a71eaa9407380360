// Package object implements the NCP object hierarchy: a tagged variant of
// Member types sharing an ObjectCore, dispatch on the uniform
// get_property/set_property/invoke_method operations, and target routing by
// depth-first oid search.
package object

import (
	"sync"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
)

// EventEmitter is how a Member reports a property change to the rest of the
// system. Implementations must not block; the event bus absorbs
// backpressure, never the caller.
type EventEmitter func(model.PropertyChangedEvent)

// Member is the uniform interface every object-tree node satisfies. Variant
// behavior lives on the concrete types; callers only ever hold Members.
type Member interface {
	Core() *ObjectCore
	GetProperty(id model.ElementId) model.MethodResult
	SetProperty(id model.ElementId, value interface{}) model.MethodResult
	InvokeMethod(id model.ElementId, args map[string]interface{}) model.MethodResult
	SequenceLength(id model.ElementId) (int, model.Status)
	SequenceItem(id model.ElementId, index int) (interface{}, model.Status)
	// Children returns the ordered child list for blocks, nil otherwise.
	Children() []Member
}

// ObjectCore holds the invariant record every Member carries plus the
// machinery (lock, emitter) every variant's level-1 behavior needs.
type ObjectCore struct {
	mu sync.RWMutex

	classId     model.ClassId
	oid         model.Oid
	constantOid bool
	owner       model.Oid
	hasOwner    bool
	role        string
	userLabel   *string

	touchpoints []model.Touchpoint
	constraints []model.PropertyConstraint

	emit EventEmitter
}

// NewObjectCore builds the shared record for a Member. owner is nil for the
// root block only.
func NewObjectCore(classId model.ClassId, oid model.Oid, constantOid bool, owner *model.Oid, role string, touchpoints []model.Touchpoint, constraints []model.PropertyConstraint, emit EventEmitter) *ObjectCore {
	c := &ObjectCore{
		classId:     classId.Clone(),
		oid:         oid,
		constantOid: constantOid,
		role:        role,
		touchpoints: append([]model.Touchpoint(nil), touchpoints...),
		constraints: append([]model.PropertyConstraint(nil), constraints...),
		emit:        emit,
	}
	if owner != nil {
		c.owner = *owner
		c.hasOwner = true
	}
	return c
}

func (c *ObjectCore) Oid() model.Oid         { return c.oid }
func (c *ObjectCore) ClassId() model.ClassId { return c.classId.Clone() }
func (c *ObjectCore) Role() string           { return c.role }
func (c *ObjectCore) ConstantOid() bool      { return c.constantOid }

// Owner returns the owning block's oid and true, or false for the root.
func (c *ObjectCore) Owner() (model.Oid, bool) {
	return c.owner, c.hasOwner
}

// UserLabel returns the current user label, or nil if unset.
func (c *ObjectCore) UserLabel() *string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.userLabel == nil {
		return nil
	}
	v := *c.userLabel
	return &v
}

// SetUserLabel stores the new label and emits a ValueChanged event for
// (1,6), the only writable level-1 property.
func (c *ObjectCore) SetUserLabel(v *string) {
	c.mu.Lock()
	c.userLabel = v
	c.mu.Unlock()
	if c.emit != nil {
		var value interface{}
		if v != nil {
			value = *v
		}
		c.emit(model.NewPropertyChangedEvent(c.oid, model.NewElementId(1, 6), model.ChangeValueChanged, value, nil))
	}
}

func (c *ObjectCore) emitChange(id model.ElementId, changeType model.ChangeType, value interface{}) {
	if c.emit != nil {
		c.emit(model.NewPropertyChangedEvent(c.oid, id, changeType, value, nil))
	}
}

// baseGetProperty services the eight level-1 base properties. ok is false
// when id is not level 1; an unknown level-1 index yields
// PropertyNotImplemented with ok true.
func (c *ObjectCore) baseGetProperty(id model.ElementId) (model.MethodResult, bool) {
	if id.Level != 1 {
		return model.MethodResult{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch id.Index {
	case 1:
		return model.Ok(c.classId.Clone()), true
	case 2:
		return model.Ok(c.oid), true
	case 3:
		return model.Ok(c.constantOid), true
	case 4:
		if !c.hasOwner {
			return model.Ok(nil), true
		}
		return model.Ok(c.owner), true
	case 5:
		return model.Ok(c.role), true
	case 6:
		if c.userLabel == nil {
			return model.Ok(nil), true
		}
		return model.Ok(*c.userLabel), true
	case 7:
		return model.Ok(append([]model.Touchpoint(nil), c.touchpoints...)), true
	case 8:
		return model.Ok(append([]model.PropertyConstraint(nil), c.constraints...)), true
	default:
		return model.Err(model.StatusPropertyNotImplemented, "no such level-1 property"), true
	}
}

// baseSetProperty allows only (1,6) userLabel; every other level-1 property
// is Readonly.
func (c *ObjectCore) baseSetProperty(id model.ElementId, value interface{}) (model.MethodResult, bool) {
	if id.Level != 1 {
		return model.MethodResult{}, false
	}
	if id.Index != 6 {
		if id.Index >= 1 && id.Index <= 8 {
			return model.Err(model.StatusReadonly, "level-1 property is read-only"), true
		}
		return model.Err(model.StatusPropertyNotImplemented, "no such level-1 property"), true
	}
	switch v := value.(type) {
	case nil:
		c.SetUserLabel(nil)
	case string:
		c.SetUserLabel(&v)
	default:
		return model.Err(model.StatusParameterError, "userLabel must be a string or null"), true
	}
	return model.Ok(nil), true
}

// baseSequenceLength/baseSequenceItem service the two level-1 sequence
// properties: touchpoints (1,7) and runtimePropertyConstraints (1,8).
func (c *ObjectCore) baseSequenceLength(id model.ElementId) (int, model.Status, bool) {
	if id.Level != 1 || (id.Index != 7 && id.Index != 8) {
		return 0, 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id.Index == 7 {
		return len(c.touchpoints), model.StatusOk, true
	}
	return len(c.constraints), model.StatusOk, true
}

func (c *ObjectCore) baseSequenceItem(id model.ElementId, index int) (interface{}, model.Status, bool) {
	if id.Level != 1 || (id.Index != 7 && id.Index != 8) {
		return nil, 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id.Index == 7 {
		if index < 0 || index >= len(c.touchpoints) {
			return nil, model.StatusIndexOutOfBounds, true
		}
		return c.touchpoints[index], model.StatusOk, true
	}
	if index < 0 || index >= len(c.constraints) {
		return nil, model.StatusIndexOutOfBounds, true
	}
	return c.constraints[index], model.StatusOk, true
}
