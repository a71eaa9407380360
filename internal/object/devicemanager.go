package object

import (
	"sync"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
)

// DeviceManager is the fixed-role [1,3,1] object carrying device identity
// and health.
type DeviceManager struct {
	core *ObjectCore

	mu                sync.RWMutex
	ncVersion         string
	manufacturer      model.Manufacturer
	product           model.Product
	serialNumber      string
	userInventoryCode *string
	deviceName        *string
	deviceRole        *string
	operationalState  model.OperationalState
	resetCause        model.ResetCause
	message           *string
}

// DeviceManagerConfig seeds the immutable identity fields at construction.
type DeviceManagerConfig struct {
	NcVersion    string
	Manufacturer model.Manufacturer
	Product      model.Product
	SerialNumber string
}

// NewDeviceManager builds a device manager starting in the Initializing
// generic state; MarkReady transitions it to Normal.
func NewDeviceManager(core *ObjectCore, cfg DeviceManagerConfig) *DeviceManager {
	return &DeviceManager{
		core:         core,
		ncVersion:    cfg.NcVersion,
		manufacturer: cfg.Manufacturer,
		product:      cfg.Product,
		serialNumber: cfg.SerialNumber,
		operationalState: model.OperationalState{
			GenericState: model.GenericStateInitializing,
		},
		resetCause: model.ResetCauseUnknown,
	}
}

// MarkReady transitions operationalState from Initializing to Normal once
// bootstrap has finished building the tree, emitting ValueChanged for (3,8).
func (d *DeviceManager) MarkReady() {
	d.mu.Lock()
	d.operationalState = model.OperationalState{GenericState: model.GenericStateNormal}
	state := d.operationalState
	d.mu.Unlock()
	d.core.emitChange(model.NewElementId(3, 8), model.ChangeValueChanged, state)
}

func (d *DeviceManager) Core() *ObjectCore  { return d.core }
func (d *DeviceManager) Children() []Member { return nil }

func (d *DeviceManager) GetProperty(id model.ElementId) model.MethodResult {
	if id.Level == 3 {
		d.mu.RLock()
		defer d.mu.RUnlock()
		switch id.Index {
		case 1:
			return model.Ok(d.ncVersion)
		case 2:
			return model.Ok(d.manufacturer)
		case 3:
			return model.Ok(d.product)
		case 4:
			return model.Ok(d.serialNumber)
		case 5:
			return model.Ok(derefOrNil(d.userInventoryCode))
		case 6:
			return model.Ok(derefOrNil(d.deviceName))
		case 7:
			return model.Ok(derefOrNil(d.deviceRole))
		case 8:
			return model.Ok(d.operationalState)
		case 9:
			return model.Ok(d.resetCause)
		case 10:
			return model.Ok(derefOrNil(d.message))
		default:
			return model.Err(model.StatusPropertyNotImplemented, "no such property")
		}
	}
	if r, ok := d.core.baseGetProperty(id); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (d *DeviceManager) SetProperty(id model.ElementId, value interface{}) model.MethodResult {
	if id.Level == 3 {
		switch id.Index {
		case 5, 6, 7:
			str, isNil, ok := asNullableString(value)
			if !ok {
				return model.Err(model.StatusParameterError, "value must be a string or null")
			}
			d.mu.Lock()
			switch id.Index {
			case 5:
				d.userInventoryCode = pickPtr(str, isNil)
			case 6:
				d.deviceName = pickPtr(str, isNil)
			case 7:
				d.deviceRole = pickPtr(str, isNil)
			}
			d.mu.Unlock()
			d.core.emitChange(id, model.ChangeValueChanged, value)
			return model.Ok(nil)
		case 1, 2, 3, 4, 8, 9, 10:
			return model.Err(model.StatusReadonly, "device-manager property is read-only")
		default:
			return model.Err(model.StatusPropertyNotImplemented, "no such property")
		}
	}
	if r, ok := d.core.baseSetProperty(id, value); ok {
		return r
	}
	return model.Err(model.StatusPropertyNotImplemented, "no such property")
}

func (d *DeviceManager) InvokeMethod(id model.ElementId, args map[string]interface{}) model.MethodResult {
	if r, ok := invokeBaseMethod(d, id, args); ok {
		return r
	}
	return model.Err(model.StatusMethodNotImplemented, "no such method")
}

func (d *DeviceManager) SequenceLength(id model.ElementId) (int, model.Status) {
	if n, status, ok := d.core.baseSequenceLength(id); ok {
		return n, status
	}
	return 0, model.StatusPropertyNotImplemented
}

func (d *DeviceManager) SequenceItem(id model.ElementId, index int) (interface{}, model.Status) {
	if v, status, ok := d.core.baseSequenceItem(id, index); ok {
		return v, status
	}
	return nil, model.StatusPropertyNotImplemented
}

func derefOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func asNullableString(value interface{}) (string, bool, bool) {
	switch v := value.(type) {
	case nil:
		return "", true, true
	case string:
		return v, false, true
	default:
		return "", false, false
	}
}

func pickPtr(s string, isNil bool) *string {
	if isNil {
		return nil
	}
	v := s
	return &v
}
