package object

import (
	"testing"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
)

func newTestDeviceManager(emit EventEmitter) *DeviceManager {
	owner := model.Oid(1)
	core := NewObjectCore(model.ClassId{1, 3, 1}, 2, true, &owner, "DeviceManager", nil, nil, emit)
	return NewDeviceManager(core, DeviceManagerConfig{
		NcVersion:    "v1.0.0",
		Manufacturer: model.Manufacturer{Name: "Acme"},
		Product:      model.Product{Name: "Widget", Key: "widget-1", RevisionLevel: "A"},
		SerialNumber: "SN123",
	})
}

func TestDeviceManagerWritableFieldRoundTrip(t *testing.T) {
	var events []model.PropertyChangedEvent
	dm := newTestDeviceManager(func(e model.PropertyChangedEvent) { events = append(events, e) })

	res := dm.SetProperty(model.NewElementId(3, 6), "studio-a")
	if res.Status != model.StatusOk {
		t.Fatalf("set deviceName: got %v", res.Status)
	}
	if got := dm.GetProperty(model.NewElementId(3, 6)); got.Value != "studio-a" {
		t.Fatalf("expected deviceName studio-a, got %v", got.Value)
	}
	if len(events) != 1 || events[0].Data.PropertyId != model.NewElementId(3, 6) {
		t.Fatalf("expected one ValueChanged event for (3,6), got %+v", events)
	}

	res = dm.SetProperty(model.NewElementId(3, 6), nil)
	if res.Status != model.StatusOk {
		t.Fatalf("clear deviceName: got %v", res.Status)
	}
	if got := dm.GetProperty(model.NewElementId(3, 6)); got.Value != nil {
		t.Fatalf("expected cleared deviceName, got %v", got.Value)
	}
}

func TestDeviceManagerWriteWrongShape(t *testing.T) {
	dm := newTestDeviceManager(nil)
	res := dm.SetProperty(model.NewElementId(3, 7), 42)
	if res.Status != model.StatusParameterError {
		t.Fatalf("expected ParameterError, got %v", res.Status)
	}
}

func TestDeviceManagerReadonlyFields(t *testing.T) {
	dm := newTestDeviceManager(nil)
	for _, idx := range []uint16{1, 2, 3, 4, 8, 9, 10} {
		res := dm.SetProperty(model.NewElementId(3, idx), "x")
		if res.Status != model.StatusReadonly {
			t.Fatalf("index %d: expected Readonly, got %v", idx, res.Status)
		}
	}
}

func TestDeviceManagerUnknownIndex(t *testing.T) {
	dm := newTestDeviceManager(nil)
	if res := dm.GetProperty(model.NewElementId(3, 11)); res.Status != model.StatusPropertyNotImplemented {
		t.Fatalf("get: expected PropertyNotImplemented, got %v", res.Status)
	}
	if res := dm.SetProperty(model.NewElementId(3, 11), "x"); res.Status != model.StatusPropertyNotImplemented {
		t.Fatalf("set: expected PropertyNotImplemented, got %v", res.Status)
	}
}

func TestDeviceManagerMarkReady(t *testing.T) {
	var events []model.PropertyChangedEvent
	dm := newTestDeviceManager(func(e model.PropertyChangedEvent) { events = append(events, e) })

	dm.MarkReady()

	got := dm.GetProperty(model.NewElementId(3, 8))
	state, ok := got.Value.(model.OperationalState)
	if !ok || state.GenericState != model.GenericStateNormal {
		t.Fatalf("expected Normal operational state, got %v", got.Value)
	}
	if len(events) != 1 || events[0].Data.PropertyId != model.NewElementId(3, 8) {
		t.Fatalf("expected one ValueChanged event for (3,8), got %+v", events)
	}
}
