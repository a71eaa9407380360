package object

import (
	"testing"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
)

func newTestWorker(oid model.Oid, owner model.Oid, role string, emit EventEmitter) *Worker {
	o := owner
	core := NewObjectCore(model.ClassId{1, 1}, oid, true, &o, role, nil, nil, emit)
	return NewWorker(core, true)
}

func TestUserLabelRoundTrip(t *testing.T) {
	core := NewObjectCore(model.ClassId{1}, 1, true, nil, "root", nil, nil, nil)
	obj := NewObject(core)

	res := obj.SetProperty(model.NewElementId(1, 6), "hi")
	if res.Status != model.StatusOk {
		t.Fatalf("set userLabel: got status %v", res.Status)
	}
	got := obj.GetProperty(model.NewElementId(1, 6))
	if got.Value != "hi" {
		t.Fatalf("expected userLabel 'hi', got %v", got.Value)
	}
}

func TestSetLevel1ReadonlyProperty(t *testing.T) {
	core := NewObjectCore(model.ClassId{1}, 1, true, nil, "root", nil, nil, nil)
	obj := NewObject(core)
	res := obj.SetProperty(model.NewElementId(1, 5), "nope")
	if res.Status != model.StatusReadonly {
		t.Fatalf("expected Readonly, got %v", res.Status)
	}
}

func TestBlockAddMemberEmitsEvent(t *testing.T) {
	var events []model.PropertyChangedEvent
	emit := func(e model.PropertyChangedEvent) { events = append(events, e) }

	rootCore := NewObjectCore(model.ClassId{1, 2}, 1, true, nil, "root", nil, nil, emit)
	root := NewBlock(rootCore, true)

	worker := newTestWorker(5, 1, "leaf", emit)
	root.AddMember(worker)

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Oid != 1 || events[0].EventId != model.NewElementId(1, 1) {
		t.Fatalf("unexpected event envelope: %+v", events[0])
	}
	if events[0].Data.PropertyId != model.NewElementId(2, 2) {
		t.Fatalf("expected members property id, got %+v", events[0].Data.PropertyId)
	}

	length, status := root.SequenceLength(model.NewElementId(2, 2))
	if status != model.StatusOk || length != 1 {
		t.Fatalf("expected sequence length 1, got %d status %v", length, status)
	}
	item, status := root.SequenceItem(model.NewElementId(2, 2), 0)
	if status != model.StatusOk {
		t.Fatalf("expected ok, got %v", status)
	}
	desc, ok := item.(model.BlockMemberDescriptor)
	if !ok || desc.Oid != 5 {
		t.Fatalf("unexpected descriptor: %+v", item)
	}
	if _, status := root.SequenceItem(model.NewElementId(2, 2), 1); status != model.StatusIndexOutOfBounds {
		t.Fatalf("expected IndexOutOfBounds, got %v", status)
	}
}

func TestLocateBadOid(t *testing.T) {
	rootCore := NewObjectCore(model.ClassId{1, 2}, 1, true, nil, "root", nil, nil, nil)
	root := NewBlock(rootCore, true)

	if _, ok := Locate(root, 999); ok {
		t.Fatalf("expected no member for oid 999")
	}
}

func TestFindMembersByRoleRecursive(t *testing.T) {
	rootCore := NewObjectCore(model.ClassId{1, 2}, 1, true, nil, "root", nil, nil, nil)
	root := NewBlock(rootCore, true)

	outerOwner := model.Oid(1)
	outerCore := NewObjectCore(model.ClassId{1, 2}, 2, true, &outerOwner, "outer", nil, nil, nil)
	outer := NewBlock(outerCore, false)
	root.AddMember(outer)

	innerOwner := model.Oid(2)
	innerCore := NewObjectCore(model.ClassId{1, 2}, 3, true, &innerOwner, "inner", nil, nil, nil)
	inner := NewBlock(innerCore, false)
	outer.AddMember(inner)

	leafOwner := model.Oid(3)
	leafCore := NewObjectCore(model.ClassId{1, 1}, 4, true, &leafOwner, "leaf", nil, nil, nil)
	leaf := NewWorker(leafCore, false)
	inner.AddMember(leaf)

	found := root.FindMembersByRole("LEAF", false, true, true)
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	if found[0].Core().Role() != "leaf" {
		t.Fatalf("expected role leaf, got %s", found[0].Core().Role())
	}
}

func TestFindMembersByPathEmpty(t *testing.T) {
	rootCore := NewObjectCore(model.ClassId{1, 2}, 1, true, nil, "root", nil, nil, nil)
	root := NewBlock(rootCore, true)
	if got := root.FindMembersByPath(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestWorkerEnabledParameterError(t *testing.T) {
	w := newTestWorker(5, 1, "w", nil)
	res := w.SetProperty(model.NewElementId(2, 1), "not-a-bool")
	if res.Status != model.StatusParameterError {
		t.Fatalf("expected ParameterError, got %v", res.Status)
	}
}
