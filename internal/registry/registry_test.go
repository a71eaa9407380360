package registry

import (
	"testing"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
)

func TestGetControlClassIncludeInherited(t *testing.T) {
	r := BuildDefault()

	deviceManager, ok := r.GetControlClass(model.ClassId{1, 3, 1}, true)
	if !ok {
		t.Fatalf("expected device manager class to be found")
	}
	if len(deviceManager.Properties) != 10+8 {
		t.Fatalf("expected 18 properties (10 own + 8 inherited), got %d", len(deviceManager.Properties))
	}
	for i := 0; i < 10; i++ {
		if deviceManager.Properties[i].Id.Level != 3 {
			t.Fatalf("expected own properties first (derived-first), index %d has level %d", i, deviceManager.Properties[i].Id.Level)
		}
	}
	for i := 10; i < 18; i++ {
		if deviceManager.Properties[i].Id.Level != 1 {
			t.Fatalf("expected inherited NcObject properties after own, index %d has level %d", i, deviceManager.Properties[i].Id.Level)
		}
	}
}

func TestGetControlClassNonInherited(t *testing.T) {
	r := BuildDefault()
	deviceManager, ok := r.GetControlClass(model.ClassId{1, 3, 1}, false)
	if !ok {
		t.Fatalf("expected device manager class to be found")
	}
	if len(deviceManager.Properties) != 10 {
		t.Fatalf("expected 10 own properties, got %d", len(deviceManager.Properties))
	}
}

func TestGetControlClassMissing(t *testing.T) {
	r := BuildDefault()
	if _, ok := r.GetControlClass(model.ClassId{9, 9}, false); ok {
		t.Fatalf("expected missing class id to not be found")
	}
}

func TestGetDatatypeStructInheritance(t *testing.T) {
	r := New()
	r.AddDatatype(model.DatatypeDescriptor{
		Name: "Base", Kind: model.DatatypeStruct,
		Fields: []model.FieldDescriptor{{Name: "a", TypeName: "NcString"}},
	})
	r.AddDatatype(model.DatatypeDescriptor{
		Name: "Derived", Kind: model.DatatypeStruct, ParentType: "Base",
		Fields: []model.FieldDescriptor{{Name: "b", TypeName: "NcString"}},
	})

	d, ok := r.GetDatatype("Derived", true)
	if !ok {
		t.Fatalf("expected Derived to be found")
	}
	if len(d.Fields) != 2 || d.Fields[0].Name != "b" || d.Fields[1].Name != "a" {
		t.Fatalf("expected derived-first field order [b, a], got %+v", d.Fields)
	}
}

func TestControlClassesIncludesRequiredSet(t *testing.T) {
	r := BuildDefault()
	required := []model.ClassId{{1}, {1, 1}, {1, 2}, {1, 3}, {1, 3, 1}, {1, 3, 2}}
	for _, id := range required {
		if _, ok := r.GetControlClass(id, false); !ok {
			t.Fatalf("expected required class %v to be registered", id)
		}
	}
}
