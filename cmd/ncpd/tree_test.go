package main

import (
	"strings"
	"testing"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/config"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/object"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/registry"
)

func testConfig() config.Config {
	return config.Config{
		Listen:    ":8080",
		Discovery: ":8081",
		Device: config.Device{
			NcVersion:        "v1.0.0",
			ManufacturerName: "Acme",
			ProductName:      "Widget",
			ProductKey:       "widget-1",
			ProductRevision:  "A",
			SerialNumber:     "SN123",
			DeviceName:       "widget-01",
		},
	}
}

func TestBuildTreeShape(t *testing.T) {
	dev := buildTree(testConfig(), registry.BuildDefault(), nil)

	for _, oid := range []model.Oid{rootOid, deviceManagerOid, classManagerOid} {
		if _, ok := object.Locate(dev.root, oid); !ok {
			t.Fatalf("expected oid %d to be reachable from root", oid)
		}
	}

	dm, ok := object.ResolveRolePath(dev.root, []string{"DeviceManager"})
	if !ok || dm.Core().Oid() != deviceManagerOid {
		t.Fatalf("expected DeviceManager at its fixed role path")
	}
	cm, ok := object.ResolveRolePath(dev.root, []string{"ClassManager"})
	if !ok || cm.Core().Oid() != classManagerOid {
		t.Fatalf("expected ClassManager at its fixed role path")
	}

	if dev.nodeID == "" || dev.deviceID == "" {
		t.Fatalf("expected node and device ids to be minted when config leaves them blank")
	}

	if got := dm.GetProperty(model.NewElementId(3, 6)); got.Value != "widget-01" {
		t.Fatalf("expected deviceName seeded from config, got %v", got.Value)
	}
}

func TestBuildDocumentsControlEntry(t *testing.T) {
	cfg := testConfig()
	dev := buildTree(cfg, registry.BuildDefault(), nil)
	node, devices := buildDocuments(cfg, dev)

	if node.Id != dev.nodeID {
		t.Fatalf("expected node document id %s, got %s", dev.nodeID, node.Id)
	}
	if len(devices) != 1 || devices[0].NodeId != dev.nodeID {
		t.Fatalf("expected one device document referencing the node, got %+v", devices)
	}
	controls := devices[0].Controls
	if len(controls) != 1 || controls[0].Type != "urn:x-nmos:control:ncp/v1.0" {
		t.Fatalf("expected one ncp/v1.0 control entry, got %+v", controls)
	}
	if !strings.Contains(controls[0].Href, controlPath) {
		t.Fatalf("expected control href to reference %s, got %s", controlPath, controls[0].Href)
	}
	if !strings.Contains(node.Version, ":") {
		t.Fatalf("expected TAI-form version, got %s", node.Version)
	}
}
