package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderReadsDeviceIdentity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "device.yaml")
	contents := `
listen: ":9000"
discovery: ":9001"
device:
  ncVersion: "1.0"
  manufacturerName: "Acme"
  productName: "Widget"
  productKey: "widget-1"
  productRevision: "A"
  serialNumber: "SN123"
  deviceName: "widget-01"
  nodeId: "11111111-1111-1111-1111-111111111111"
  deviceId: "22222222-2222-2222-2222-222222222222"
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loader, err := NewLoader(path, nil)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg, err := loader.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if cfg.Listen != ":9000" || cfg.Device.ManufacturerName != "Acme" || cfg.Device.SerialNumber != "SN123" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoaderDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "device.yaml")
	if err := os.WriteFile(path, []byte("device:\n  productName: Widget\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loader, err := NewLoader(path, nil)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg, err := loader.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if cfg.Listen != ":8080" || cfg.Discovery != ":8081" {
		t.Fatalf("expected defaults to apply, got %+v", cfg)
	}
}
