package discovery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeviceLookup(t *testing.T) {
	node := NodeDocument{Id: "node-1", Label: "test node"}
	devices := []DeviceDocument{{Id: "device-1", Label: "test device", NodeId: "node-1", Controls: []ControlEntry{NewNcpControlEntry("ws://localhost:8080/x-nmos-control/v1.0/")}}}
	srv := NewServer(node, devices)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/x-nmos/node/v1.3/devices/device-1")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got DeviceDocument
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Id != "device-1" || len(got.Controls) != 1 {
		t.Fatalf("unexpected device document: %+v", got)
	}
}

func TestDeviceNotFound(t *testing.T) {
	srv := NewServer(NodeDocument{}, nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/x-nmos/node/v1.3/devices/missing")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestEmptyStubs(t *testing.T) {
	srv := NewServer(NodeDocument{}, nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	for _, path := range []string{"sources", "flows", "senders", "receivers"} {
		resp, err := http.Get(ts.URL + "/x-nmos/node/v1.3/" + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		var got []struct{}
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty list for %s", path)
		}
		resp.Body.Close()
	}
}
