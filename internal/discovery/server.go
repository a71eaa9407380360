package discovery

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server serves the static node/device documents built at bootstrap. No
// endpoint does any work beyond a map lookup; the documents are immutable
// for process lifetime.
type Server struct {
	node       NodeDocument
	devices    []DeviceDocument
	deviceByID map[string]DeviceDocument
}

// NewServer indexes devices by id for O(1) devices/{id} lookups.
func NewServer(node NodeDocument, devices []DeviceDocument) *Server {
	byID := make(map[string]DeviceDocument, len(devices))
	for _, d := range devices {
		byID[d.Id] = d
	}
	return &Server{node: node, devices: devices, deviceByID: byID}
}

// Router builds the /x-nmos/node/v1.3/ route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Route("/x-nmos/node/v1.3", func(r chi.Router) {
		r.Get("/self", s.handleSelf)
		r.Get("/devices", s.handleDevices)
		r.Get("/devices/{id}", s.handleDevice)
		r.Get("/sources", emptyList)
		r.Get("/flows", emptyList)
		r.Get("/senders", emptyList)
		r.Get("/receivers", emptyList)
	})
	return r
}

func (s *Server) handleSelf(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.node)
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.devices)
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	device, ok := s.deviceByID[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, device)
}

func emptyList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, []struct{}{})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
