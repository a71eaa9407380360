// Package wsserver binds the session dispatcher to a WebSocket transport:
// each connection gets its own Session with its own subscription set,
// registered with the event bus for per-oid fanout.
package wsserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/eventbus"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/object"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/session"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server upgrades incoming HTTP connections to the bidirectional control
// message channel.
type Server struct {
	root   object.Member
	ready  session.ReadyFunc
	bus    *eventbus.Bus
	logger *slog.Logger
	tel    *telemetry.Telemetry

	nextID int64
}

// New builds a Server dispatching commands against root and fanning events
// out via bus.
func New(root object.Member, ready session.ReadyFunc, bus *eventbus.Bus, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{root: root, ready: ready, bus: bus, logger: logger}
}

// SetTelemetry propagates command spans/counters to every session this
// server creates from here on.
func (s *Server) SetTelemetry(tel *telemetry.Telemetry) {
	s.tel = tel
}

// ServeHTTP upgrades the connection, runs it for its lifetime, and removes
// it from the bus on any exit path.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	id := s.newSessionID()
	transport := &connTransport{conn: conn}
	sess := session.New(id, transport, s.root, s.ready, s.logger)
	if s.tel != nil {
		sess.SetTelemetry(s.tel)
	}

	s.bus.Register(id, sess)
	defer s.bus.Unregister(id)
	defer conn.Close()

	s.logger.Info("session connected", slog.String("session", id))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("session disconnected", slog.String("session", id), slog.Any("error", err))
			return
		}
		sess.HandleMessage(data)
	}
}

func (s *Server) newSessionID() string {
	n := atomic.AddInt64(&s.nextID, 1)
	return "session-" + strconv.FormatInt(n, 10)
}

// connTransport serializes writes onto one *websocket.Conn: the read loop
// above and the event-bus fanout goroutine can both call Send concurrently,
// and gorilla/websocket forbids concurrent writers without external locking.
type connTransport struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (t *connTransport) Send(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.WriteMessage(websocket.TextMessage, data)
}
