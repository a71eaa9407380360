package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/object"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/telemetry"
)

// Transport is the minimal send capability a session needs; wsserver
// satisfies it with a gorilla/websocket text-frame write.
type Transport interface {
	Send(data []byte) error
}

// ReadyFunc reports whether the object tree has finished bootstrapping.
// Commands arriving before it returns true get NotReady.
type ReadyFunc func() bool

// Session is one connection's state: a transport handle and a subscription
// set, plus the root of the object tree it dispatches against.
type Session struct {
	ID        string
	transport Transport
	root      object.Member
	ready     ReadyFunc
	logger    *slog.Logger
	tel       *telemetry.Telemetry

	mu         sync.RWMutex
	subscribed map[model.Oid]bool
}

// New builds a session ready to have HandleMessage called as frames arrive.
func New(id string, transport Transport, root object.Member, ready ReadyFunc, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ID:         id,
		transport:  transport,
		root:       root,
		ready:      ready,
		logger:     logger,
		subscribed: make(map[model.Oid]bool),
	}
}

// SetTelemetry attaches command spans and counters; nil (the default) means
// dispatch runs unobserved.
func (s *Session) SetTelemetry(tel *telemetry.Telemetry) {
	s.tel = tel
}

// IsSubscribed satisfies eventbus.Sink.
func (s *Session) IsSubscribed(oid model.Oid) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscribed[oid]
}

// Deliver satisfies eventbus.Sink: send failures are swallowed; the
// transport close (detected by the session's own read loop) is what
// actually reaps the session.
func (s *Session) Deliver(event model.PropertyChangedEvent) {
	msg := notificationEnvelope{MessageType: messageTypeNotification, Notifications: []model.PropertyChangedEvent{event}}
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warn("failed to marshal notification", slog.String("session", s.ID), slog.Any("error", err))
		return
	}
	if err := s.transport.Send(data); err != nil {
		s.logger.Debug("notification delivery failed, session will be reaped on transport close", slog.String("session", s.ID), slog.Any("error", err))
	}
}

// HandleMessage decodes one inbound text frame and dispatches it. Malformed
// JSON or an unrecognized messageType produces an Error(5) reply; the
// session is never closed by this method.
func (s *Session) HandleMessage(raw []byte) {
	var envelope inboundEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		s.sendError(model.StatusBadCommandFormat, fmt.Sprintf("malformed JSON: %v", err))
		return
	}
	switch envelope.MessageType {
	case messageTypeCommand:
		s.handleCommands(envelope.Commands)
	case messageTypeSubscription:
		s.handleSubscription(envelope.Subscriptions)
	default:
		s.sendError(model.StatusBadCommandFormat, fmt.Sprintf("unrecognized messageType %d", envelope.MessageType))
	}
}

func (s *Session) handleCommands(commands []commandRequest) {
	responses := make([]commandResponse, 0, len(commands))
	for _, cmd := range commands {
		responses = append(responses, s.executeCommand(cmd))
	}
	s.send(responseEnvelope{MessageType: messageTypeResponse, Responses: responses})
}

func (s *Session) executeCommand(cmd commandRequest) (resp commandResponse) {
	resp.Handle = cmd.Handle
	if s.tel != nil {
		done := s.tel.ObserveCommand(uint32(cmd.Oid), cmd.MethodId.Level, cmd.MethodId.Index)
		defer done()
	}
	defer func() {
		if r := recover(); r != nil {
			resp.Result = nil
			resp.Error = &errorPayload{Status: model.StatusDeviceError, ErrorMessage: fmt.Sprintf("panic: %v", r)}
		}
	}()

	if s.ready != nil && !s.ready() {
		resp.Error = &errorPayload{Status: model.StatusNotReady, ErrorMessage: "object tree is not ready"}
		return resp
	}

	target, ok := object.Locate(s.root, cmd.Oid)
	if !ok {
		resp.Error = &errorPayload{Status: model.StatusBadOid, ErrorMessage: fmt.Sprintf("no object with oid %d", cmd.Oid)}
		return resp
	}

	var result model.MethodResult
	switch {
	case cmd.MethodId == model.NewElementId(1, 1):
		propId, ok := object.ArgElementId(cmd.Arguments, "id")
		if !ok {
			result = model.Err(model.StatusBadCommandFormat, "missing or malformed id argument")
		} else {
			result = target.GetProperty(propId)
		}
	case cmd.MethodId == model.NewElementId(1, 2):
		propId, ok := object.ArgElementId(cmd.Arguments, "id")
		if !ok {
			result = model.Err(model.StatusBadCommandFormat, "missing or malformed id argument")
		} else {
			result = target.SetProperty(propId, cmd.Arguments["value"])
		}
	default:
		result = target.InvokeMethod(cmd.MethodId, cmd.Arguments)
	}

	if result.IsError() {
		resp.Error = &errorPayload{Status: result.Status, ErrorMessage: result.ErrorText}
	} else {
		resp.Result = &resultPayload{Status: result.Status, Value: result.Value}
	}
	return resp
}

func (s *Session) handleSubscription(oids []model.Oid) {
	normalized := dedupe(oids)
	s.mu.Lock()
	s.subscribed = make(map[model.Oid]bool, len(normalized))
	for _, oid := range normalized {
		s.subscribed[oid] = true
	}
	s.mu.Unlock()
	s.send(subscriptionResponseEnvelope{MessageType: messageTypeSubscriptionResponse, Subscriptions: normalized})
}

func dedupe(oids []model.Oid) []model.Oid {
	seen := make(map[model.Oid]bool, len(oids))
	out := make([]model.Oid, 0, len(oids))
	for _, oid := range oids {
		if !seen[oid] {
			seen[oid] = true
			out = append(out, oid)
		}
	}
	return out
}

func (s *Session) sendError(status model.Status, message string) {
	s.send(errorEnvelope{MessageType: messageTypeError, Status: status, ErrorMessage: message})
}

func (s *Session) send(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal outbound message", slog.String("session", s.ID), slog.Any("error", err))
		return
	}
	if err := s.transport.Send(data); err != nil {
		s.logger.Debug("send failed", slog.String("session", s.ID), slog.Any("error", err))
	}
}
