// Package eventbus implements the property-changed fanout queue: events are
// enqueued non-blockingly by any number of producers (object-tree mutation
// handlers) and delivered, one at a time, to a snapshot of the sessions
// subscribed to the originating oid.
package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/telemetry"
)

// Sink is how the bus reaches a session: IsSubscribed gates delivery,
// Deliver sends the event and swallows its own transport failures (the
// session will be reaped when its transport closes).
type Sink interface {
	IsSubscribed(oid model.Oid) bool
	Deliver(event model.PropertyChangedEvent)
}

// Bus is the FIFO event queue plus the registry of sinks eligible for
// fanout.
type Bus struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []model.PropertyChangedEvent
	closed bool

	sinksMu sync.RWMutex
	sinks   map[string]Sink

	jsMu sync.RWMutex
	js   nats.JetStreamContext

	logger *slog.Logger
	tel    *telemetry.Telemetry
}

// New builds an empty bus. logger may be nil, in which case slog.Default()
// is used.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bus{sinks: make(map[string]Sink), logger: logger}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// SetJetStream enables optional republication of every fanned-out event to
// a JetStream subject for external consumers. Local session delivery never
// depends on it.
func (b *Bus) SetJetStream(js nats.JetStreamContext) {
	b.jsMu.Lock()
	defer b.jsMu.Unlock()
	b.js = js
}

// SetTelemetry attaches the fanout counter; nil (the default) means fanout
// runs unobserved.
func (b *Bus) SetTelemetry(tel *telemetry.Telemetry) {
	b.tel = tel
}

// JetStreamEnabled reports whether a JetStream context has been attached.
func (b *Bus) JetStreamEnabled() bool {
	b.jsMu.RLock()
	defer b.jsMu.RUnlock()
	return b.js != nil
}

// Register adds sink under id, making it eligible for fanout starting with
// the next dequeued event.
func (b *Bus) Register(id string, sink Sink) {
	b.sinksMu.Lock()
	defer b.sinksMu.Unlock()
	b.sinks[id] = sink
}

// Unregister removes sink id; in-flight fanout snapshots already taken are
// unaffected.
func (b *Bus) Unregister(id string) {
	b.sinksMu.Lock()
	defer b.sinksMu.Unlock()
	delete(b.sinks, id)
}

// Enqueue appends event to the queue and wakes the fanout task. It never
// blocks the caller.
func (b *Bus) Enqueue(event model.PropertyChangedEvent) {
	b.mu.Lock()
	b.queue = append(b.queue, event)
	b.mu.Unlock()
	b.cond.Signal()
}

// Run dequeues events serially and fans each out to a session snapshot
// until ctx is cancelled or Stop is called.
func (b *Bus) Run(ctx context.Context) {
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			b.Stop()
		case <-stop:
		}
	}()
	defer close(stop)

	for {
		b.mu.Lock()
		for len(b.queue) == 0 && !b.closed {
			b.cond.Wait()
		}
		if b.closed && len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}
		event := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()

		b.fanout(event)
	}
}

// Stop is the sentinel: it wakes the fanout task and lets it drain the
// remaining queue before returning from Run.
func (b *Bus) Stop() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.cond.Broadcast()
}

func (b *Bus) fanout(event model.PropertyChangedEvent) {
	b.sinksMu.RLock()
	snapshot := make([]Sink, 0, len(b.sinks))
	for _, s := range b.sinks {
		snapshot = append(snapshot, s)
	}
	b.sinksMu.RUnlock()

	delivered := 0
	for _, sink := range snapshot {
		if sink.IsSubscribed(event.Oid) {
			sink.Deliver(event)
			delivered++
		}
	}
	b.logger.Debug("fanned out property-changed event", slog.Uint64("oid", uint64(event.Oid)), slog.Int("delivered", delivered))
	if b.tel != nil {
		b.tel.RecordEventFanout(context.Background(), int64(delivered))
	}

	b.jsMu.RLock()
	js := b.js
	b.jsMu.RUnlock()
	if js != nil {
		b.publishToJetStream(js, event)
	}
}

func (b *Bus) publishToJetStream(js nats.JetStreamContext, event model.PropertyChangedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Warn("failed to marshal event for jetstream republish", slog.Any("error", err))
		return
	}
	subject := "ncp.events.property-changed"
	if _, err := js.Publish(subject, data); err != nil {
		b.logger.Warn("jetstream publish failed", slog.String("subject", subject), slog.Any("error", err))
	}
}
