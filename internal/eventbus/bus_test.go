package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
)

type testSink struct {
	mu         sync.Mutex
	subscribed map[model.Oid]bool
	received   []model.PropertyChangedEvent
}

func newTestSink(oids ...model.Oid) *testSink {
	s := &testSink{subscribed: make(map[model.Oid]bool)}
	for _, o := range oids {
		s.subscribed[o] = true
	}
	return s
}

func (s *testSink) IsSubscribed(oid model.Oid) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribed[oid]
}

func (s *testSink) Deliver(event model.PropertyChangedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, event)
}

func (s *testSink) Received() []model.PropertyChangedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PropertyChangedEvent, len(s.received))
	copy(out, s.received)
	return out
}

func TestBusDeliversOnlyToSubscribedSessions(t *testing.T) {
	bus := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() { bus.Run(ctx); close(done) }()

	subscribed := newTestSink(5)
	unsubscribed := newTestSink(6)
	bus.Register("a", subscribed)
	bus.Register("b", unsubscribed)

	bus.Enqueue(model.NewPropertyChangedEvent(5, model.NewElementId(1, 6), model.ChangeValueChanged, "hi", nil))

	deadline := time.After(time.Second)
	for len(subscribed.Received()) == 0 {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for delivery")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if len(unsubscribed.Received()) != 0 {
		t.Fatalf("expected no delivery to unsubscribed sink")
	}

	bus.Stop()
	<-done
}
