package session

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"
	"github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/object"
)

type recordingTransport struct {
	mu   sync.Mutex
	sent [][]byte
}

func (t *recordingTransport) Send(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := append([]byte(nil), data...)
	t.sent = append(t.sent, cp)
	return nil
}

func (t *recordingTransport) messages() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]byte(nil), t.sent...)
}

func buildTestTree() (object.Member, object.Member) {
	var lastEvent model.PropertyChangedEvent
	emit := func(e model.PropertyChangedEvent) { lastEvent = e }
	_ = lastEvent

	rootCore := object.NewObjectCore(model.ClassId{1, 2}, 1, true, nil, "root", nil, nil, emit)
	root := object.NewBlock(rootCore, true)

	owner := model.Oid(1)
	workerCore := object.NewObjectCore(model.ClassId{1, 1}, 5, true, &owner, "worker", nil, nil, emit)
	worker := object.NewWorker(workerCore, true)
	root.AddMember(worker)

	return root, worker
}

func alwaysReady() bool { return true }

func TestSubscribeThenMutateEndToEnd(t *testing.T) {
	root, _ := buildTestTree()
	transport := &recordingTransport{}
	sess := New("s1", transport, root, alwaysReady, nil)

	sess.HandleMessage([]byte(`{"messageType":3,"subscriptions":[5]}`))

	cmd := `{"messageType":0,"commands":[{"handle":1,"oid":5,"methodId":{"level":1,"index":2},"arguments":{"id":{"level":1,"index":6},"value":"hi"}}]}`
	sess.HandleMessage([]byte(cmd))
	sess.Deliver(model.NewPropertyChangedEvent(5, model.NewElementId(1, 6), model.ChangeValueChanged, "hi", nil))

	msgs := transport.messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 outbound messages (sub response, command response, notification), got %d", len(msgs))
	}

	var resp responseEnvelope
	if err := json.Unmarshal(msgs[1], &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Responses) != 1 || resp.Responses[0].Result == nil || resp.Responses[0].Result.Status != model.StatusOk {
		t.Fatalf("expected ok result, got %+v", resp)
	}

	var note notificationEnvelope
	if err := json.Unmarshal(msgs[2], &note); err != nil {
		t.Fatalf("unmarshal notification: %v", err)
	}
	if len(note.Notifications) != 1 || note.Notifications[0].Oid != 5 {
		t.Fatalf("unexpected notification: %+v", note)
	}
}

func TestBadOid(t *testing.T) {
	root, _ := buildTestTree()
	transport := &recordingTransport{}
	sess := New("s1", transport, root, alwaysReady, nil)

	cmd := `{"messageType":0,"commands":[{"handle":1,"oid":999,"methodId":{"level":1,"index":1},"arguments":{"id":{"level":1,"index":5}}}]}`
	sess.HandleMessage([]byte(cmd))

	msgs := transport.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 response, got %d", len(msgs))
	}
	var resp responseEnvelope
	if err := json.Unmarshal(msgs[0], &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Responses[0].Error == nil || resp.Responses[0].Error.Status != model.StatusBadOid {
		t.Fatalf("expected BadOid error, got %+v", resp.Responses[0])
	}
}

func TestMalformedJSONKeepsSessionOpen(t *testing.T) {
	root, _ := buildTestTree()
	transport := &recordingTransport{}
	sess := New("s1", transport, root, alwaysReady, nil)

	sess.HandleMessage([]byte(`{`))
	cmd := `{"messageType":0,"commands":[{"handle":1,"oid":1,"methodId":{"level":1,"index":1},"arguments":{"id":{"level":1,"index":5}}}]}`
	sess.HandleMessage([]byte(cmd))

	msgs := transport.messages()
	if len(msgs) != 2 {
		t.Fatalf("expected error message then command response, got %d", len(msgs))
	}
	var errMsg errorEnvelope
	if err := json.Unmarshal(msgs[0], &errMsg); err != nil {
		t.Fatalf("unmarshal error message: %v", err)
	}
	if errMsg.MessageType != messageTypeError || errMsg.Status != model.StatusBadCommandFormat {
		t.Fatalf("unexpected error message: %+v", errMsg)
	}

	var resp responseEnvelope
	if err := json.Unmarshal(msgs[1], &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Responses[0].Result == nil || resp.Responses[0].Result.Status != model.StatusOk {
		t.Fatalf("expected subsequent valid command to succeed, got %+v", resp.Responses[0])
	}
}

func TestNotReady(t *testing.T) {
	root, _ := buildTestTree()
	transport := &recordingTransport{}
	sess := New("s1", transport, root, func() bool { return false }, nil)

	cmd := `{"messageType":0,"commands":[{"handle":1,"oid":1,"methodId":{"level":1,"index":1},"arguments":{"id":{"level":1,"index":5}}}]}`
	sess.HandleMessage([]byte(cmd))

	var resp responseEnvelope
	if err := json.Unmarshal(transport.messages()[0], &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Responses[0].Error == nil || resp.Responses[0].Error.Status != model.StatusNotReady {
		t.Fatalf("expected NotReady, got %+v", resp.Responses[0])
	}
}
