// Package session implements the per-connection dispatcher: it parses
// inbound command and subscription messages, routes commands through the
// object tree, and serializes responses, notifications, and errors. It is
// transport-agnostic: the caller hands it whole decoded text frames,
// whether read from a WebSocket or a raw stream.
package session

import "github.com/cristian-recoseanu/nmos-control-serpenty-device/internal/model"

type inboundEnvelope struct {
	MessageType   int              `json:"messageType"`
	Commands      []commandRequest `json:"commands,omitempty"`
	Subscriptions []model.Oid      `json:"subscriptions,omitempty"`
}

type commandRequest struct {
	Handle    int                    `json:"handle"`
	Oid       model.Oid              `json:"oid"`
	MethodId  model.ElementId        `json:"methodId"`
	Arguments map[string]interface{} `json:"arguments"`
}

type resultPayload struct {
	Status model.Status `json:"status"`
	Value  interface{}  `json:"value,omitempty"`
}

type errorPayload struct {
	Status       model.Status `json:"status"`
	ErrorMessage string       `json:"errorMessage"`
}

type commandResponse struct {
	Handle int            `json:"handle"`
	Result *resultPayload `json:"result,omitempty"`
	Error  *errorPayload  `json:"error,omitempty"`
}

type responseEnvelope struct {
	MessageType int               `json:"messageType"`
	Responses   []commandResponse `json:"responses"`
}

type subscriptionResponseEnvelope struct {
	MessageType   int         `json:"messageType"`
	Subscriptions []model.Oid `json:"subscriptions"`
}

type notificationEnvelope struct {
	MessageType   int                          `json:"messageType"`
	Notifications []model.PropertyChangedEvent `json:"notifications"`
}

type errorEnvelope struct {
	MessageType  int          `json:"messageType"`
	Status       model.Status `json:"status"`
	ErrorMessage string       `json:"errorMessage"`
}

const (
	messageTypeCommand              = 0
	messageTypeResponse             = 1
	messageTypeNotification         = 2
	messageTypeSubscription         = 3
	messageTypeSubscriptionResponse = 4
	messageTypeError                = 5
)
