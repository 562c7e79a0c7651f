package types

import "encoding/json"

// EventType is the closed set of envelope types exchanged over the
// websocket channel. Unknown types are ignored by consumers, never an error.
type EventType string

const (
	EventAuth            EventType = "auth"
	EventActivityCreated EventType = "activity_created"
	EventLeadCreated     EventType = "lead_created"
	EventLeadUpdated     EventType = "lead_updated"
	EventCallCreated     EventType = "call_created"
	EventCallScheduled   EventType = "call_scheduled"
	EventCallUpdated     EventType = "call_updated"
)

// ServerEventTypes lists every type the server emits to clients,
// i.e. everything except the client-side auth handshake.
var ServerEventTypes = []EventType{
	EventActivityCreated,
	EventLeadCreated,
	EventLeadUpdated,
	EventCallCreated,
	EventCallScheduled,
	EventCallUpdated,
}

// Envelope is the unit of exchange over the socket: one text frame,
// one JSON object {type, data}. The payload shape is owned by the emitter.
type Envelope struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// AuthData is the payload of the auth envelope a client sends right
// after the connection opens.
type AuthData struct {
	UserID int `json:"userId"`
}
