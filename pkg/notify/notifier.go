package notify

import (
	"encoding/json"
	"log/slog"

	"flipstackk-api/repository"
	"flipstackk-api/types"
	"flipstackk-api/websocket"
)

// Notifier defines the real-time notification surface handlers use.
// Delivery is fire-and-forget: failures are logged, never returned.
type Notifier interface {
	// Broadcast pushes an envelope to every connected client.
	Broadcast(eventType types.EventType, data interface{})
	// NotifyUser pushes an envelope to one user's clients and persists
	// it so it survives until read.
	NotifyUser(userID int, eventType types.EventType, data interface{})
}

// WSNotifier implements Notifier on top of the websocket Hub, with
// optional persistence through the notifications repository.
type WSNotifier struct {
	Hub  *websocket.Hub
	Repo *repository.NotificationsRepository
}

func (n *WSNotifier) Broadcast(eventType types.EventType, data interface{}) {
	if n == nil || n.Hub == nil {
		return
	}
	payload := marshalEnvelope(eventType, data)
	if payload == nil {
		return
	}
	n.Hub.Broadcast(payload)
}

func (n *WSNotifier) NotifyUser(userID int, eventType types.EventType, data interface{}) {
	if n == nil {
		return
	}
	payload := marshalEnvelope(eventType, data)
	if payload == nil {
		return
	}
	if n.Repo != nil {
		raw, err := json.Marshal(data)
		if err == nil {
			if err := n.Repo.Create(userID, string(eventType), raw); err != nil {
				slog.Error("failed to persist notification", "userId", userID, "err", err)
			}
		}
	}
	if n.Hub != nil {
		n.Hub.NotifyUser(userID, payload)
	}
}

func marshalEnvelope(eventType types.EventType, data interface{}) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal notification payload", "type", string(eventType), "err", err)
		return nil
	}
	payload, err := json.Marshal(types.Envelope{Type: eventType, Data: raw})
	if err != nil {
		slog.Error("failed to marshal notification envelope", "type", string(eventType), "err", err)
		return nil
	}
	return payload
}
