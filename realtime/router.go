package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"flipstackk-api/types"
)

// Handler receives the data portion of an envelope.
type Handler func(data json.RawMessage)

// Subscription identifies one registered handler. It is the token
// passed back to Unsubscribe.
type Subscription struct {
	eventType types.EventType
	fn        Handler
}

// Router decodes inbound frames and fans them out by envelope type.
// Any number of independent consumers may subscribe without
// coordinating with each other.
type Router struct {
	mu     sync.RWMutex
	subs   map[types.EventType][]*Subscription
	logger *slog.Logger
}

func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{subs: make(map[types.EventType][]*Subscription), logger: logger}
}

// Subscribe registers fn for envelopes of the given type. Handlers are
// invoked synchronously, in registration order.
func (r *Router) Subscribe(eventType types.EventType, fn Handler) *Subscription {
	s := &Subscription{eventType: eventType, fn: fn}
	r.mu.Lock()
	r.subs[eventType] = append(r.subs[eventType], s)
	r.mu.Unlock()
	return s
}

// Unsubscribe removes a previously registered subscription.
// Unsubscribing one that is absent is a no-op.
func (r *Router) Unsubscribe(s *Subscription) {
	if s == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.subs[s.eventType]
	for i, cur := range list {
		if cur == s {
			r.subs[s.eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// HandleFrame parses one raw text frame and dispatches it. Malformed
// JSON is logged and dropped; it never propagates to the caller. A
// frame whose type has no subscriber is silently dropped.
func (r *Router) HandleFrame(raw []byte) {
	var env types.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		r.logger.Warn("dropping malformed websocket frame", "err", err)
		return
	}

	r.mu.RLock()
	list := r.subs[env.Type]
	snapshot := make([]*Subscription, len(list))
	copy(snapshot, list)
	r.mu.RUnlock()

	for _, s := range snapshot {
		s.fn(env.Data)
	}
}
