package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"flipstackk-api/types"
)

// FeedCapacity is the maximum number of entries the feed retains.
const FeedCapacity = 10

// FeedEntry is an envelope retained for display.
type FeedEntry struct {
	Envelope   types.Envelope
	ReceivedAt time.Time
}

// Feed maintains a bounded, most-recent-first list of received
// envelopes with an unread counter gated by display visibility.
// Entries are evicted only by capacity overflow; the feed lives in
// memory only and resets on process restart.
type Feed struct {
	mu      sync.Mutex
	entries []FeedEntry
	unread  int
	open    bool

	router *Router
	subs   []*Subscription
}

func NewFeed() *Feed {
	return &Feed{}
}

// Attach subscribes the feed to every server-emitted envelope type.
// The feed is an independent reader of the same stream as the bridge.
func (f *Feed) Attach(r *Router) {
	f.router = r
	for _, t := range types.ServerEventTypes {
		eventType := t
		f.subs = append(f.subs, r.Subscribe(eventType, func(data json.RawMessage) {
			f.Record(types.Envelope{Type: eventType, Data: data})
		}))
	}
}

// Detach removes every subscription made by Attach.
func (f *Feed) Detach() {
	if f.router == nil {
		return
	}
	for _, s := range f.subs {
		f.router.Unsubscribe(s)
	}
	f.subs = nil
	f.router = nil
}

// Record prepends an envelope, truncates to capacity, and increments
// the unread counter while the display is closed.
func (f *Feed) Record(env types.Envelope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append([]FeedEntry{{Envelope: env, ReceivedAt: time.Now()}}, f.entries...)
	if len(f.entries) > FeedCapacity {
		f.entries = f.entries[:FeedCapacity]
	}
	if !f.open {
		f.unread++
	}
}

// Open marks the display visible and resets the unread counter.
func (f *Feed) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.unread = 0
}

// Close marks the display hidden. Entries are not cleared.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
}

// Unread returns the current unread count.
func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// Entries returns a copy of the feed, newest first.
func (f *Feed) Entries() []FeedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FeedEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// FormatEntry renders a human string for a feed entry. Unknown types
// get a generic fallback; they should not occur given router filtering.
func FormatEntry(env types.Envelope) string {
	switch env.Type {
	case types.EventActivityCreated:
		var d activityData
		_ = json.Unmarshal(env.Data, &d)
		if d.Description != "" {
			return d.Description
		}
		return "A new activity was recorded"
	case types.EventLeadCreated:
		var d leadData
		_ = json.Unmarshal(env.Data, &d)
		if d.Name != "" {
			return "New lead: " + d.Name
		}
		return "A new lead was added"
	case types.EventLeadUpdated:
		return "A lead was updated"
	case types.EventCallCreated:
		var d callData
		_ = json.Unmarshal(env.Data, &d)
		if d.CallerName != "" {
			return d.CallerName + " logged a call"
		}
		return "A call was logged"
	case types.EventCallScheduled:
		var d callData
		_ = json.Unmarshal(env.Data, &d)
		if d.CallerName != "" {
			return d.CallerName + " scheduled a call"
		}
		return "A call was scheduled"
	case types.EventCallUpdated:
		return "A call was updated"
	default:
		return "New notification"
	}
}
