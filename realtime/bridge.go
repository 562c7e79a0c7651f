package realtime

import (
	"encoding/json"
	"fmt"

	"flipstackk-api/types"
)

// Collection keys for the client-side query cache.
const (
	CollectionLeads          = "leads"
	CollectionActivities     = "activities"
	CollectionCallHistory    = "call-history"
	CollectionScheduledCalls = "scheduled-calls"
)

// LeadKey returns the cache key of a single lead entry.
func LeadKey(id int) string { return fmt.Sprintf("lead:%d", id) }

// Invalidator marks a cached collection stale so the next read
// refetches it. It never alters currently cached contents.
type Invalidator interface {
	Invalidate(key string)
}

// Toaster raises a fire-and-forget user-facing notification.
type Toaster interface {
	Toast(title, description string)
}

// Bridge keeps client-cached collections consistent with server-side
// mutations signaled over the socket. For every handled envelope it
// marks the affected collections stale and raises exactly one toast.
// It does not fetch or merge data itself (push-to-invalidate,
// pull-to-refresh).
type Bridge struct {
	cache  Invalidator
	toasts Toaster

	router *Router
	subs   []*Subscription
}

func NewBridge(cache Invalidator, toasts Toaster) *Bridge {
	return &Bridge{cache: cache, toasts: toasts}
}

// Attach subscribes the bridge to every server-emitted envelope type.
func (b *Bridge) Attach(r *Router) {
	b.router = r
	b.subs = []*Subscription{
		r.Subscribe(types.EventActivityCreated, b.onActivityCreated),
		r.Subscribe(types.EventLeadCreated, b.onLeadCreated),
		r.Subscribe(types.EventLeadUpdated, b.onLeadUpdated),
		r.Subscribe(types.EventCallCreated, b.onCallCreated),
		r.Subscribe(types.EventCallScheduled, b.onCallScheduled),
		r.Subscribe(types.EventCallUpdated, b.onCallUpdated),
	}
}

// Detach removes every subscription made by Attach.
func (b *Bridge) Detach() {
	if b.router == nil {
		return
	}
	for _, s := range b.subs {
		b.router.Unsubscribe(s)
	}
	b.subs = nil
	b.router = nil
}

type leadData struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type activityData struct {
	Description string `json:"description"`
}

type callData struct {
	CallerName string `json:"callerName"`
	LeadName   string `json:"leadName"`
}

func (b *Bridge) onActivityCreated(data json.RawMessage) {
	b.cache.Invalidate(CollectionActivities)
	var d activityData
	_ = json.Unmarshal(data, &d)
	desc := d.Description
	if desc == "" {
		desc = "A new activity was recorded"
	}
	b.toasts.Toast("New Activity", desc)
}

func (b *Bridge) onLeadCreated(data json.RawMessage) {
	b.cache.Invalidate(CollectionLeads)
	var d leadData
	_ = json.Unmarshal(data, &d)
	desc := "A new lead was added"
	if d.Name != "" {
		desc = d.Name + " was added"
	}
	b.toasts.Toast("New Lead", desc)
}

func (b *Bridge) onLeadUpdated(data json.RawMessage) {
	b.cache.Invalidate(CollectionLeads)
	var d leadData
	_ = json.Unmarshal(data, &d)
	if d.ID != 0 {
		b.cache.Invalidate(LeadKey(d.ID))
	}
	b.toasts.Toast("Lead Updated", "A lead was updated")
}

func (b *Bridge) onCallCreated(data json.RawMessage) {
	b.cache.Invalidate(CollectionCallHistory)
	var d callData
	_ = json.Unmarshal(data, &d)
	caller := d.CallerName
	if caller == "" {
		caller = "A team member"
	}
	b.toasts.Toast("Call Logged", fmt.Sprintf("%s logged a call", caller))
}

func (b *Bridge) onCallScheduled(data json.RawMessage) {
	b.cache.Invalidate(CollectionScheduledCalls)
	var d callData
	_ = json.Unmarshal(data, &d)
	caller := d.CallerName
	if caller == "" {
		caller = "A team member"
	}
	desc := fmt.Sprintf("%s scheduled a call", caller)
	if d.LeadName != "" {
		desc = fmt.Sprintf("%s scheduled a call with %s", caller, d.LeadName)
	}
	b.toasts.Toast("Call Scheduled", desc)
}

// onCallUpdated invalidates both call lists: an update can move a call
// between the scheduled and history views.
func (b *Bridge) onCallUpdated(data json.RawMessage) {
	b.cache.Invalidate(CollectionScheduledCalls)
	b.cache.Invalidate(CollectionCallHistory)
	b.toasts.Toast("Call Updated", "A call was updated")
}
