package realtime

import (
	"encoding/json"
	"testing"

	"flipstackk-api/types"

	"github.com/stretchr/testify/assert"
)

func TestRouterDispatchesToMatchingTypeOnly(t *testing.T) {
	r := NewRouter(nil)

	var leadCalls []string
	var callCalls int
	r.Subscribe(types.EventLeadCreated, func(data json.RawMessage) {
		leadCalls = append(leadCalls, string(data))
	})
	r.Subscribe(types.EventCallCreated, func(data json.RawMessage) {
		callCalls++
	})

	r.HandleFrame([]byte(`{"type":"lead_created","data":{"id":1,"name":"Jane Seller"}}`))

	assert.Len(t, leadCalls, 1)
	assert.JSONEq(t, `{"id":1,"name":"Jane Seller"}`, leadCalls[0])
	assert.Equal(t, 0, callCalls)
}

func TestRouterInvokesSubscribersInRegistrationOrder(t *testing.T) {
	r := NewRouter(nil)

	var order []int
	r.Subscribe(types.EventActivityCreated, func(json.RawMessage) { order = append(order, 1) })
	r.Subscribe(types.EventActivityCreated, func(json.RawMessage) { order = append(order, 2) })
	r.Subscribe(types.EventActivityCreated, func(json.RawMessage) { order = append(order, 3) })

	r.HandleFrame([]byte(`{"type":"activity_created","data":{}}`))

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestRouterDropsMalformedFrame(t *testing.T) {
	r := NewRouter(nil)

	invoked := 0
	r.Subscribe(types.EventLeadCreated, func(json.RawMessage) { invoked++ })

	assert.NotPanics(t, func() {
		r.HandleFrame([]byte(`{not json`))
	})
	assert.Equal(t, 0, invoked)
}

func TestRouterDropsFrameWithNoSubscriber(t *testing.T) {
	r := NewRouter(nil)
	assert.NotPanics(t, func() {
		r.HandleFrame([]byte(`{"type":"call_updated","data":{}}`))
		r.HandleFrame([]byte(`{"type":"something_unknown","data":{}}`))
	})
}

func TestRouterUnsubscribe(t *testing.T) {
	r := NewRouter(nil)

	invoked := 0
	sub := r.Subscribe(types.EventLeadUpdated, func(json.RawMessage) { invoked++ })

	r.HandleFrame([]byte(`{"type":"lead_updated","data":{}}`))
	assert.Equal(t, 1, invoked)

	r.Unsubscribe(sub)
	r.HandleFrame([]byte(`{"type":"lead_updated","data":{}}`))
	assert.Equal(t, 1, invoked)

	// Unsubscribing again is a no-op.
	assert.NotPanics(t, func() {
		r.Unsubscribe(sub)
		r.Unsubscribe(nil)
	})
}
