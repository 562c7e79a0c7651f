package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCache struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeCache) Invalidate(key string) {
	f.mu.Lock()
	f.keys = append(f.keys, key)
	f.mu.Unlock()
}

func (f *fakeCache) invalidated() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

type toast struct {
	Title, Description string
}

type fakeToaster struct {
	mu     sync.Mutex
	toasts []toast
}

func (f *fakeToaster) Toast(title, description string) {
	f.mu.Lock()
	f.toasts = append(f.toasts, toast{title, description})
	f.mu.Unlock()
}

func (f *fakeToaster) raised() []toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]toast, len(f.toasts))
	copy(out, f.toasts)
	return out
}

func newTestBridge() (*Router, *fakeCache, *fakeToaster) {
	r := NewRouter(nil)
	cache := &fakeCache{}
	toasts := &fakeToaster{}
	NewBridge(cache, toasts).Attach(r)
	return r, cache, toasts
}

func TestBridgeLeadUpdatedInvalidatesListAndEntry(t *testing.T) {
	r, cache, toasts := newTestBridge()

	r.HandleFrame([]byte(`{"type":"lead_updated","data":{"id":42,"propertyAddress":"1 Main St"}}`))

	assert.ElementsMatch(t, []string{CollectionLeads, "lead:42"}, cache.invalidated())
	raised := toasts.raised()
	assert.Len(t, raised, 1)
	assert.Equal(t, "Lead Updated", raised[0].Title)
}

func TestBridgeLeadCreated(t *testing.T) {
	r, cache, toasts := newTestBridge()

	r.HandleFrame([]byte(`{"type":"lead_created","data":{"id":7,"name":"Jane Seller"}}`))

	assert.Equal(t, []string{CollectionLeads}, cache.invalidated())
	raised := toasts.raised()
	assert.Len(t, raised, 1)
	assert.Equal(t, "New Lead", raised[0].Title)
	assert.Contains(t, raised[0].Description, "Jane Seller")
}

func TestBridgeActivityCreatedUsesDescription(t *testing.T) {
	r, cache, toasts := newTestBridge()

	r.HandleFrame([]byte(`{"type":"activity_created","data":{"description":"Called the seller"}}`))

	assert.Equal(t, []string{CollectionActivities}, cache.invalidated())
	raised := toasts.raised()
	assert.Len(t, raised, 1)
	assert.Equal(t, "Called the seller", raised[0].Description)
}

func TestBridgeCallCreatedFallbackCaller(t *testing.T) {
	r, cache, toasts := newTestBridge()

	r.HandleFrame([]byte(`{"type":"call_created","data":{}}`))

	assert.Equal(t, []string{CollectionCallHistory}, cache.invalidated())
	raised := toasts.raised()
	assert.Len(t, raised, 1)
	assert.Equal(t, "A team member logged a call", raised[0].Description)
}

func TestBridgeCallScheduledNamesCallerAndLead(t *testing.T) {
	r, cache, toasts := newTestBridge()

	r.HandleFrame([]byte(`{"type":"call_scheduled","data":{"callerName":"Alex","leadName":"Jane Seller"}}`))

	assert.Equal(t, []string{CollectionScheduledCalls}, cache.invalidated())
	raised := toasts.raised()
	assert.Len(t, raised, 1)
	assert.Equal(t, "Alex scheduled a call with Jane Seller", raised[0].Description)
}

func TestBridgeCallUpdatedInvalidatesBothCallLists(t *testing.T) {
	r, cache, toasts := newTestBridge()

	r.HandleFrame([]byte(`{"type":"call_updated","data":{"id":3}}`))

	assert.ElementsMatch(t, []string{CollectionScheduledCalls, CollectionCallHistory}, cache.invalidated())
	assert.Len(t, toasts.raised(), 1)
}

func TestBridgeDetachStopsHandling(t *testing.T) {
	r := NewRouter(nil)
	cache := &fakeCache{}
	toasts := &fakeToaster{}
	b := NewBridge(cache, toasts)
	b.Attach(r)
	b.Detach()

	r.HandleFrame([]byte(`{"type":"lead_created","data":{"id":1}}`))

	assert.Empty(t, cache.invalidated())
	assert.Empty(t, toasts.raised())
}

func TestStaleSet(t *testing.T) {
	s := NewStaleSet()
	assert.False(t, s.IsStale(CollectionLeads))
	s.Invalidate(CollectionLeads)
	assert.True(t, s.IsStale(CollectionLeads))
	s.Reset(CollectionLeads)
	assert.False(t, s.IsStale(CollectionLeads))
}
