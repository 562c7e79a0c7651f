package tests

import (
	"encoding/json"
	"testing"

	"flipstackk-api/globals"
	"flipstackk-api/realtime"
	"flipstackk-api/types"

	"github.com/stretchr/testify/assert"
)

func TestPaginationHelperDefaults(t *testing.T) {
	p := types.NewPaginationHelper(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.Offset)
}

func TestPaginationHelperRoundsDownDisallowedSize(t *testing.T) {
	p := types.NewPaginationHelper(3, 37)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 40, p.Offset)

	p = types.NewPaginationHelper(1, 5)
	assert.Equal(t, 10, p.PageSize)
}

func TestPaginationBuildResponseTotalPages(t *testing.T) {
	p := types.NewPaginationHelper(1, 10)
	resp := p.BuildResponse([]int{1, 2, 3}, 25)
	assert.Equal(t, 25, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestValidCallStatus(t *testing.T) {
	assert.True(t, globals.ValidCallStatus("scheduled"))
	assert.True(t, globals.ValidCallStatus("cancelled"))
	assert.False(t, globals.ValidCallStatus("ghosted"))
	assert.False(t, globals.ValidCallStatus(""))
}

func TestLeadKey(t *testing.T) {
	assert.Equal(t, "lead:42", realtime.LeadKey(42))
}

func TestFormatEntryKnownAndUnknownTypes(t *testing.T) {
	got := realtime.FormatEntry(types.Envelope{
		Type: types.EventLeadCreated,
		Data: json.RawMessage(`{"name":"Pat Seller"}`),
	})
	assert.Equal(t, "New lead: Pat Seller", got)

	got = realtime.FormatEntry(types.Envelope{Type: "mystery", Data: json.RawMessage(`{}`)})
	assert.Equal(t, "New notification", got)
}

func TestEnvelopeRoundTripPreservesRawData(t *testing.T) {
	env := types.Envelope{Type: types.EventCallScheduled, Data: json.RawMessage(`{"id":1,"leadId":2}`)}
	raw, err := json.Marshal(env)
	assert.NoError(t, err)

	var back types.Envelope
	assert.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, env.Type, back.Type)
	assert.JSONEq(t, string(env.Data), string(back.Data))
}
