package handlers

import (
	"fmt"
	"net/http"
	"time"
)

func (s *E2ETestSuite) Test20_ScheduleCall() {
	at := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"leadId":%d,"scheduledAt":%q,"notes":"intro call"}`, s.createdLeadID, at)
	resp := s.authedRequest("POST", "/calls/schedule", body)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	data := s.decodeData(resp)
	s.createdCallID = int(data["id"].(float64))
	s.Equal("scheduled", data["status"])
}

func (s *E2ETestSuite) Test21_ScheduleCallInvalidLead() {
	at := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"leadId":999999,"scheduledAt":%q}`, at)
	resp := s.authedRequest("POST", "/calls/schedule", body)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *E2ETestSuite) Test22_ScheduledCallsList() {
	resp := s.authedRequest("GET", "/calls/scheduled", "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	data := s.decodeData(resp)
	items, ok := data["data"].([]interface{})
	s.True(ok)
	s.NotEmpty(items)
}

func (s *E2ETestSuite) Test23_CompleteScheduledCall() {
	body := `{"status":"completed","durationSeconds":420,"outcome":"left voicemail"}`
	resp := s.authedRequest("PATCH", fmt.Sprintf("/calls/%d", s.createdCallID), body)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	data := s.decodeData(resp)
	s.Equal("completed", data["status"])
	s.NotNil(data["completedAt"])
}

func (s *E2ETestSuite) Test24_UpdateCallUnknownStatus() {
	resp := s.authedRequest("PATCH", fmt.Sprintf("/calls/%d", s.createdCallID), `{"status":"ghosted"}`)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *E2ETestSuite) Test25_LogCall() {
	body := fmt.Sprintf(`{"leadId":%d,"durationSeconds":180,"outcome":"interested"}`, s.createdLeadID)
	resp := s.authedRequest("POST", "/calls", body)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)
}

func (s *E2ETestSuite) Test26_CallHistory() {
	resp := s.authedRequest("GET", "/calls/history", "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	data := s.decodeData(resp)
	items, ok := data["data"].([]interface{})
	s.True(ok)
	// History holds both the completed scheduled call and the logged call
	s.GreaterOrEqual(len(items), 2)
}
