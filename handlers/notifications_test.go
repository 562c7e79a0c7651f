package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

func (s *E2ETestSuite) tokenRequest(token, method, path, body string) *http.Response {
	req, err := http.NewRequest(method, s.baseURL+path, bytes.NewBufferString(body))
	s.NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	s.NoError(err)
	return resp
}

func (s *E2ETestSuite) Test30_RegisterAndLoginSecondMember() {
	body := `{"username":"dialer","password":"dialerpass1","fullName":"Sam Dialer"}`
	resp, err := http.Post(s.baseURL+"/register", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(s.baseURL+"/login", "application/json",
		bytes.NewBufferString(`{"username":"dialer","password":"dialerpass1"}`))
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&out))
	data := out["data"].(map[string]interface{})
	s.secondToken = data["token"].(string)
	s.secondID = int(data["userId"].(float64))
	s.NotEmpty(s.secondToken)
}

func (s *E2ETestSuite) Test31_ReassignmentPersistsNotifications() {
	// Two reassignments away and back leave two unread notifications
	// for the second member.
	for i := 0; i < 2; i++ {
		body := fmt.Sprintf(`{"assignedTo":%d}`, s.secondID)
		resp := s.authedRequest("PATCH", fmt.Sprintf("/leads/%d", s.createdLeadID), body)
		resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
	}

	resp := s.tokenRequest(s.secondToken, "GET", "/notifications/unread", "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&out))
	items, ok := out["data"].([]interface{})
	s.True(ok)
	s.GreaterOrEqual(len(items), 2)
}

func (s *E2ETestSuite) Test32_MarkReadClearsAllGivenIDs() {
	resp := s.tokenRequest(s.secondToken, "GET", "/notifications/unread", "")
	var out map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	items := out["data"].([]interface{})
	s.NotEmpty(items)

	ids := make([]int, 0, len(items))
	for _, it := range items {
		ids = append(ids, int(it.(map[string]interface{})["id"].(float64)))
	}
	payload, _ := json.Marshal(map[string][]int{"ids": ids})

	resp = s.tokenRequest(s.secondToken, "POST", "/notifications/mark-read", string(payload))
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// Every id was cleared in one round-trip
	resp = s.tokenRequest(s.secondToken, "GET", "/notifications/unread", "")
	defer resp.Body.Close()
	s.NoError(json.NewDecoder(resp.Body).Decode(&out))
	s.Empty(out["data"])
}

func (s *E2ETestSuite) Test33_MarkReadIgnoresOtherUsersIDs() {
	// Leave the first member with a notification, then try to mark it
	// read as the second member: it must stay unread.
	body := fmt.Sprintf(`{"assignedTo":%d}`, s.memberID)
	resp := s.tokenRequest(s.secondToken, "PATCH", fmt.Sprintf("/leads/%d", s.createdLeadID), body)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.tokenRequest(s.memberToken, "GET", "/notifications/unread", "")
	var out map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	items := out["data"].([]interface{})
	s.NotEmpty(items)
	firstID := int(items[0].(map[string]interface{})["id"].(float64))

	payload, _ := json.Marshal(map[string][]int{"ids": {firstID}})
	resp = s.tokenRequest(s.secondToken, "POST", "/notifications/mark-read", string(payload))
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.tokenRequest(s.memberToken, "GET", "/notifications/unread", "")
	defer resp.Body.Close()
	s.NoError(json.NewDecoder(resp.Body).Decode(&out))
	s.NotEmpty(out["data"], "another user's mark-read must not clear the notification")
}
