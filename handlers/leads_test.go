package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

func (s *E2ETestSuite) authedRequest(method, path, body string) *http.Response {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, s.baseURL+path, buf)
	s.NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.memberToken)
	resp, err := http.DefaultClient.Do(req)
	s.NoError(err)
	return resp
}

func (s *E2ETestSuite) decodeData(resp *http.Response) map[string]interface{} {
	var out map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&out))
	s.Equal(true, out["success"])
	data, ok := out["data"].(map[string]interface{})
	s.True(ok, "response data is not an object")
	return data
}

func (s *E2ETestSuite) Test10_CreateLead() {
	body := `{"name":"Pat Seller","phone":"555-0101","email":"pat@example.com","propertyAddress":"12 Oak St","notes":"wants quick close"}`
	resp := s.authedRequest("POST", "/leads", body)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	data := s.decodeData(resp)
	s.createdLeadID = int(data["id"].(float64))
	s.Equal("new", data["status"])
	s.NotZero(s.createdLeadID)
}

func (s *E2ETestSuite) Test11_CreateLeadUnknownStatus() {
	resp := s.authedRequest("POST", "/leads", `{"name":"Bad Status","status":"frozen"}`)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *E2ETestSuite) Test12_GetLead() {
	resp := s.authedRequest("GET", fmt.Sprintf("/leads/%d", s.createdLeadID), "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	data := s.decodeData(resp)
	s.Equal("Pat Seller", data["name"])
}

func (s *E2ETestSuite) Test13_UpdateLeadStatus() {
	resp := s.authedRequest("PATCH", fmt.Sprintf("/leads/%d", s.createdLeadID), `{"status":"contacted"}`)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	data := s.decodeData(resp)
	s.Equal("contacted", data["status"])
}

func (s *E2ETestSuite) Test14_ListLeadsFilteredByStatus() {
	resp := s.authedRequest("GET", "/leads?status=contacted", "")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	data := s.decodeData(resp)
	items, ok := data["data"].([]interface{})
	s.True(ok)
	s.NotEmpty(items)
}

func (s *E2ETestSuite) Test15_DeleteAndRestoreLead() {
	resp := s.authedRequest("PATCH", fmt.Sprintf("/leads/%d/delete", s.createdLeadID), "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// Deleted lead is hidden from reads
	resp = s.authedRequest("GET", fmt.Sprintf("/leads/%d", s.createdLeadID), "")
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.authedRequest("PATCH", fmt.Sprintf("/leads/%d/restore", s.createdLeadID), "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.authedRequest("GET", fmt.Sprintf("/leads/%d", s.createdLeadID), "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}
