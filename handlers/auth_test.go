package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
)

func (s *E2ETestSuite) Test01_RegisterMember() {
	body := `{"username":"closer","password":"closerpass1","fullName":"Alex Closer"}`
	resp, err := http.Post(s.baseURL+"/register", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)
}

func (s *E2ETestSuite) Test02_RegisterMemberConflict() {
	body := `{"username":"closer","password":"closerpass1","fullName":"Alex Closer"}`
	resp, err := http.Post(s.baseURL+"/register", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func (s *E2ETestSuite) Test03_LoginInvalidPassword() {
	body := `{"username":"closer","password":"wrong"}`
	resp, err := http.Post(s.baseURL+"/login", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *E2ETestSuite) Test04_LoginValid() {
	body := `{"username":"closer","password":"closerpass1"}`
	resp, err := http.Post(s.baseURL+"/login", "application/json", bytes.NewBufferString(body))
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var data map[string]interface{}
	s.NoError(json.NewDecoder(resp.Body).Decode(&data))
	if data["success"] != nil && data["success"].(bool) {
		tokenData := data["data"].(map[string]interface{})
		s.memberToken = tokenData["token"].(string)
		s.memberID = int(tokenData["userId"].(float64))
		s.NotEmpty(s.memberToken)
	} else {
		s.Fail("Login failed")
	}
}

func (s *E2ETestSuite) Test05_ProtectedRouteRequiresToken() {
	resp, err := http.Get(s.baseURL + "/leads")
	s.NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
