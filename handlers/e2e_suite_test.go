package handlers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

type E2ETestSuite struct {
	suite.Suite
	baseURL       string
	memberToken   string
	memberID      int
	secondToken   string
	secondID      int
	createdLeadID int
	createdCallID int
}

func (s *E2ETestSuite) SetupSuite() {
	// Use test API container name when running in Docker, localhost otherwise
	if os.Getenv("CI") != "" || os.Getenv("DOCKER") != "" {
		s.baseURL = "http://test-api:8080"
	} else {
		s.baseURL = "http://localhost:8080"
	}
}

func TestE2ETestSuite(t *testing.T) {
	if os.Getenv("E2E") == "" {
		t.Skip("E2E not set; skipping end-to-end suite")
	}
	suite.Run(t, new(E2ETestSuite))
}
