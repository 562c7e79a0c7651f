package handlers

import (
	"net/http"

	"flipstackk-api/globals"
	"flipstackk-api/repository"
	"flipstackk-api/types"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamRepo *repository.TeamRepository
}

func NewTeamHandler(teamRepo *repository.TeamRepository) *TeamHandler {
	return &TeamHandler{teamRepo: teamRepo}
}

// GetTeamPerformance returns per-member call and lead counters for the
// dashboard's team view.
func (h *TeamHandler) GetTeamPerformance(c *gin.Context) {
	closedID, ok := globals.LeadStatusIDByName["closed"]
	if !ok {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "lead statuses not initialized"))
		return
	}
	stats, err := h.teamRepo.GetTeamPerformance(closedID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(stats))
}
