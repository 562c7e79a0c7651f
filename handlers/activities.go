package handlers

import (
	"net/http"

	"flipstackk-api/pkg/events"
	"flipstackk-api/pkg/notify"
	"flipstackk-api/repository"
	"flipstackk-api/types"

	"github.com/gin-gonic/gin"
)

type ActivitiesHandler struct {
	activitiesRepo *repository.ActivitiesRepository
	leadsRepo      *repository.LeadsRepository
	notifier       notify.Notifier
}

func NewActivitiesHandler(activitiesRepo *repository.ActivitiesRepository, leadsRepo *repository.LeadsRepository) *ActivitiesHandler {
	return &ActivitiesHandler{activitiesRepo: activitiesRepo, leadsRepo: leadsRepo}
}

func (h *ActivitiesHandler) WithNotifier(n notify.Notifier) *ActivitiesHandler {
	h.notifier = n
	return h
}

func (h *ActivitiesHandler) CreateActivity(c *gin.Context) {
	var req struct {
		Type        string `json:"type" binding:"required"`
		Description string `json:"description" binding:"required"`
		LeadID      *int   `json:"leadId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.LeadID != nil {
		lead, err := h.leadsRepo.GetLeadByID(*req.LeadID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
			return
		}
		if lead == nil || lead.IsDeleted {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "Invalid lead"))
			return
		}
	}

	userID := c.GetInt("userId")
	activity, err := h.activitiesRepo.CreateActivity(userID, req.Type, req.Description, req.LeadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	if h.notifier != nil {
		h.notifier.Broadcast(types.EventActivityCreated, events.ActivityEvent{
			ID:          activity.ID,
			UserID:      activity.UserID,
			Type:        activity.Type,
			Description: activity.Description,
		})
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(activity))
}

func (h *ActivitiesHandler) GetActivities(c *gin.Context) {
	p := types.ParsePaginationParams(c)
	activities, total, err := h.activitiesRepo.GetActivities(p.PageSize, p.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(p.BuildResponse(activities, total)))
}
