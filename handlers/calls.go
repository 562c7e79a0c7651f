package handlers

import (
	"net/http"
	"strconv"
	"time"

	"flipstackk-api/globals"
	"flipstackk-api/models"
	"flipstackk-api/pkg/events"
	"flipstackk-api/pkg/notify"
	"flipstackk-api/repository"
	"flipstackk-api/types"

	"github.com/gin-gonic/gin"
)

type CallsHandler struct {
	callsRepo *repository.CallsRepository
	leadsRepo *repository.LeadsRepository
	usersRepo *repository.UsersRepository
	notifier  notify.Notifier
}

func NewCallsHandler(callsRepo *repository.CallsRepository, leadsRepo *repository.LeadsRepository, usersRepo *repository.UsersRepository) *CallsHandler {
	return &CallsHandler{callsRepo: callsRepo, leadsRepo: leadsRepo, usersRepo: usersRepo}
}

func (h *CallsHandler) WithNotifier(n notify.Notifier) *CallsHandler {
	h.notifier = n
	return h
}

// callEvent assembles the envelope payload with caller and lead names
// resolved so clients can render toasts without extra round-trips.
func (h *CallsHandler) callEvent(call *models.Call) events.CallEvent {
	ev := events.CallEvent{
		ID:          call.ID,
		LeadID:      call.LeadID,
		Status:      call.Status,
		ScheduledAt: call.ScheduledAt,
	}
	if user, err := h.usersRepo.GetUserByID(call.UserID); err == nil && user != nil {
		ev.CallerName = user.FullName
		if ev.CallerName == "" {
			ev.CallerName = user.Username
		}
	}
	if lead, err := h.leadsRepo.GetLeadByID(call.LeadID); err == nil && lead != nil {
		ev.LeadName = lead.Name
	}
	return ev
}

// LogCall records a completed call into the history.
func (h *CallsHandler) LogCall(c *gin.Context) {
	var req struct {
		LeadID          int     `json:"leadId" binding:"required"`
		DurationSeconds *int    `json:"durationSeconds"`
		Outcome         *string `json:"outcome"`
		Notes           string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	lead, err := h.leadsRepo.GetLeadByID(req.LeadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if lead == nil || lead.IsDeleted {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "Invalid lead"))
		return
	}

	userID := c.GetInt("userId")
	call, err := h.callsRepo.LogCall(req.LeadID, userID, req.DurationSeconds, req.Outcome, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	if h.notifier != nil {
		h.notifier.Broadcast(types.EventCallCreated, h.callEvent(call))
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(call))
}

// ScheduleCall books a future call with a lead.
func (h *CallsHandler) ScheduleCall(c *gin.Context) {
	var req struct {
		LeadID      int       `json:"leadId" binding:"required"`
		ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
		Notes       string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	lead, err := h.leadsRepo.GetLeadByID(req.LeadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if lead == nil || lead.IsDeleted {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "Invalid lead"))
		return
	}

	userID := c.GetInt("userId")
	call, err := h.callsRepo.ScheduleCall(req.LeadID, userID, req.ScheduledAt, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	if h.notifier != nil {
		h.notifier.Broadcast(types.EventCallScheduled, h.callEvent(call))
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(call))
}

func (h *CallsHandler) UpdateCall(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid call ID"))
		return
	}
	var req struct {
		Status          *string    `json:"status"`
		ScheduledAt     *time.Time `json:"scheduledAt"`
		DurationSeconds *int       `json:"durationSeconds"`
		Outcome         *string    `json:"outcome"`
		Notes           *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Status != nil && !globals.ValidCallStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Unknown call status"))
		return
	}

	existing, err := h.callsRepo.GetCallByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Call not found"))
		return
	}

	upd := repository.CallUpdate{
		Status:          req.Status,
		ScheduledAt:     req.ScheduledAt,
		DurationSeconds: req.DurationSeconds,
		Outcome:         req.Outcome,
		Notes:           req.Notes,
	}
	// Completing a scheduled call stamps the completion time.
	if req.Status != nil && *req.Status == globals.CallStatusCompleted && existing.CompletedAt == nil {
		now := time.Now()
		upd.CompletedAt = &now
	}

	call, err := h.callsRepo.UpdateCall(id, upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	if h.notifier != nil {
		h.notifier.Broadcast(types.EventCallUpdated, h.callEvent(call))
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(call))
}

func (h *CallsHandler) GetScheduledCalls(c *gin.Context) {
	p := types.ParsePaginationParams(c)
	calls, total, err := h.callsRepo.GetScheduledCalls(p.PageSize, p.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(p.BuildResponse(calls, total)))
}

func (h *CallsHandler) GetCallHistory(c *gin.Context) {
	p := types.ParsePaginationParams(c)
	calls, total, err := h.callsRepo.GetCallHistory(p.PageSize, p.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(p.BuildResponse(calls, total)))
}
