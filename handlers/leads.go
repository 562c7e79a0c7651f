package handlers

import (
	"net/http"
	"strconv"

	"flipstackk-api/globals"
	"flipstackk-api/pkg/notify"
	"flipstackk-api/repository"
	"flipstackk-api/types"

	"github.com/gin-gonic/gin"
)

type LeadsHandler struct {
	leadsRepo *repository.LeadsRepository
	notifier  notify.Notifier
}

func NewLeadsHandler(leadsRepo *repository.LeadsRepository) *LeadsHandler {
	return &LeadsHandler{leadsRepo: leadsRepo}
}

func (h *LeadsHandler) WithNotifier(n notify.Notifier) *LeadsHandler {
	h.notifier = n
	return h
}

func resolveStatusID(name string) (int, bool) {
	if name == "" {
		return globals.DefaultNewLeadStatusID, true
	}
	id, ok := globals.LeadStatusIDByName[name]
	return id, ok
}

func (h *LeadsHandler) CreateLead(c *gin.Context) {
	var req struct {
		Name            string `json:"name" binding:"required"`
		Phone           string `json:"phone"`
		Email           string `json:"email"`
		PropertyAddress string `json:"propertyAddress"`
		Status          string `json:"status"`
		AssignedTo      *int   `json:"assignedTo"`
		Notes           string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	statusID, ok := resolveStatusID(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Unknown lead status"))
		return
	}

	lead, err := h.leadsRepo.CreateLead(req.Name, req.Phone, req.Email, req.PropertyAddress, req.Notes, statusID, req.AssignedTo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	if h.notifier != nil {
		h.notifier.Broadcast(types.EventLeadCreated, lead)
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(lead))
}

func (h *LeadsHandler) GetLead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid lead ID"))
		return
	}
	lead, err := h.leadsRepo.GetLeadByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if lead == nil || lead.IsDeleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Lead not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(lead))
}

func (h *LeadsHandler) GetLeads(c *gin.Context) {
	p := types.ParsePaginationParams(c)

	var statusID *int
	if s := c.Query("status"); s != "" {
		id, ok := globals.LeadStatusIDByName[s]
		if !ok {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Unknown lead status"))
			return
		}
		statusID = &id
	}
	var assignedTo *int
	if s := c.Query("assignedTo"); s != "" {
		uid, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid assignedTo"))
			return
		}
		assignedTo = &uid
	}

	leads, total, err := h.leadsRepo.GetLeads(statusID, assignedTo, p.PageSize, p.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(p.BuildResponse(leads, total)))
}

func (h *LeadsHandler) UpdateLead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid lead ID"))
		return
	}
	var req struct {
		Name            *string `json:"name"`
		Phone           *string `json:"phone"`
		Email           *string `json:"email"`
		PropertyAddress *string `json:"propertyAddress"`
		Status          *string `json:"status"`
		AssignedTo      *int    `json:"assignedTo"`
		Notes           *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}

	existing, err := h.leadsRepo.GetLeadByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if existing == nil || existing.IsDeleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Lead not found"))
		return
	}

	upd := repository.LeadUpdate{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		PropertyAddress: req.PropertyAddress,
		AssignedTo:      req.AssignedTo,
		Notes:           req.Notes,
	}
	if req.Status != nil {
		statusID, ok := globals.LeadStatusIDByName[*req.Status]
		if !ok {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Unknown lead status"))
			return
		}
		upd.StatusID = &statusID
	}

	lead, err := h.leadsRepo.UpdateLead(id, upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	if h.notifier != nil {
		h.notifier.Broadcast(types.EventLeadUpdated, lead)
		// Reassignment gets a persisted, targeted notification on top of
		// the broadcast.
		if req.AssignedTo != nil && *req.AssignedTo != c.GetInt("userId") {
			h.notifier.NotifyUser(*req.AssignedTo, types.EventLeadUpdated, lead)
		}
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(lead))
}

func (h *LeadsHandler) DeleteLead(c *gin.Context) {
	h.setDeleted(c, true, "Lead deleted successfully")
}

func (h *LeadsHandler) RestoreLead(c *gin.Context) {
	h.setDeleted(c, false, "Lead restored successfully")
}

func (h *LeadsHandler) setDeleted(c *gin.Context, deleted bool, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid lead ID"))
		return
	}
	lead, err := h.leadsRepo.GetLeadByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if lead == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Lead not found"))
		return
	}
	if err := h.leadsRepo.SetLeadDeleted(id, deleted); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if h.notifier != nil {
		h.notifier.Broadcast(types.EventLeadUpdated, lead)
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"message": message}))
}
