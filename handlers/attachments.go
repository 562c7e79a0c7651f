package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"flipstackk-api/initializers"
	"flipstackk-api/repository"
	"flipstackk-api/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
)

type AttachmentsHandler struct {
	attachmentsRepo *repository.AttachmentsRepository
	leadsRepo       *repository.LeadsRepository
}

func NewAttachmentsHandler(a *repository.AttachmentsRepository, l *repository.LeadsRepository) *AttachmentsHandler {
	return &AttachmentsHandler{attachmentsRepo: a, leadsRepo: l}
}

// UploadFile stores a document (contract, photo, deed) against a lead.
// The MIME type is detected from content, never trusted from the client.
func (h *AttachmentsHandler) UploadFile(c *gin.Context) {
	userID := c.GetInt("userId")

	leadIDStr := c.PostForm("lead_id")
	if leadIDStr == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "lead_id is required"))
		return
	}
	leadID, err := strconv.Atoi(leadIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "invalid lead_id"))
		return
	}

	lead, err := h.leadsRepo.GetLeadByID(leadID)
	if err != nil || lead == nil || lead.IsDeleted {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeInvalidRequest, "invalid lead"))
		return
	}

	// Limit request body size before reading multipart data
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, initializers.Conf.MaxSize)

	file, err := c.FormFile("file")
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, types.NewErrorResponse(types.ErrorCodeValidation, "file size exceeds the limit"))
			return
		}
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "file is required"))
		return
	}

	sniff, openErr := file.Open()
	if openErr != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot open uploaded file"))
		return
	}
	mt, detectErr := mimetype.DetectReader(sniff)
	_ = sniff.Close()
	if detectErr != nil || mt == nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "failed to detect file type"))
		return
	}
	detectedCT := strings.Split(mt.String(), ";")[0]

	if err := initializers.CheckFileAllowed(file.Size, detectedCT); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}

	id, err := h.attachmentsRepo.CreateAttachment(leadID, userID, file.Filename, detectedCT, file.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "cannot reopen uploaded file"))
		return
	}
	defer src.Close()

	_, err = initializers.MinioClient.PutObject(
		c.Request.Context(),
		initializers.Conf.Bucket,
		id,
		src,
		file.Size,
		minio.PutObjectOptions{ContentType: detectedCT},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "failed to store file"))
		return
	}

	url, err := initializers.GenerateAttachmentURL(id, file.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(gin.H{"id": id, "url": url}))
}

// GetFile returns a presigned URL for a stored lead document.
func (h *AttachmentsHandler) GetFile(c *gin.Context) {
	attID := c.Param("id")
	att, err := h.attachmentsRepo.GetAttachmentByID(attID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if att == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Attachment not found"))
		return
	}

	lead, err := h.leadsRepo.GetLeadByID(att.LeadID)
	if err != nil || lead == nil || lead.IsDeleted {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Attachment not found"))
		return
	}

	url, err := initializers.GenerateAttachmentURL(att.ID, att.FileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{
		"id":       att.ID,
		"fileName": att.FileName,
		"fileType": att.FileType,
		"fileSize": att.FileSize,
		"url":      url,
	}))
}
