package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-service/internal/auth"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/services"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/rs/zerolog"
)

// AttachmentHandler handles quote file uploads.
type AttachmentHandler struct {
	Service *services.AttachmentService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(service *services.AttachmentService, logger zerolog.Logger, timeout time.Duration) *AttachmentHandler {
	return &AttachmentHandler{Service: service, Logger: logger, Timeout: timeout}
}

// Upload handles a multipart attachment upload.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	att, err := h.Service.Upload(ctx, r.PathValue("quoteId"), header.Filename, contentType, header.Size, file, claims.Email, claims.Role)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to upload attachment")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to upload attachment")
		return
	}

	utils.SendJSON(w, http.StatusOK, att)
}

// List handles reading attachment metadata for a quote.
func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	attachments, err := h.Service.List(ctx, r.PathValue("quoteId"), claims.Email, claims.Role)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to list attachments")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve attachments")
		return
	}

	utils.SendJSON(w, http.StatusOK, attachments)
}
