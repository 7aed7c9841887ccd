package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-service/internal/auth"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/services"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/rs/zerolog"
)

// MessageHandler handles quote messaging threads.
type MessageHandler struct {
	Service *services.MessageService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService, logger zerolog.Logger, timeout time.Duration) *MessageHandler {
	return &MessageHandler{Service: service, Logger: logger, Timeout: timeout}
}

type postMessageRequest struct {
	Body string `json:"body"`
}

type postMessageResponse struct {
	Ok      bool                 `json:"ok"`
	Error   string               `json:"error,omitempty"`
	Message *models.QuoteMessage `json:"message,omitempty"`
}

// PostMessage handles appending to a quote's thread.
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSON(w, http.StatusOK, models.Failure("invalid request body"))
		return
	}

	msg, result := h.Service.PostMessage(ctx, r.PathValue("quoteId"), req.Body, claims.Email, claims.AccountID, claims.Role)
	utils.SendJSON(w, http.StatusOK, postMessageResponse{Ok: result.Ok, Error: result.Error, Message: msg})
}

// ListThread handles reading a quote's thread.
func (h *MessageHandler) ListThread(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	messages, err := h.Service.ListThread(ctx, r.PathValue("quoteId"), claims.Email, claims.AccountID, claims.Role)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to list messages")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve messages")
		return
	}

	utils.SendJSON(w, http.StatusOK, messages)
}
