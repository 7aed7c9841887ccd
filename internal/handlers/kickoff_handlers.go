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

// KickoffHandler handles the post-award checklist.
type KickoffHandler struct {
	Service *services.KickoffService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewKickoffHandler creates a new KickoffHandler.
func NewKickoffHandler(service *services.KickoffService, logger zerolog.Logger, timeout time.Duration) *KickoffHandler {
	return &KickoffHandler{Service: service, Logger: logger, Timeout: timeout}
}

// GetChecklist handles reading the merged kickoff checklist.
func (h *KickoffHandler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	checklist, err := h.Service.GetChecklist(ctx, r.PathValue("quoteId"), claims.Email, claims.AccountID, claims.Role)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to get kickoff checklist")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve kickoff checklist")
		return
	}

	utils.SendJSON(w, http.StatusOK, checklist)
}

type toggleTaskRequest struct {
	Completed bool `json:"completed"`
}

// ToggleTask handles flipping one checklist item. Always responds with the
// discriminated {ok,error} result so the client's optimistic update can be
// rolled back on a rejection.
func (h *KickoffHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req toggleTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSON(w, http.StatusOK, models.Failure("invalid request body"))
		return
	}

	result := h.Service.ToggleTask(ctx, r.PathValue("quoteId"), r.PathValue("taskKey"), claims.Email, claims.AccountID, claims.Role, req.Completed)
	utils.SendJSON(w, http.StatusOK, result)
}
