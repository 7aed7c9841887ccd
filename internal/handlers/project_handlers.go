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

// ProjectHandler handles fulfillment project requests.
type ProjectHandler struct {
	Service *services.ProjectService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service *services.ProjectService, logger zerolog.Logger, timeout time.Duration) *ProjectHandler {
	return &ProjectHandler{Service: service, Logger: logger, Timeout: timeout}
}

// GetProject handles reading the project for an awarded quote.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	project, err := h.Service.GetProject(ctx, r.PathValue("quoteId"), claims.Email, claims.AccountID, claims.Role)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to get project")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve project")
		return
	}

	utils.SendJSON(w, http.StatusOK, project)
}

// UpdateProject handles edits to PO number, target ship date and notes.
// Accepts form submissions as well as JSON.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.ProjectUpdateRequest
	if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
		_ = r.ParseForm()
		req.PONumber = r.PostFormValue("poNumber")
		req.TargetShipDate = r.PostFormValue("targetShipDate")
		req.Notes = r.PostFormValue("notes")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSON(w, http.StatusOK, models.Failure("invalid request body"))
		return
	}

	result := h.Service.UpdateProject(ctx, r.PathValue("quoteId"), claims.Email, claims.Role, req)
	utils.SendJSON(w, http.StatusOK, result)
}
