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

// AccountHandler handles authentication and account preference requests.
type AccountHandler struct {
	Service *services.AccountService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService, logger zerolog.Logger, timeout time.Duration) *AccountHandler {
	return &AccountHandler{Service: service, Logger: logger, Timeout: timeout}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account *models.Account `json:"account"`
}

// Login handles credential verification and session issuance.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, account, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("login failed")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	utils.SendJSON(w, http.StatusOK, loginResponse{Token: token, Account: account})
}

type emailPrefsRequest struct {
	Enabled bool `json:"enabled"`
}

// EmailPrefs handles toggling the caller's email-reply preference.
func (h *AccountHandler) EmailPrefs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req emailPrefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSON(w, http.StatusOK, models.Failure("invalid request body"))
		return
	}

	result := h.Service.SetEmailPrefs(ctx, claims.Email, req.Enabled)
	utils.SendJSON(w, http.StatusOK, result)
}
