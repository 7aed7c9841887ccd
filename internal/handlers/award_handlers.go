package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/senyabanana/rfq-service/internal/auth"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/services"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/rs/zerolog"
)

// AwardHandler handles winner-selection requests.
type AwardHandler struct {
	Service *services.AwardService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewAwardHandler creates a new AwardHandler.
func NewAwardHandler(service *services.AwardService, logger zerolog.Logger, timeout time.Duration) *AwardHandler {
	return &AwardHandler{Service: service, Logger: logger, Timeout: timeout}
}

type awardBody struct {
	BidID         string `json:"bidId"`
	OverrideEmail string `json:"overrideEmail"`
}

// parseAwardBody accepts both JSON bodies and classic form submissions,
// since the action is posted from forms as well as called directly.
func parseAwardBody(r *http.Request) awardBody {
	var body awardBody
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		_ = json.NewDecoder(r.Body).Decode(&body)
		return body
	}
	_ = r.ParseForm()
	body.BidID = r.PostFormValue("bidId")
	body.OverrideEmail = r.PostFormValue("overrideEmail")
	return body
}

// SelectWinner handles the award action. The response is always the
// discriminated {ok,error} result with HTTP 200; failure causes are encoded
// in the result, not the status line.
func (h *AwardHandler) SelectWinner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	body := parseAwardBody(r)
	result := h.Service.SelectWinner(ctx, services.AwardRequest{
		QuoteID:       r.PathValue("quoteId"),
		BidID:         body.BidID,
		ActorEmail:    claims.Email,
		SessionEmail:  claims.Email,
		OverrideEmail: body.OverrideEmail,
		ActorRole:     claims.Role,
	})

	utils.SendJSON(w, http.StatusOK, result)
}

// RequireAwardRoles restricts the award action to customers and admins.
func RequireAwardRoles(next http.HandlerFunc) http.HandlerFunc {
	return auth.RequireRole(next, models.CustomerRole, models.AdminRole)
}
