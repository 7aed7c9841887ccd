package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-service/internal/auth"
	"github.com/senyabanana/rfq-service/internal/liststate"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/services"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/rs/zerolog"
)

// QuoteHandler handles RFQ requests.
type QuoteHandler struct {
	Service *services.QuoteService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(service *services.QuoteService, logger zerolog.Logger, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateQuote handles RFQ intake for customers.
func (h *QuoteHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.Service.CreateQuote(ctx, claims.Email, req)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to create quote")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create quote")
		return
	}

	utils.SendJSON(w, http.StatusOK, quote)
}

// ListQuotes handles portal list views with query-string list state.
func (h *QuoteHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	state := liststate.ParseListState(r.URL.Query())
	quotes, err := h.Service.ListQuotes(ctx, state, claims.Email, claims.Role)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list quotes")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve quotes")
		return
	}

	utils.SendJSON(w, http.StatusOK, map[string]interface{}{
		"quotes": quotes,
		"state":  state,
		"query":  liststate.BuildListQuery(state),
	})
}

// GetQuote handles quote detail requests.
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	quote, err := h.Service.GetQuote(ctx, r.PathValue("quoteId"), claims.Email, claims.Role)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to get quote")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve quote")
		return
	}

	utils.SendJSON(w, http.StatusOK, quote)
}

// UpdateQuoteStatus handles status transitions on a quote.
func (h *QuoteHandler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	status := models.QuoteStatus(r.URL.Query().Get("status"))
	if status == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required query parameter: status")
		return
	}

	quote, err := h.Service.UpdateQuoteStatus(ctx, r.PathValue("quoteId"), status, claims.Email, claims.Role)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to update quote status")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to update quote status")
		return
	}

	utils.SendJSON(w, http.StatusOK, quote)
}
