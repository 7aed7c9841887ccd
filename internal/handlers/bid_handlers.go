package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-service/internal/auth"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/ranking"
	"github.com/senyabanana/rfq-service/internal/services"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/rs/zerolog"
)

// BidHandler handles supplier bid requests.
type BidHandler struct {
	Service *services.BidService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(service *services.BidService, logger zerolog.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{Service: service, Logger: logger, Timeout: timeout}
}

// CreateBid handles bid submission by suppliers.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bid, err := h.Service.CreateBid(ctx, claims.AccountID, req)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to create bid")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create bid")
		return
	}

	utils.SendJSON(w, http.StatusOK, bid)
}

// ListQuoteBids handles listing all bids on a quote for its owner.
func (h *BidHandler) ListQuoteBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bids, err := h.Service.ListQuoteBids(ctx, r.PathValue("quoteId"), claims.Email, claims.Role)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to list bids")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve bids")
		return
	}

	utils.SendJSON(w, http.StatusOK, bids)
}

// CompareQuoteBids handles the ranked bid-comparison table.
func (h *BidHandler) CompareQuoteBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	mode := ranking.ParseSortMode(r.URL.Query().Get("sort"))
	compared, err := h.Service.CompareQuoteBids(ctx, r.PathValue("quoteId"), claims.Email, claims.Role, mode)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to compare bids")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to compare bids")
		return
	}

	utils.SendJSON(w, http.StatusOK, compared)
}

// ListMyBids handles the supplier portal's own-bid listing.
func (h *BidHandler) ListMyBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bids, err := h.Service.ListSupplierBids(ctx, claims.AccountID, r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to list supplier bids")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve bids")
		return
	}

	utils.SendJSON(w, http.StatusOK, bids)
}

// WithdrawBid handles a supplier withdrawing an undecided bid.
func (h *BidHandler) WithdrawBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bid, err := h.Service.WithdrawBid(ctx, r.PathValue("bidId"), claims.AccountID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to withdraw bid")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to withdraw bid")
		return
	}

	utils.SendJSON(w, http.StatusOK, bid)
}

// ReviseBid handles a supplier updating a live bid's terms.
func (h *BidHandler) ReviseBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	claims, ok := auth.SessionFromContext(ctx)
	if !ok {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bid, err := h.Service.ReviseBid(ctx, r.PathValue("bidId"), claims.AccountID, req)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to revise bid")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to revise bid")
		return
	}

	utils.SendJSON(w, http.StatusOK, bid)
}
