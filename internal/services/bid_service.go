package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/ranking"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ComparedBid is a bid decorated with its display badges for the comparison
// table, in ranked order.
type ComparedBid struct {
	models.Bid
	Badges []ranking.Badge `json:"badges,omitempty"`
}

// BidService owns bid intake, listing, comparison, withdrawal and revision.
type BidService struct {
	bidRepo   repository.BidRepository
	quoteRepo repository.QuoteRepository
	logger    zerolog.Logger
}

// NewBidService creates a new BidService.
func NewBidService(bidRepo repository.BidRepository, quoteRepo repository.QuoteRepository, logger zerolog.Logger) *BidService {
	return &BidService{bidRepo: bidRepo, quoteRepo: quoteRepo, logger: logger}
}

// CreateBid validates and creates a supplier's bid on an open quote.
func (s *BidService) CreateBid(ctx context.Context, supplierID string, req models.BidRequest) (*models.Bid, error) {
	if req.QuoteID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "quoteId is required")
	}
	if req.Amount <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "amount must be positive")
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if len(req.Currency) != 3 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "currency must be a 3-letter code")
	}
	if req.LeadTimeDays != nil && *req.LeadTimeDays <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "leadTimeDays must be positive")
	}

	quote, err := s.quoteRepo.GetQuote(ctx, req.QuoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "quote not found")
		}
		return nil, err
	}
	if !utils.ContainsQuoteStatus(models.AwardableQuoteStatuses, quote.Status) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "this quote is no longer accepting bids")
	}

	return s.bidRepo.CreateBid(ctx, supplierID, req)
}

// ListQuoteBids returns all bids on a quote for its owner or an admin.
func (s *BidService) ListQuoteBids(ctx context.Context, quoteID, callerEmail string, callerRole models.Role) ([]models.Bid, error) {
	quote, err := s.quoteRepo.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "quote not found")
		}
		return nil, err
	}
	if callerRole != models.AdminRole && quote.CustomerEmail != callerEmail {
		return nil, models.NewErrorResponse(http.StatusForbidden, "access denied")
	}
	return s.bidRepo.ListQuoteBids(ctx, quoteID)
}

// CompareQuoteBids returns a quote's bids ranked under the requested sort
// mode, with badges assigned. Ordering is a strict total order so the table
// never shows ties.
func (s *BidService) CompareQuoteBids(ctx context.Context, quoteID, callerEmail string, callerRole models.Role, mode ranking.SortMode) ([]ComparedBid, error) {
	bids, err := s.ListQuoteBids(ctx, quoteID, callerEmail, callerRole)
	if err != nil {
		return nil, err
	}

	offers := make([]ranking.Offer, len(bids))
	byID := make(map[string]models.Bid, len(bids))
	for i, bid := range bids {
		price := bid.Amount
		var lead *float64
		if bid.LeadTimeDays != nil {
			v := float64(*bid.LeadTimeDays)
			lead = &v
		}
		offers[i] = ranking.Offer{
			BidID:        bid.ID,
			SupplierID:   bid.SupplierID,
			SupplierName: bid.SupplierName,
			Price:        &price,
			LeadTimeDays: lead,
			RiskFlags:    bid.RiskFlags,
		}
		byID[bid.ID] = bid
	}

	ranking.SortOffers(offers, mode)
	badges := ranking.AssignBadges(offers)

	compared := make([]ComparedBid, len(offers))
	for i, offer := range offers {
		compared[i] = ComparedBid{Bid: byID[offer.BidID], Badges: badges[offer.BidID]}
	}
	return compared, nil
}

// ListSupplierBids returns the calling supplier's own bids.
func (s *BidService) ListSupplierBids(ctx context.Context, supplierID, limitStr, offsetStr string) ([]models.Bid, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return s.bidRepo.ListSupplierBids(ctx, supplierID, limit, offset)
}

// WithdrawBid lets a supplier withdraw a bid that has not been decided.
func (s *BidService) WithdrawBid(ctx context.Context, bidID, supplierID string) (*models.Bid, error) {
	bid, err := s.ownBid(ctx, bidID, supplierID)
	if err != nil {
		return nil, err
	}
	if bid.Status == models.WonBid || bid.Status == models.LostBid {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "a decided bid cannot be withdrawn")
	}
	updated, err := s.bidRepo.UpdateBidStatus(ctx, bidID, models.WithdrawnBid)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("bid_id", bidID).Str("supplier_id", supplierID).Msg("bid withdrawn")
	return updated, nil
}

// ReviseBid lets a supplier update a live bid's commercial terms.
func (s *BidService) ReviseBid(ctx context.Context, bidID, supplierID string, req models.BidRequest) (*models.Bid, error) {
	bid, err := s.ownBid(ctx, bidID, supplierID)
	if err != nil {
		return nil, err
	}
	if bid.Status == models.WonBid || bid.Status == models.LostBid || bid.Status == models.WithdrawnBid {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "this bid can no longer be revised")
	}
	if req.Amount <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "amount must be positive")
	}
	if req.LeadTimeDays != nil && *req.LeadTimeDays <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "leadTimeDays must be positive")
	}
	return s.bidRepo.ReviseBid(ctx, bidID, req.Amount, req.LeadTimeDays, req.Notes)
}

func (s *BidService) ownBid(ctx context.Context, bidID, supplierID string) (*models.Bid, error) {
	bid, err := s.bidRepo.GetBid(ctx, bidID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "bid not found")
		}
		return nil, err
	}
	if bid.SupplierID != supplierID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "access denied")
	}
	return bid, nil
}
