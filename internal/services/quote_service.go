package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/senyabanana/rfq-service/internal/liststate"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// allowedQuoteTransitions gates status changes per current status. Won and
// lost are terminal; cancellation is possible any time before award.
var allowedQuoteTransitions = map[models.QuoteStatus][]models.QuoteStatus{
	models.SubmittedQuote: {models.InReviewQuote, models.CancelledQuote},
	models.InReviewQuote:  {models.QuotedQuote, models.CancelledQuote},
	models.QuotedQuote:    {models.ApprovedQuote, models.CancelledQuote},
	models.ApprovedQuote:  {models.LostQuote, models.CancelledQuote},
	models.WonQuote:       {},
	models.LostQuote:      {},
	models.CancelledQuote: {},
}

// QuoteService owns RFQ intake, listing and status transitions.
type QuoteService struct {
	quoteRepo repository.QuoteRepository
	logger    zerolog.Logger
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(quoteRepo repository.QuoteRepository, logger zerolog.Logger) *QuoteService {
	return &QuoteService{quoteRepo: quoteRepo, logger: logger}
}

// CreateQuote validates and creates a new RFQ for the calling customer.
func (s *QuoteService) CreateQuote(ctx context.Context, customerEmail string, req models.QuoteRequest) (*models.Quote, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Material = strings.TrimSpace(req.Material)
	if req.Title == "" || req.Quantity <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "title and a positive quantity are required")
	}
	if len(req.Title) > 200 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "title must be at most 200 characters")
	}
	return s.quoteRepo.CreateQuote(ctx, customerEmail, req)
}

// GetQuote returns a quote, restricted to the caller's portal view.
func (s *QuoteService) GetQuote(ctx context.Context, quoteID, callerEmail string, callerRole models.Role) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "quote not found")
		}
		return nil, err
	}
	if callerRole == models.CustomerRole && quote.CustomerEmail != callerEmail {
		return nil, models.NewErrorResponse(http.StatusForbidden, "access denied")
	}
	return quote, nil
}

// ListQuotes returns quotes for the caller's portal, filtered by list state.
// Admins see everything, customers their own quotes, suppliers open ones.
func (s *QuoteService) ListQuotes(ctx context.Context, state liststate.ListState, callerEmail string, callerRole models.Role) ([]models.Quote, error) {
	scope := repository.QuoteScope{}
	switch callerRole {
	case models.CustomerRole:
		scope.CustomerEmail = callerEmail
	case models.SupplierRole:
		scope.OpenOnly = true
	}
	return s.quoteRepo.ListQuotes(ctx, state, scope)
}

// UpdateQuoteStatus applies an allow-listed status transition.
func (s *QuoteService) UpdateQuoteStatus(ctx context.Context, quoteID string, newStatus models.QuoteStatus, callerEmail string, callerRole models.Role) (*models.Quote, error) {
	quote, err := s.GetQuote(ctx, quoteID, callerEmail, callerRole)
	if err != nil {
		return nil, err
	}

	// Customers may only cancel; the review pipeline belongs to admins.
	if callerRole == models.CustomerRole && newStatus != models.CancelledQuote {
		return nil, models.NewErrorResponse(http.StatusForbidden, "customers may only cancel a quote")
	}

	if !utils.ContainsQuoteStatus(allowedQuoteTransitions[quote.Status], newStatus) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid status transition")
	}

	updated, err := s.quoteRepo.UpdateQuoteStatus(ctx, quoteID, newStatus)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("quote_id", quoteID).
		Str("from", string(quote.Status)).
		Str("to", string(newStatus)).
		Str("actor", callerEmail).
		Msg("quote status changed")
	return updated, nil
}
