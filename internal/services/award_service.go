package services

import (
	"context"
	"errors"

	"github.com/senyabanana/rfq-service/internal/cache"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/notify"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Fixed user-facing messages for award rejections. Each maps to exactly one
// reason tag in the server-side log.
const (
	msgMissingIDs        = "missing quote or bid id"
	msgProfileIncomplete = "complete your profile before selecting a winner"
	msgQuoteNotFound     = "quote not found"
	msgStatusNotReady    = "this quote is not ready for winner selection"
	msgAccessDenied      = "access denied"
	msgAlreadyWon        = "a winner has already been selected for this quote"
	msgBidNotFound       = "bid not found for this quote"
	msgBidIneligible     = "this bid is no longer eligible"
	msgInternal          = "something went wrong, please try again"
)

// AwardRequest names the quote and bid to award plus the caller's identity.
// OverrideEmail lets an admin-assisted flow act for a specific customer.
type AwardRequest struct {
	QuoteID       string
	BidID         string
	ActorEmail    string      // email from the caller's account record
	SessionEmail  string      // email from the session claims
	OverrideEmail string      // explicit acting-as email, if provided
	ActorRole     models.Role // role recorded on the quote's award fields
}

// AwardService validates eligibility and atomically records a single winning
// bid for a quote.
type AwardService struct {
	quoteRepo   repository.QuoteRepository
	bidRepo     repository.BidRepository
	accountRepo repository.AccountRepository
	projectRepo repository.ProjectRepository
	revalidator cache.Revalidator
	notifier    notify.Notifier
	logger      zerolog.Logger
}

// NewAwardService creates a new AwardService.
func NewAwardService(
	quoteRepo repository.QuoteRepository,
	bidRepo repository.BidRepository,
	accountRepo repository.AccountRepository,
	projectRepo repository.ProjectRepository,
	revalidator cache.Revalidator,
	notifier notify.Notifier,
	logger zerolog.Logger,
) *AwardService {
	return &AwardService{
		quoteRepo:   quoteRepo,
		bidRepo:     bidRepo,
		accountRepo: accountRepo,
		projectRepo: projectRepo,
		revalidator: revalidator,
		notifier:    notifier,
		logger:      logger,
	}
}

// reject logs a structured warning with a machine-readable reason tag and
// returns the fixed user-facing message for that cause.
func (s *AwardService) reject(req AwardRequest, reason, msg string) *models.MutationResult {
	s.logger.Warn().
		Str("reason", reason).
		Str("quote_id", req.QuoteID).
		Str("bid_id", req.BidID).
		Str("actor", req.ActorEmail).
		Str("role", string(req.ActorRole)).
		Msg("award rejected")
	return models.Failure(msg)
}

// SelectWinner runs the award precondition chain in order and, on success,
// records the winning bid. Every rejection is returned as a value; no error
// escapes to the caller. Re-invoking after a winner is recorded always yields
// the already-won rejection and performs no writes.
func (s *AwardService) SelectWinner(ctx context.Context, req AwardRequest) *models.MutationResult {
	if req.QuoteID == "" || req.BidID == "" {
		return s.reject(req, "missing_ids", msgMissingIDs)
	}

	actor, err := s.accountRepo.GetByEmail(ctx, req.ActorEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.reject(req, "access_denied", msgAccessDenied)
		}
		return s.internalError(req, err)
	}
	if !actor.ProfileComplete {
		return s.reject(req, "profile_incomplete", msgProfileIncomplete)
	}

	quote, err := s.quoteRepo.GetQuote(ctx, req.QuoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.reject(req, "quote_not_found", msgQuoteNotFound)
		}
		return s.internalError(req, err)
	}

	if !utils.ContainsQuoteStatus(models.AwardableQuoteStatuses, quote.Status) {
		return s.reject(req, "status_not_ready", msgStatusNotReady)
	}

	if !s.actorOwnsQuote(req, quote) {
		return s.reject(req, "access_denied", msgAccessDenied)
	}

	hasWinner, err := s.bidRepo.HasWonBid(ctx, req.QuoteID)
	if err != nil {
		return s.internalError(req, err)
	}
	if hasWinner {
		return s.reject(req, "already_won", msgAlreadyWon)
	}

	bid, err := s.bidRepo.GetBid(ctx, req.BidID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.reject(req, "bid_not_found", msgBidNotFound)
		}
		return s.internalError(req, err)
	}
	if bid.QuoteID != req.QuoteID {
		return s.reject(req, "bid_not_found", msgBidNotFound)
	}
	if bid.Status == models.WonBid || bid.Status == models.LostBid {
		return s.reject(req, "bid_ineligible", msgBidIneligible)
	}

	return s.award(ctx, req, quote, bid)
}

// actorOwnsQuote checks the caller's identity against the quote's owning
// email. Admins may award on the customer's behalf; for customers any of the
// account email, session email or explicit override must match.
func (s *AwardService) actorOwnsQuote(req AwardRequest, quote *models.Quote) bool {
	if req.ActorRole == models.AdminRole {
		return true
	}
	for _, email := range []string{req.ActorEmail, req.SessionEmail, req.OverrideEmail} {
		if email != "" && email == quote.CustomerEmail {
			return true
		}
	}
	return false
}

// award is the shared award routine: winning bid and quote award fields are
// written in one transaction, then cached views are revalidated, the winner
// notification is fired and the project row is lazily ensured. The follow-up
// steps are best-effort; failures there never unwind a recorded award.
func (s *AwardService) award(ctx context.Context, req AwardRequest, quote *models.Quote, bid *models.Bid) *models.MutationResult {
	if err := s.bidRepo.AwardBid(ctx, quote.ID, bid.ID, bid.SupplierID, req.ActorRole); err != nil {
		return s.internalError(req, err)
	}

	s.revalidator.RevalidateQuote(ctx, quote.ID, quote.CustomerEmail)

	supplierEmail := ""
	if supplier, err := s.accountRepo.GetByID(ctx, bid.SupplierID); err == nil {
		supplierEmail = supplier.Email
	}
	err := s.notifier.NotifyWinner(ctx, notify.WinnerNotificationPayload{
		QuoteID:       quote.ID,
		QuoteTitle:    quote.Title,
		BidID:         bid.ID,
		SupplierEmail: supplierEmail,
		CustomerEmail: quote.CustomerEmail,
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("quote_id", quote.ID).
			Str("bid_id", bid.ID).
			Msg("failed to enqueue winner notification")
	}

	if _, err := s.projectRepo.EnsureProject(ctx, quote.ID, bid.SupplierID); err != nil {
		s.logger.Warn().
			Err(err).
			Str("quote_id", quote.ID).
			Str("supplier_id", bid.SupplierID).
			Msg("failed to ensure project for awarded quote")
	}

	s.logger.Info().
		Str("quote_id", quote.ID).
		Str("bid_id", bid.ID).
		Str("supplier_id", bid.SupplierID).
		Str("role", string(req.ActorRole)).
		Msg("winner selected")
	return models.Success()
}

func (s *AwardService) internalError(req AwardRequest, err error) *models.MutationResult {
	s.logger.Error().
		Err(err).
		Str("reason", "internal_error").
		Str("quote_id", req.QuoteID).
		Str("bid_id", req.BidID).
		Str("actor", req.ActorEmail).
		Msg("award failed")
	return models.Failure(msgInternal)
}
