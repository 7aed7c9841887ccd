package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const maxMessageLen = 2000

// MessageService owns per-quote messaging threads between the customer,
// bidding suppliers and admins.
type MessageService struct {
	messageRepo repository.MessageRepository
	quoteRepo   repository.QuoteRepository
	bidRepo     repository.BidRepository
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, quoteRepo repository.QuoteRepository, bidRepo repository.BidRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messageRepo: messageRepo, quoteRepo: quoteRepo, bidRepo: bidRepo, logger: logger}
}

// PostMessage appends a message to a quote's thread. The result is the
// discriminated mutation shape; the created message rides along when ok.
func (s *MessageService) PostMessage(ctx context.Context, quoteID, body, callerEmail, callerAccountID string, callerRole models.Role) (*models.QuoteMessage, *models.MutationResult) {
	trimmed, ok := utils.TrimAndLimit(body, maxMessageLen)
	if !ok {
		return nil, models.Failure("message must be at most 2000 characters")
	}
	if trimmed == "" {
		return nil, models.Failure("message body is required")
	}

	if err := s.checkParticipant(ctx, quoteID, callerEmail, callerAccountID, callerRole); err != nil {
		var errResp *models.ErrorResponse
		if errors.As(err, &errResp) {
			return nil, models.Failure(errResp.Message)
		}
		s.logger.Error().Err(err).Str("quote_id", quoteID).Msg("message post failed")
		return nil, models.Failure(msgInternal)
	}

	msg, err := s.messageRepo.CreateMessage(ctx, quoteID, callerEmail, callerRole, trimmed)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("quote_id", quoteID).
			Str("actor", callerEmail).
			Msg("message post failed")
		return nil, models.Failure(msgInternal)
	}
	return msg, models.Success()
}

// ListThread returns a quote's message thread for a participant.
func (s *MessageService) ListThread(ctx context.Context, quoteID, callerEmail, callerAccountID string, callerRole models.Role) ([]models.QuoteMessage, error) {
	if err := s.checkParticipant(ctx, quoteID, callerEmail, callerAccountID, callerRole); err != nil {
		return nil, err
	}
	return s.messageRepo.ListMessages(ctx, quoteID)
}

// checkParticipant verifies the caller belongs in the thread: the owning
// customer, an admin, or a supplier who has bid on the quote.
func (s *MessageService) checkParticipant(ctx context.Context, quoteID, callerEmail, callerAccountID string, callerRole models.Role) error {
	quote, err := s.quoteRepo.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NewErrorResponse(http.StatusNotFound, "quote not found")
		}
		return err
	}

	switch callerRole {
	case models.AdminRole:
		return nil
	case models.CustomerRole:
		if quote.CustomerEmail == callerEmail {
			return nil
		}
	case models.SupplierRole:
		bids, err := s.bidRepo.ListQuoteBids(ctx, quoteID)
		if err != nil {
			return err
		}
		for _, bid := range bids {
			if bid.SupplierID == callerAccountID {
				return nil
			}
		}
	}
	return models.NewErrorResponse(http.StatusForbidden, "access denied")
}
