package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// maxAttachmentSize caps uploads at 25 MiB.
const maxAttachmentSize = 25 << 20

// AttachmentService owns quote file uploads.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	quoteRepo      repository.QuoteRepository
	store          storage.FileStore
	logger         zerolog.Logger
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(attachmentRepo repository.AttachmentRepository, quoteRepo repository.QuoteRepository, store storage.FileStore, logger zerolog.Logger) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		quoteRepo:      quoteRepo,
		store:          store,
		logger:         logger,
	}
}

// Upload stores the file body and records the attachment against the quote.
func (s *AttachmentService) Upload(ctx context.Context, quoteID, fileName, contentType string, size int64, body io.Reader, callerEmail string, callerRole models.Role) (*models.QuoteAttachment, error) {
	if size <= 0 || size > maxAttachmentSize {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "file size must be between 1 byte and 25 MiB")
	}
	fileName = filepath.Base(fileName)
	if fileName == "" || fileName == "." {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "file name is required")
	}

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

	objectKey := fmt.Sprintf("quotes/%s/%s-%s", quoteID, uuid.New().String(), fileName)
	if err := s.store.Put(ctx, objectKey, contentType, body, size); err != nil {
		s.logger.Error().
			Err(err).
			Str("quote_id", quoteID).
			Str("object_key", objectKey).
			Msg("attachment upload failed")
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to store attachment")
	}

	return s.attachmentRepo.CreateAttachment(ctx, models.QuoteAttachment{
		QuoteID:     quoteID,
		FileName:    fileName,
		ObjectKey:   objectKey,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  callerEmail,
	})
}

// List returns attachment metadata for a quote.
func (s *AttachmentService) List(ctx context.Context, quoteID, callerEmail string, callerRole models.Role) ([]models.QuoteAttachment, error) {
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
	return s.attachmentRepo.ListAttachments(ctx, quoteID)
}
