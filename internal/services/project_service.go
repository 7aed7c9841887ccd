package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/repository"
	"github.com/senyabanana/rfq-service/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	maxPONumberLen = 100
	maxNotesLen    = 2000
)

// ProjectService owns the post-award fulfillment record.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	quoteRepo   repository.QuoteRepository
	logger      zerolog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, quoteRepo repository.QuoteRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, quoteRepo: quoteRepo, logger: logger}
}

// GetProject returns the project for an awarded quote. Only the owning
// customer, the awarded supplier and admins may view it.
func (s *ProjectService) GetProject(ctx context.Context, quoteID, callerEmail, callerAccountID string, callerRole models.Role) (*models.Project, error) {
	if _, err := s.accessibleQuote(ctx, quoteID, callerEmail, callerAccountID, callerRole); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetProjectByQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "no project exists for this quote")
		}
		return nil, err
	}
	return project, nil
}

// UpdateProject validates and persists the editable fulfillment fields,
// returning a discriminated result.
func (s *ProjectService) UpdateProject(ctx context.Context, quoteID, callerEmail string, callerRole models.Role, req models.ProjectUpdateRequest) *models.MutationResult {
	if callerRole == models.SupplierRole {
		return models.Failure("access denied")
	}

	quote, err := s.accessibleQuote(ctx, quoteID, callerEmail, "", callerRole)
	if err != nil {
		var errResp *models.ErrorResponse
		if errors.As(err, &errResp) {
			return models.Failure(errResp.Message)
		}
		s.logger.Error().Err(err).Str("quote_id", quoteID).Msg("project update failed")
		return models.Failure(msgInternal)
	}

	poNumber, ok := utils.TrimAndLimit(req.PONumber, maxPONumberLen)
	if !ok {
		return models.Failure("PO number must be at most 100 characters")
	}
	notes, ok := utils.TrimAndLimit(req.Notes, maxNotesLen)
	if !ok {
		return models.Failure("notes must be at most 2000 characters")
	}

	var targetShipDate *time.Time
	if req.TargetShipDate != "" {
		if !utils.ValidISODate(req.TargetShipDate) {
			return models.Failure("target ship date must be YYYY-MM-DD")
		}
		parsed, err := time.Parse("2006-01-02", req.TargetShipDate)
		if err != nil {
			return models.Failure("target ship date must be YYYY-MM-DD")
		}
		targetShipDate = &parsed
	}

	if _, err := s.projectRepo.UpdateProject(ctx, quoteID, poNumber, targetShipDate, notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Failure("no project exists for this quote")
		}
		s.logger.Error().
			Err(err).
			Str("quote_id", quoteID).
			Str("actor", callerEmail).
			Msg("project update failed")
		return models.Failure(msgInternal)
	}

	s.logger.Info().
		Str("quote_id", quote.ID).
		Str("actor", callerEmail).
		Msg("project updated")
	return models.Success()
}

func (s *ProjectService) accessibleQuote(ctx context.Context, quoteID, callerEmail, callerAccountID string, callerRole models.Role) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "quote not found")
		}
		return nil, err
	}

	switch callerRole {
	case models.AdminRole:
	case models.CustomerRole:
		if quote.CustomerEmail != callerEmail {
			return nil, models.NewErrorResponse(http.StatusForbidden, "access denied")
		}
	case models.SupplierRole:
		if quote.AwardedSupplierID == nil || *quote.AwardedSupplierID != callerAccountID {
			return nil, models.NewErrorResponse(http.StatusForbidden, "access denied")
		}
	default:
		return nil, models.NewErrorResponse(http.StatusForbidden, "access denied")
	}
	return quote, nil
}
