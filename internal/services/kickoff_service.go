package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// DefaultKickoffTemplate is the canonical post-award checklist. Persisted
// rows are merged over it at read time; a missing row means pending.
var DefaultKickoffTemplate = []models.KickoffTask{
	{TaskKey: "confirm_po", Label: "Confirm purchase order"},
	{TaskKey: "review_drawings", Label: "Review technical drawings"},
	{TaskKey: "confirm_materials", Label: "Confirm material sourcing"},
	{TaskKey: "schedule_production", Label: "Schedule production slot"},
	{TaskKey: "confirm_ship_date", Label: "Confirm target ship date"},
	{TaskKey: "quality_plan", Label: "Agree on quality inspection plan"},
}

// KickoffService owns the post-award onboarding checklist.
type KickoffService struct {
	kickoffRepo repository.KickoffRepository
	quoteRepo   repository.QuoteRepository
	logger      zerolog.Logger
}

// NewKickoffService creates a new KickoffService.
func NewKickoffService(kickoffRepo repository.KickoffRepository, quoteRepo repository.QuoteRepository, logger zerolog.Logger) *KickoffService {
	return &KickoffService{kickoffRepo: kickoffRepo, quoteRepo: quoteRepo, logger: logger}
}

// MergeChecklist merges persisted rows over the default template and derives
// the completion summary.
func MergeChecklist(quoteID, supplierID string, rows map[string]models.KickoffTask) *models.KickoffChecklist {
	checklist := &models.KickoffChecklist{
		QuoteID:    quoteID,
		SupplierID: supplierID,
		Tasks:      make([]models.KickoffTask, 0, len(DefaultKickoffTemplate)),
		Total:      len(DefaultKickoffTemplate),
	}

	for _, tmpl := range DefaultKickoffTemplate {
		task := tmpl
		if row, ok := rows[tmpl.TaskKey]; ok {
			task.Completed = row.Completed
			task.CompletedAt = row.CompletedAt
		}
		if task.Completed {
			checklist.Completed++
		}
		checklist.Tasks = append(checklist.Tasks, task)
	}

	switch {
	case checklist.Completed == 0:
		checklist.Status = models.KickoffNotStarted
	case checklist.Completed == checklist.Total:
		checklist.Status = models.KickoffComplete
	default:
		checklist.Status = models.KickoffInProgress
	}
	return checklist
}

// GetChecklist returns the merged checklist for an awarded quote. Only the
// owning customer, the awarded supplier and admins may view it.
func (s *KickoffService) GetChecklist(ctx context.Context, quoteID, callerEmail, callerAccountID string, callerRole models.Role) (*models.KickoffChecklist, error) {
	quote, supplierID, err := s.awardedQuote(ctx, quoteID, callerEmail, callerAccountID, callerRole)
	if err != nil {
		return nil, err
	}

	rows, err := s.kickoffRepo.ListTasks(ctx, quote.ID, supplierID)
	if err != nil {
		return nil, err
	}
	return MergeChecklist(quote.ID, supplierID, rows), nil
}

// ToggleTask flips one checklist item's completion state. Returned as a
// discriminated result so the optimistic client update has a clean rollback
// signal.
func (s *KickoffService) ToggleTask(ctx context.Context, quoteID, taskKey, callerEmail, callerAccountID string, callerRole models.Role, completed bool) *models.MutationResult {
	if !validTaskKey(taskKey) {
		return models.Failure("unknown kickoff task")
	}

	quote, supplierID, err := s.awardedQuote(ctx, quoteID, callerEmail, callerAccountID, callerRole)
	if err != nil {
		var errResp *models.ErrorResponse
		if errors.As(err, &errResp) {
			return models.Failure(errResp.Message)
		}
		s.logger.Error().Err(err).Str("quote_id", quoteID).Msg("kickoff toggle failed")
		return models.Failure(msgInternal)
	}

	if err := s.kickoffRepo.SetTask(ctx, quote.ID, supplierID, taskKey, completed); err != nil {
		s.logger.Error().
			Err(err).
			Str("quote_id", quoteID).
			Str("task_key", taskKey).
			Msg("kickoff toggle failed")
		return models.Failure(msgInternal)
	}

	s.logger.Info().
		Str("quote_id", quoteID).
		Str("task_key", taskKey).
		Bool("completed", completed).
		Str("actor", callerEmail).
		Msg("kickoff task toggled")
	return models.Success()
}

// awardedQuote loads a quote, checks it has a recorded winner and that the
// caller participates in the kickoff.
func (s *KickoffService) awardedQuote(ctx context.Context, quoteID, callerEmail, callerAccountID string, callerRole models.Role) (*models.Quote, string, error) {
	quote, err := s.quoteRepo.GetQuote(ctx, quoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", models.NewErrorResponse(http.StatusNotFound, "quote not found")
		}
		return nil, "", err
	}
	if quote.AwardedSupplierID == nil {
		return nil, "", models.NewErrorResponse(http.StatusBadRequest, "no winner has been selected for this quote")
	}

	supplierID := *quote.AwardedSupplierID
	switch callerRole {
	case models.AdminRole:
	case models.CustomerRole:
		if quote.CustomerEmail != callerEmail {
			return nil, "", models.NewErrorResponse(http.StatusForbidden, "access denied")
		}
	case models.SupplierRole:
		if supplierID != callerAccountID {
			return nil, "", models.NewErrorResponse(http.StatusForbidden, "access denied")
		}
	default:
		return nil, "", models.NewErrorResponse(http.StatusForbidden, "access denied")
	}
	return quote, supplierID, nil
}

func validTaskKey(taskKey string) bool {
	for _, tmpl := range DefaultKickoffTemplate {
		if tmpl.TaskKey == taskKey {
			return true
		}
	}
	return false
}
