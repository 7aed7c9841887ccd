package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/senyabanana/rfq-service/internal/auth"
	"github.com/senyabanana/rfq-service/internal/models"
	"github.com/senyabanana/rfq-service/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// AccountService owns sessions and account preferences.
type AccountService struct {
	accountRepo repository.AccountRepository
	jwtSecret   string
	jwtTTL      time.Duration
	logger      zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repository.AccountRepository, jwtSecret string, jwtTTL time.Duration, logger zerolog.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
		logger:      logger,
	}
}

// Login verifies credentials and issues a session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, models.NewErrorResponse(http.StatusBadRequest, "email and password are required")
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid credentials")
		}
		return "", nil, err
	}
	if !auth.CheckPassword(password, account.PasswordHash) {
		s.logger.Warn().Str("email", email).Msg("failed login attempt")
		return "", nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := auth.GenerateJWT(account, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// SetEmailPrefs persists the caller's email-reply preference.
func (s *AccountService) SetEmailPrefs(ctx context.Context, email string, enabled bool) *models.MutationResult {
	if err := s.accountRepo.SetEmailRepliesEnabled(ctx, email, enabled); err != nil {
		s.logger.Error().
			Err(err).
			Str("actor", email).
			Msg("email prefs update failed")
		return models.Failure(msgInternal)
	}

	s.logger.Info().Str("actor", email).Bool("enabled", enabled).Msg("email prefs updated")
	return models.Success()
}
