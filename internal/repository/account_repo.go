package repository

import (
	"context"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository provides access to portal accounts.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	SetEmailRepliesEnabled(ctx context.Context, email string, enabled bool) error
}

// PostgresAccountRepository implements AccountRepository against Postgres.
type PostgresAccountRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository.
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db}
}

const accountColumns = `id, email, password_hash, role, company_name, profile_complete, email_replies_enabled, created_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var acc models.Account
	err := row.Scan(
		&acc.ID,
		&acc.Email,
		&acc.PasswordHash,
		&acc.Role,
		&acc.CompanyName,
		&acc.ProfileComplete,
		&acc.EmailRepliesEnabled,
		&acc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetByEmail returns the account with the given email.
func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM account WHERE email = $1`
	return scanAccount(r.DB.QueryRow(ctx, query, email))
}

// GetByID returns the account with the given id.
func (r *PostgresAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM account WHERE id = $1`
	return scanAccount(r.DB.QueryRow(ctx, query, id))
}

// SetEmailRepliesEnabled persists the email-reply preference for an account.
func (r *PostgresAccountRepository) SetEmailRepliesEnabled(ctx context.Context, email string, enabled bool) error {
	query := `UPDATE account SET email_replies_enabled = $1 WHERE email = $2`
	_, err := r.DB.Exec(ctx, query, enabled, email)
	return err
}
