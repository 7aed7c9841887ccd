package repository

import (
	"context"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectRepository provides access to post-award fulfillment projects.
type ProjectRepository interface {
	EnsureProject(ctx context.Context, quoteID, supplierID string) (*models.Project, error)
	GetProjectByQuote(ctx context.Context, quoteID string) (*models.Project, error)
	UpdateProject(ctx context.Context, quoteID, poNumber string, targetShipDate *time.Time, notes string) (*models.Project, error)
}

// PostgresProjectRepository implements ProjectRepository against Postgres.
type PostgresProjectRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository.
func NewPostgresProjectRepository(db *pgxpool.Pool) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

const projectColumns = `id, quote_id, supplier_id, po_number, target_ship_date, notes, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.QuoteID,
		&p.SupplierID,
		&p.PONumber,
		&p.TargetShipDate,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// EnsureProject creates the project row for an awarded quote if it does not
// exist yet and returns it. The quote_id unique constraint makes the lazy
// create idempotent.
func (r *PostgresProjectRepository) EnsureProject(ctx context.Context, quoteID, supplierID string) (*models.Project, error) {
	now := time.Now().UTC()
	insertQuery := `INSERT INTO project (id, quote_id, supplier_id, po_number, notes, created_at, updated_at)
	                VALUES ($1, $2, $3, '', '', $4, $4)
	                ON CONFLICT (quote_id) DO NOTHING`
	_, err := r.DB.Exec(ctx, insertQuery, uuid.New().String(), quoteID, supplierID, now)
	if err != nil {
		return nil, err
	}
	return r.GetProjectByQuote(ctx, quoteID)
}

// GetProjectByQuote returns the project for a quote.
func (r *PostgresProjectRepository) GetProjectByQuote(ctx context.Context, quoteID string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE quote_id = $1`
	return scanProject(r.DB.QueryRow(ctx, query, quoteID))
}

// UpdateProject persists the editable fulfillment fields.
func (r *PostgresProjectRepository) UpdateProject(ctx context.Context, quoteID, poNumber string, targetShipDate *time.Time, notes string) (*models.Project, error) {
	query := `UPDATE project SET po_number = $1, target_ship_date = $2, notes = $3, updated_at = $4
	          WHERE quote_id = $5 RETURNING ` + projectColumns
	return scanProject(r.DB.QueryRow(ctx, query, poNumber, targetShipDate, notes, time.Now().UTC(), quoteID))
}
