package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/rfq-service/internal/liststate"
	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuoteScope restricts a quote listing to one portal's view.
type QuoteScope struct {
	CustomerEmail string // non-empty: only this customer's quotes
	OpenOnly      bool   // supplier portal: only quotes accepting bids
}

// QuoteRepository provides access to RFQs.
type QuoteRepository interface {
	CreateQuote(ctx context.Context, customerEmail string, req models.QuoteRequest) (*models.Quote, error)
	GetQuote(ctx context.Context, quoteID string) (*models.Quote, error)
	ListQuotes(ctx context.Context, state liststate.ListState, scope QuoteScope) ([]models.Quote, error)
	UpdateQuoteStatus(ctx context.Context, quoteID string, status models.QuoteStatus) (*models.Quote, error)
	QuoteExists(ctx context.Context, quoteID string) (bool, error)
}

// PostgresQuoteRepository implements QuoteRepository against Postgres.
type PostgresQuoteRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresQuoteRepository creates a new PostgresQuoteRepository.
func NewPostgresQuoteRepository(db *pgxpool.Pool) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{DB: db}
}

const quoteColumns = `id, customer_email, title, description, quantity, material, status,
	awarded_bid_id, awarded_supplier_id, awarded_at, awarded_by_role, created_at, updated_at`

func scanQuote(row pgx.Row) (*models.Quote, error) {
	var q models.Quote
	err := row.Scan(
		&q.ID,
		&q.CustomerEmail,
		&q.Title,
		&q.Description,
		&q.Quantity,
		&q.Material,
		&q.Status,
		&q.AwardedBidID,
		&q.AwardedSupplierID,
		&q.AwardedAt,
		&q.AwardedByRole,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuote inserts a new RFQ in status submitted.
func (r *PostgresQuoteRepository) CreateQuote(ctx context.Context, customerEmail string, req models.QuoteRequest) (*models.Quote, error) {
	now := time.Now().UTC()
	newQuote := models.Quote{
		ID:            uuid.New().String(),
		CustomerEmail: customerEmail,
		Title:         req.Title,
		Description:   req.Description,
		Quantity:      req.Quantity,
		Material:      req.Material,
		Status:        models.SubmittedQuote,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	insertQuery := `INSERT INTO quote (id, customer_email, title, description, quantity, material, status, created_at, updated_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newQuote.ID,
		newQuote.CustomerEmail,
		newQuote.Title,
		newQuote.Description,
		newQuote.Quantity,
		newQuote.Material,
		newQuote.Status,
		newQuote.CreatedAt,
		newQuote.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &newQuote, nil
}

// GetQuote returns a quote by id.
func (r *PostgresQuoteRepository) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quote WHERE id = $1`
	return scanQuote(r.DB.QueryRow(ctx, query, quoteID))
}

// ListQuotes returns quotes filtered by the list state within the given scope.
func (r *PostgresQuoteRepository) ListQuotes(ctx context.Context, state liststate.ListState, scope QuoteScope) ([]models.Quote, error) {
	var conds []string
	var args []interface{}
	argIndex := 1

	addCond := func(cond string, value interface{}) {
		conds = append(conds, fmt.Sprintf(cond, argIndex))
		args = append(args, value)
		argIndex++
	}

	if scope.CustomerEmail != "" {
		addCond("customer_email = $%d", scope.CustomerEmail)
	}
	if scope.OpenOnly {
		conds = append(conds, `status IN ('submitted', 'in_review', 'quoted', 'approved')`)
	}
	if state.Status != "" {
		addCond("status = $%d", state.Status)
	}
	if state.Q != "" {
		conds = append(conds, fmt.Sprintf("(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", argIndex, argIndex))
		args = append(args, state.Q)
		argIndex++
	}
	if state.HasBids {
		conds = append(conds, `EXISTS(SELECT 1 FROM bid WHERE bid.quote_id = quote.id)`)
	}
	if state.Awarded {
		conds = append(conds, `awarded_bid_id IS NOT NULL`)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	orderBy := "created_at DESC"
	switch state.Sort {
	case "oldest":
		orderBy = "created_at ASC"
	case "status":
		orderBy = "status ASC, created_at DESC"
	case "title":
		orderBy = "title ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM quote %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		quoteColumns, where, orderBy, argIndex, argIndex+1)
	args = append(args, state.PageSize, state.Offset())

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *q)
	}
	return quotes, rows.Err()
}

// UpdateQuoteStatus changes a quote's status and returns the updated row.
func (r *PostgresQuoteRepository) UpdateQuoteStatus(ctx context.Context, quoteID string, status models.QuoteStatus) (*models.Quote, error) {
	query := `UPDATE quote SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + quoteColumns
	return scanQuote(r.DB.QueryRow(ctx, query, status, time.Now().UTC(), quoteID))
}

// QuoteExists reports whether a quote with the given id exists.
func (r *PostgresQuoteRepository) QuoteExists(ctx context.Context, quoteID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM quote WHERE id = $1)`
	err := r.DB.QueryRow(ctx, query, quoteID).Scan(&exists)
	return exists, err
}
