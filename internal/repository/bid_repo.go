package repository

import (
	"context"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository provides access to supplier bids.
type BidRepository interface {
	CreateBid(ctx context.Context, supplierID string, req models.BidRequest) (*models.Bid, error)
	GetBid(ctx context.Context, bidID string) (*models.Bid, error)
	ListQuoteBids(ctx context.Context, quoteID string) ([]models.Bid, error)
	ListSupplierBids(ctx context.Context, supplierID string, limit, offset int) ([]models.Bid, error)
	UpdateBidStatus(ctx context.Context, bidID string, status models.BidStatus) (*models.Bid, error)
	ReviseBid(ctx context.Context, bidID string, amount float64, leadTimeDays *int, notes string) (*models.Bid, error)
	HasWonBid(ctx context.Context, quoteID string) (bool, error)
	AwardBid(ctx context.Context, quoteID, bidID, supplierID string, byRole models.Role) error
}

// PostgresBidRepository implements BidRepository against Postgres.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository creates a new PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

const bidColumns = `b.id, b.quote_id, b.supplier_id, a.company_name, b.amount, b.currency,
	b.lead_time_days, b.risk_flags, b.notes, b.status, b.created_at, b.updated_at`

const bidSelect = `SELECT ` + bidColumns + ` FROM bid b JOIN account a ON b.supplier_id = a.id`

func scanBid(row pgx.Row) (*models.Bid, error) {
	var bid models.Bid
	err := row.Scan(
		&bid.ID,
		&bid.QuoteID,
		&bid.SupplierID,
		&bid.SupplierName,
		&bid.Amount,
		&bid.Currency,
		&bid.LeadTimeDays,
		&bid.RiskFlags,
		&bid.Notes,
		&bid.Status,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// CreateBid inserts a new bid in status submitted.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, supplierID string, req models.BidRequest) (*models.Bid, error) {
	now := time.Now().UTC()
	newBid := models.Bid{
		ID:           uuid.New().String(),
		QuoteID:      req.QuoteID,
		SupplierID:   supplierID,
		Amount:       req.Amount,
		Currency:     req.Currency,
		LeadTimeDays: req.LeadTimeDays,
		Notes:        req.Notes,
		Status:       models.SubmittedBid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	insertQuery := `INSERT INTO bid (id, quote_id, supplier_id, amount, currency, lead_time_days, risk_flags, notes, status, created_at, updated_at)
	                VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.QuoteID,
		newBid.SupplierID,
		newBid.Amount,
		newBid.Currency,
		newBid.LeadTimeDays,
		newBid.Notes,
		newBid.Status,
		newBid.CreatedAt,
		newBid.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &newBid, nil
}

// GetBid returns a bid by id.
func (r *PostgresBidRepository) GetBid(ctx context.Context, bidID string) (*models.Bid, error) {
	query := bidSelect + ` WHERE b.id = $1`
	return scanBid(r.DB.QueryRow(ctx, query, bidID))
}

// ListQuoteBids returns all bids for a quote.
func (r *PostgresBidRepository) ListQuoteBids(ctx context.Context, quoteID string) ([]models.Bid, error) {
	query := bidSelect + ` WHERE b.quote_id = $1 ORDER BY b.created_at ASC`
	rows, err := r.DB.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}

// ListSupplierBids returns a supplier's own bids.
func (r *PostgresBidRepository) ListSupplierBids(ctx context.Context, supplierID string, limit, offset int) ([]models.Bid, error) {
	query := bidSelect + ` WHERE b.supplier_id = $1 ORDER BY b.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}

// UpdateBidStatus changes a bid's status and returns the updated row.
func (r *PostgresBidRepository) UpdateBidStatus(ctx context.Context, bidID string, status models.BidStatus) (*models.Bid, error) {
	updateQuery := `UPDATE bid SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.DB.Exec(ctx, updateQuery, status, time.Now().UTC(), bidID)
	if err != nil {
		return nil, err
	}
	return r.GetBid(ctx, bidID)
}

// ReviseBid updates a bid's commercial terms and marks it revised.
func (r *PostgresBidRepository) ReviseBid(ctx context.Context, bidID string, amount float64, leadTimeDays *int, notes string) (*models.Bid, error) {
	updateQuery := `UPDATE bid SET amount = $1, lead_time_days = $2, notes = $3, status = $4, updated_at = $5 WHERE id = $6`
	_, err := r.DB.Exec(ctx, updateQuery, amount, leadTimeDays, notes, models.RevisedBid, time.Now().UTC(), bidID)
	if err != nil {
		return nil, err
	}
	return r.GetBid(ctx, bidID)
}

// HasWonBid reports whether any bid for the quote is already won.
func (r *PostgresBidRepository) HasWonBid(ctx context.Context, quoteID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bid WHERE quote_id = $1 AND status = 'won')`
	err := r.DB.QueryRow(ctx, query, quoteID).Scan(&exists)
	return exists, err
}

// AwardBid records the winning bid and stamps the quote's award fields in a
// single transaction. The partial unique index one_won_bid_per_quote backs
// the single-winner invariant under concurrent awarders.
func (r *PostgresBidRepository) AwardBid(ctx context.Context, quoteID, bidID, supplierID string, byRole models.Role) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	updateBidQuery := `UPDATE bid SET status = $1, updated_at = $2 WHERE id = $3 AND quote_id = $4`
	if _, err = tx.Exec(ctx, updateBidQuery, models.WonBid, now, bidID, quoteID); err != nil {
		return err
	}

	updateQuoteQuery := `UPDATE quote
		SET status = $1, awarded_bid_id = $2, awarded_supplier_id = $3, awarded_at = $4, awarded_by_role = $5, updated_at = $4
		WHERE id = $6`
	if _, err = tx.Exec(ctx, updateQuoteQuery, models.WonQuote, bidID, supplierID, now, byRole, quoteID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
