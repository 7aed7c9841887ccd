package repository

import (
	"context"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttachmentRepository provides access to quote attachment metadata.
type AttachmentRepository interface {
	CreateAttachment(ctx context.Context, att models.QuoteAttachment) (*models.QuoteAttachment, error)
	ListAttachments(ctx context.Context, quoteID string) ([]models.QuoteAttachment, error)
}

// PostgresAttachmentRepository implements AttachmentRepository against Postgres.
type PostgresAttachmentRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresAttachmentRepository creates a new PostgresAttachmentRepository.
func NewPostgresAttachmentRepository(db *pgxpool.Pool) *PostgresAttachmentRepository {
	return &PostgresAttachmentRepository{DB: db}
}

// CreateAttachment records an uploaded file against a quote.
func (r *PostgresAttachmentRepository) CreateAttachment(ctx context.Context, att models.QuoteAttachment) (*models.QuoteAttachment, error) {
	att.ID = uuid.New().String()
	att.CreatedAt = time.Now().UTC()
	insertQuery := `INSERT INTO quote_attachment (id, quote_id, file_name, object_key, content_type, size_bytes, uploaded_by, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		att.ID,
		att.QuoteID,
		att.FileName,
		att.ObjectKey,
		att.ContentType,
		att.SizeBytes,
		att.UploadedBy,
		att.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// ListAttachments returns attachment metadata for a quote, newest first.
func (r *PostgresAttachmentRepository) ListAttachments(ctx context.Context, quoteID string) ([]models.QuoteAttachment, error) {
	query := `SELECT id, quote_id, file_name, object_key, content_type, size_bytes, uploaded_by, created_at
	          FROM quote_attachment WHERE quote_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.QuoteAttachment
	for rows.Next() {
		var att models.QuoteAttachment
		if err := rows.Scan(&att.ID, &att.QuoteID, &att.FileName, &att.ObjectKey, &att.ContentType, &att.SizeBytes, &att.UploadedBy, &att.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, rows.Err()
}
