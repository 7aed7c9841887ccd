package repository

import (
	"context"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository provides access to quote message threads.
type MessageRepository interface {
	CreateMessage(ctx context.Context, quoteID, senderEmail string, senderRole models.Role, body string) (*models.QuoteMessage, error)
	ListMessages(ctx context.Context, quoteID string) ([]models.QuoteMessage, error)
}

// PostgresMessageRepository implements MessageRepository against Postgres.
type PostgresMessageRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository.
func NewPostgresMessageRepository(db *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{DB: db}
}

// CreateMessage appends a message to a quote's thread.
func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, quoteID, senderEmail string, senderRole models.Role, body string) (*models.QuoteMessage, error) {
	msg := models.QuoteMessage{
		ID:          uuid.New().String(),
		QuoteID:     quoteID,
		SenderEmail: senderEmail,
		SenderRole:  senderRole,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}
	insertQuery := `INSERT INTO quote_message (id, quote_id, sender_email, sender_role, body, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(ctx, insertQuery, msg.ID, msg.QuoteID, msg.SenderEmail, msg.SenderRole, msg.Body, msg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns a quote's thread oldest first.
func (r *PostgresMessageRepository) ListMessages(ctx context.Context, quoteID string) ([]models.QuoteMessage, error) {
	query := `SELECT id, quote_id, sender_email, sender_role, body, created_at
	          FROM quote_message WHERE quote_id = $1 ORDER BY created_at ASC`
	rows, err := r.DB.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.QuoteMessage
	for rows.Next() {
		var msg models.QuoteMessage
		if err := rows.Scan(&msg.ID, &msg.QuoteID, &msg.SenderEmail, &msg.SenderRole, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
