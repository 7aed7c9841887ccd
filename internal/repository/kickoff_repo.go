package repository

import (
	"context"
	"time"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KickoffRepository provides access to persisted kickoff task rows.
type KickoffRepository interface {
	ListTasks(ctx context.Context, quoteID, supplierID string) (map[string]models.KickoffTask, error)
	SetTask(ctx context.Context, quoteID, supplierID, taskKey string, completed bool) error
}

// PostgresKickoffRepository implements KickoffRepository against Postgres.
type PostgresKickoffRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresKickoffRepository creates a new PostgresKickoffRepository.
func NewPostgresKickoffRepository(db *pgxpool.Pool) *PostgresKickoffRepository {
	return &PostgresKickoffRepository{DB: db}
}

// ListTasks returns the persisted task rows keyed by task key. Tasks without
// a row are absent from the map and treated as pending by the caller.
func (r *PostgresKickoffRepository) ListTasks(ctx context.Context, quoteID, supplierID string) (map[string]models.KickoffTask, error) {
	query := `SELECT task_key, completed, completed_at FROM kickoff_task
	          WHERE quote_id = $1 AND supplier_id = $2`
	rows, err := r.DB.Query(ctx, query, quoteID, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make(map[string]models.KickoffTask)
	for rows.Next() {
		var task models.KickoffTask
		if err := rows.Scan(&task.TaskKey, &task.Completed, &task.CompletedAt); err != nil {
			return nil, err
		}
		tasks[task.TaskKey] = task
	}
	return tasks, rows.Err()
}

// SetTask upserts the completion state for one checklist item.
func (r *PostgresKickoffRepository) SetTask(ctx context.Context, quoteID, supplierID, taskKey string, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := time.Now().UTC()
		completedAt = &now
	}
	query := `INSERT INTO kickoff_task (id, quote_id, supplier_id, task_key, completed, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (quote_id, supplier_id, task_key)
	          DO UPDATE SET completed = EXCLUDED.completed, completed_at = EXCLUDED.completed_at`
	_, err := r.DB.Exec(ctx, query, uuid.New().String(), quoteID, supplierID, taskKey, completed, completedAt)
	return err
}
