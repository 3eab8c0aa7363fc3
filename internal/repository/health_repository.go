package repository

import (
	"context"
	"database/sql"

	"github.com/jmlester/the-ai-brief/internal/model"
)

type HealthRepository struct {
	db *sql.DB
}

func NewHealthRepository(db *sql.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// SaveResults records one snapshot row per source fetch outcome.
func (r *HealthRepository) SaveResults(ctx context.Context, results []model.SourceFetchResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, result := range results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO source_health(source_id, source_name, status, item_count, message, checked_at)
			VALUES($1, $2, $3, $4, $5, $6)
		`, result.SourceID, result.SourceName, result.Status, result.Count, result.Message, result.FetchedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *HealthRepository) History(ctx context.Context, sourceID string, limit int) ([]model.SourceHealthSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source_id, source_name, status, item_count, message, checked_at
		FROM source_health
		WHERE source_id = $1
		ORDER BY checked_at DESC
		LIMIT $2
	`, sourceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []model.SourceHealthSnapshot
	for rows.Next() {
		var s model.SourceHealthSnapshot
		err := rows.Scan(&s.ID, &s.SourceID, &s.SourceName, &s.Status, &s.Count, &s.Message, &s.CheckedAt)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}
