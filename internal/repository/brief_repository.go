package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmlester/the-ai-brief/internal/model"
)

type BriefRepository struct {
	db *sql.DB
}

func NewBriefRepository(db *sql.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

func (r *BriefRepository) Save(ctx context.Context, brief model.ArchivedBrief) error {
	sections, err := json.Marshal(brief.Sections)
	if err != nil {
		return err
	}
	sourceResults, err := json.Marshal(brief.SourceResults)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO brief(id, sections, source_results, coverage_summary, model_used, expanded_window, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)
	`, brief.ID, sections, sourceResults, brief.CoverageSummary, brief.ModelUsed, brief.ExpandedWindowUsed, brief.CreatedAt)
	return err
}

func (r *BriefRepository) List(ctx context.Context, limit int) ([]model.ArchivedBrief, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sections, source_results, coverage_summary, model_used, expanded_window, created_at
		FROM brief
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var briefs []model.ArchivedBrief
	for rows.Next() {
		var b model.ArchivedBrief
		var sectionsJSON, resultsJSON []byte
		err := rows.Scan(&b.ID, &sectionsJSON, &resultsJSON, &b.CoverageSummary, &b.ModelUsed, &b.ExpandedWindowUsed, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(sectionsJSON, &b.Sections); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(resultsJSON, &b.SourceResults); err != nil {
			return nil, err
		}
		briefs = append(briefs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return briefs, nil
}

func (r *BriefRepository) GetByID(ctx context.Context, id string) (*model.ArchivedBrief, error) {
	var b model.ArchivedBrief
	var sectionsJSON, resultsJSON []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, sections, source_results, coverage_summary, model_used, expanded_window, created_at
		FROM brief
		WHERE id = $1
	`, id).Scan(&b.ID, &sectionsJSON, &resultsJSON, &b.CoverageSummary, &b.ModelUsed, &b.ExpandedWindowUsed, &b.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(sectionsJSON, &b.Sections); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resultsJSON, &b.SourceResults); err != nil {
		return nil, err
	}

	return &b, nil
}

// Delete reports whether a row was actually removed.
func (r *BriefRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM brief WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
