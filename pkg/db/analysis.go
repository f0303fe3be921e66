package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yumyai/hitview/pkg/model"
)

// AnalysisStore keeps analyses in sqlite, results as one JSON document per
// analysis.
type AnalysisStore struct {
	db *sql.DB
}

func NewAnalysisStore(db *sql.DB) (*AnalysisStore, error) {
	store := &AnalysisStore{db: db}
	if err := store.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *AnalysisStore) createSchema() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS analyses (
			analysis_id     TEXT PRIMARY KEY,
			sample_id       TEXT NOT NULL DEFAULT '',
			algorithm       TEXT NOT NULL,
			read_count      INTEGER NOT NULL DEFAULT 0,
			max_read_length INTEGER NOT NULL DEFAULT 0,
			hit_count       INTEGER NOT NULL DEFAULT 0,
			created_at      TEXT NOT NULL,
			results         TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_sample ON analyses(sample_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Put validates a and stores it, replacing any analysis with the same id.
// A missing id is filled with a new UUID and a zero CreatedAt with now.
func (s *AnalysisStore) Put(ctx context.Context, a *model.Analysis) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("invalid analysis: %w", err)
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	results, err := json.Marshal(a.Results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	const q = `
		INSERT OR REPLACE INTO analyses
			(analysis_id, sample_id, algorithm, read_count, max_read_length, hit_count, created_at, results)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, q,
		a.ID, a.SampleID, a.Algorithm, a.ReadCount, a.MaxReadLength,
		len(a.Results), a.CreatedAt.Format(time.RFC3339Nano), string(results))
	if err != nil {
		return fmt.Errorf("failed to store analysis %s: %w", a.ID, err)
	}

	return nil
}

func (s *AnalysisStore) Get(ctx context.Context, id string) (*model.Analysis, error) {
	const q = `
		SELECT analysis_id, sample_id, algorithm, read_count, max_read_length, created_at, results
		FROM analyses WHERE analysis_id = ?
	`

	var (
		a         model.Analysis
		createdAt string
		results   string
	)
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.SampleID, &a.Algorithm, &a.ReadCount, &a.MaxReadLength, &createdAt, &results)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis %s: %w", id, err)
	}

	if a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at on analysis %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(results), &a.Results); err != nil {
		return nil, fmt.Errorf("failed to decode results of analysis %s: %w", id, err)
	}

	return &a, nil
}

// List returns every analysis, newest first.
func (s *AnalysisStore) List(ctx context.Context) ([]AnalysisRecord, error) {
	const q = `
		SELECT analysis_id, sample_id, algorithm, read_count, max_read_length, hit_count, created_at
		FROM analyses ORDER BY created_at DESC, analysis_id
	`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := make([]AnalysisRecord, 0)
	for rows.Next() {
		var (
			r         AnalysisRecord
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.SampleID, &r.Algorithm, &r.ReadCount, &r.MaxReadLength, &r.HitCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("bad created_at on analysis %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analysis rows error: %w", err)
	}

	return records, nil
}

func (s *AnalysisStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE analysis_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrAnalysisNotFound, id)
	}
	return nil
}
