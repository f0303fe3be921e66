package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yumyai/hitview/pkg/model"

	_ "modernc.org/sqlite"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisRecord is an analysis without its results, for listings.
type AnalysisRecord struct {
	ID            string    `json:"id"`
	SampleID      string    `json:"sample_id,omitempty"`
	Algorithm     string    `json:"algorithm"`
	ReadCount     int       `json:"read_count"`
	MaxReadLength int       `json:"max_read_length"`
	HitCount      int       `json:"hit_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store is where analyses live between requests. Get always hands out a
// complete Analysis; callers never see a partially loaded one.
type Store interface {
	Put(ctx context.Context, a *model.Analysis) error
	Get(ctx context.Context, id string) (*model.Analysis, error)
	List(ctx context.Context) ([]AnalysisRecord, error)
	Delete(ctx context.Context, id string) error
}

// Open opens (creating if needed) the sqlite file at path.
func Open(path string) (*sql.DB, error) {
	// Wait on a locked database instead of failing with SQLITE_BUSY.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	return db, nil
}
