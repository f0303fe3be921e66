// Package cli holds what the hitview commands do once flags are parsed.
package cli

import (
	"database/sql"
	"fmt"
	"path"

	"github.com/yumyai/hitview/internal/config"
	"github.com/yumyai/hitview/internal/util"
	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/db"
	"github.com/yumyai/hitview/pkg/pipeline"
	"go.uber.org/zap"
)

// App is the storage and selection stack shared by every command.
type App struct {
	Config   config.Config
	DB       *sql.DB
	Store    db.Store
	Pipeline *pipeline.Pipeline
}

func Open(cfg config.Config) (*App, error) {
	dbPath := cfg.DBPath()
	if err := util.EnsureDir(path.Dir(dbPath)); err != nil {
		return nil, err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return nil, err
	}

	analyses, err := db.NewAnalysisStore(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	store, err := db.NewCachedStore(analyses, cfg.CacheSize)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	builder, err := pipeline.NewIndexBuilder(cfg.SearchBackend, pipeline.DefaultFuzzyOptions)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("search backend: %w", err)
	}

	stages, err := pipeline.NewCachedStages(pipeline.NewStages(builder), cfg.CacheSize)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Info("Open database on", zap.String("DB_LOC", dbPath),
		zap.Int("cache_size", cfg.CacheSize),
		zap.String("search_backend", cfg.SearchBackend))

	return &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Pipeline: pipeline.New(stages),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
