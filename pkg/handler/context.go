package handler

// DI for all handlers.

import (
	"github.com/yumyai/hitview/pkg/db"
	"github.com/yumyai/hitview/pkg/pipeline"
)

type DBContext struct {
	Store      db.Store
	Pipeline   *pipeline.Pipeline
	ImportJobs *ImportJobManager
}
