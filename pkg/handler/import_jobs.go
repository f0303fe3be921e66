package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/db"
	"github.com/yumyai/hitview/pkg/model"
	"go.uber.org/zap"
)

// ImportJobStatus represents the lifecycle of an analysis import.
type ImportJobStatus string

const (
	ImportJobQueued    ImportJobStatus = "queued"
	ImportJobRunning   ImportJobStatus = "running"
	ImportJobCompleted ImportJobStatus = "completed"
	ImportJobFailed    ImportJobStatus = "failed"
)

// ImportJob tracks one analysis being written to the store.
type ImportJob struct {
	ID         string          `json:"job_id"`
	AnalysisID string          `json:"analysis_id,omitempty"`
	Status     ImportJobStatus `json:"status"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ImportJobManager stores import job states indexed by job ID.
type ImportJobManager struct {
	mu   sync.RWMutex
	jobs map[string]*ImportJob
}

// NewImportJobManager constructs a job manager with no jobs.
func NewImportJobManager() *ImportJobManager {
	return &ImportJobManager{
		jobs: make(map[string]*ImportJob),
	}
}

// NewJob registers a queued job for the given analysis id (which may still be
// empty when the store assigns it).
func (m *ImportJobManager) NewJob(analysisID string) ImportJob {
	now := time.Now()
	job := &ImportJob{
		ID:         uuid.NewString(),
		AnalysisID: analysisID,
		Status:     ImportJobQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()
	return *job
}

// SetRunning marks the job as running.
func (m *ImportJobManager) SetRunning(jobID string) {
	m.updateJob(jobID, func(job *ImportJob) {
		job.Status = ImportJobRunning
	})
}

// CompleteJob records the id the analysis was stored under.
func (m *ImportJobManager) CompleteJob(jobID string, analysisID string) {
	m.updateJob(jobID, func(job *ImportJob) {
		job.Status = ImportJobCompleted
		job.AnalysisID = analysisID
	})
}

// FailJob records a failure and attaches a user-facing error message.
func (m *ImportJobManager) FailJob(jobID string, err error) {
	m.updateJob(jobID, func(job *ImportJob) {
		job.Status = ImportJobFailed
		job.Error = err.Error()
	})
}

// GetJob returns a snapshot of the job.
func (m *ImportJobManager) GetJob(jobID string) (ImportJob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return ImportJob{}, false
	}
	return *job, true
}

// Run stores a in the background under the job's id. The job outlives the
// request that queued it, so it does not use the request context.
func (m *ImportJobManager) Run(store db.Store, jobID string, a *model.Analysis) {
	go func() {
		m.SetRunning(jobID)

		if err := store.Put(context.Background(), a); err != nil {
			logger.Error("Import failed", zap.String("job_id", jobID), zap.Error(err))
			m.FailJob(jobID, err)
			return
		}

		logger.Info("Imported analysis",
			zap.String("job_id", jobID),
			zap.String("analysis_id", a.ID),
			zap.Int("hits", len(a.Results)))
		m.CompleteJob(jobID, a.ID)
	}()
}

func (m *ImportJobManager) updateJob(jobID string, update func(job *ImportJob)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return
	}

	update(job)
	job.UpdatedAt = time.Now()
}
