package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/db"
	"github.com/yumyai/hitview/pkg/model"
	"go.uber.org/zap"
)

const maxImportBytes = 256 << 20

// AnalysisDetail is an analysis header plus its summary; hits are served
// separately.
type AnalysisDetail struct {
	ID            string        `json:"id"`
	SampleID      string        `json:"sample_id,omitempty"`
	Algorithm     string        `json:"algorithm"`
	ReadCount     int           `json:"read_count"`
	MaxReadLength int           `json:"max_read_length"`
	CreatedAt     time.Time     `json:"created_at"`
	Summary       model.Summary `json:"summary"`
}

func (dbctx *DBContext) ListAnalyses(w http.ResponseWriter, r *http.Request) {

	records, err := dbctx.Store.List(r.Context())
	if err != nil {
		dbctx.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// ImportAnalysis validates the posted analysis and queues it for storage.
func (dbctx *DBContext) ImportAnalysis(w http.ResponseWriter, r *http.Request) {

	var a model.Analysis

	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := json.NewDecoder(body).Decode(&a); err != nil {
		logger.Debug("Invalid analysis body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := dbctx.ImportJobs.NewJob(a.ID)
	dbctx.ImportJobs.Run(dbctx.Store, job.ID, &a)

	w.Header().Set("Location", "/api/v1/jobs/"+job.ID)
	writeJSON(w, http.StatusAccepted, job)
}

func (dbctx *DBContext) GetImportJob(w http.ResponseWriter, r *http.Request) {

	job, ok := dbctx.ImportJobs.GetJob(r.PathValue("job_id"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (dbctx *DBContext) GetAnalysis(w http.ResponseWriter, r *http.Request) {

	a, err := dbctx.Store.Get(r.Context(), r.PathValue("analysis_id"))
	if err != nil {
		dbctx.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalysisDetail{
		ID:            a.ID,
		SampleID:      a.SampleID,
		Algorithm:     a.Algorithm,
		ReadCount:     a.ReadCount,
		MaxReadLength: a.MaxReadLength,
		CreatedAt:     a.CreatedAt,
		Summary:       model.Summarize(a),
	})
}

func (dbctx *DBContext) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {

	id := r.PathValue("analysis_id")
	if err := dbctx.Store.Delete(r.Context(), id); err != nil {
		dbctx.storeError(w, err)
		return
	}

	logger.Info("Deleted analysis", zap.String("analysis_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (dbctx *DBContext) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrAnalysisNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	logger.Error("Store failure", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
