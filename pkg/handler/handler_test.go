package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/hitview/pkg/db"
	"github.com/yumyai/hitview/pkg/model"
	"github.com/yumyai/hitview/pkg/pipeline"
)

const pathoscopeJSON = `{
	"id": "analysis_p",
	"sample_id": "sample_1",
	"algorithm": "pathoscope_bowtie",
	"read_count": 1000,
	"max_read_length": 100,
	"results": [
		{"id": "otu_a", "name": "Tobacco mosaic virus", "abbreviation": "TMV", "pi": 0.6, "length": 6400, "depth": 40, "coverage": 0.9},
		{"id": "otu_b", "name": "Cucumber mosaic virus", "abbreviation": "CMV", "pi": 0.001, "length": 8600, "depth": 1.5, "coverage": 0.1},
		{"id": "otu_c", "name": "Potato virus Y", "abbreviation": "PVY", "pi": 0.3, "length": 9700, "depth": 12, "coverage": 0.6},
		{"id": "otu_d", "name": "Tomato spotted wilt virus", "abbreviation": "TSWV", "pi": 0.05, "length": 10000}
	]
}`

type hitsResponse struct {
	Matches []struct {
		ID string `json:"id"`
	} `json:"matches"`
	Active *struct {
		ID string `json:"id"`
	} `json:"active"`
	Total int `json:"total"`
}

func (h hitsResponse) ids() []string {
	out := make([]string, len(h.Matches))
	for i, m := range h.Matches {
		out[i] = m.ID
	}
	return out
}

func newTestServer(t *testing.T) (*DBContext, http.Handler) {
	t.Helper()

	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "analyses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	analyses, err := db.NewAnalysisStore(sqlDB)
	require.NoError(t, err)
	store, err := db.NewCachedStore(analyses, 8)
	require.NoError(t, err)

	stages, err := pipeline.NewCachedStages(
		pipeline.NewStages(pipeline.ApproxBuilder{Options: pipeline.DefaultFuzzyOptions}), 8)
	require.NoError(t, err)

	dbctx := &DBContext{
		Store:      store,
		Pipeline:   pipeline.New(stages),
		ImportJobs: NewImportJobManager(),
	}
	return dbctx, NewRouter(dbctx)
}

func seed(t *testing.T, dbctx *DBContext) {
	t.Helper()

	var a model.Analysis
	require.NoError(t, json.Unmarshal([]byte(pathoscopeJSON), &a))
	require.NoError(t, dbctx.Store.Put(context.Background(), &a))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Health)
}

func TestListHits(t *testing.T) {
	dbctx, h := newTestServer(t)
	seed(t, dbctx)

	tests := []struct {
		name       string
		query      string
		wantIDs    []string
		wantActive string
	}{
		{"defaults", "", []string{"otu_a", "otu_b", "otu_c", "otu_d"}, "otu_a"},
		{"filter otus", "?filter_otus=true", []string{"otu_a", "otu_c"}, "otu_a"},
		{"sort coverage", "?sort=coverage&active=otu_c", []string{"otu_d", "otu_a", "otu_c", "otu_b"}, "otu_c"},
		{"find", "?find=potatoe", []string{"otu_c"}, "otu_c"},
		{"search ids", "?search_ids=otu_d,otu_b", []string{"otu_b", "otu_d"}, "otu_b"},
		{"empty search", "?search_ids=", []string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, "/api/v1/analyses/analysis_p/hits"+tt.query, "")
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var resp hitsResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

			assert.Equal(t, tt.wantIDs, resp.ids())
			assert.Equal(t, 4, resp.Total)
			if tt.wantActive == "" {
				assert.Nil(t, resp.Active)
			} else {
				require.NotNil(t, resp.Active)
				assert.Equal(t, tt.wantActive, resp.Active.ID)
			}
		})
	}
}

func TestListHitsErrors(t *testing.T) {
	dbctx, h := newTestServer(t)
	seed(t, dbctx)

	rr := do(t, h, http.MethodGet, "/api/v1/analyses/analysis_p/hits?filter_otus=perhaps", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/v1/analyses/missing/hits", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetHit(t *testing.T) {
	dbctx, h := newTestServer(t)
	seed(t, dbctx)

	// otu_b is filtered out of the list but still reachable by id.
	rr := do(t, h, http.MethodGet, "/api/v1/analyses/analysis_p/hits/otu_b", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var hit model.AnalysisResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&hit))
	assert.Equal(t, "Cucumber mosaic virus", hit.Name)

	rr = do(t, h, http.MethodGet, "/api/v1/analyses/analysis_p/hits/otu_z", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetAnalysis(t *testing.T) {
	dbctx, h := newTestServer(t)
	seed(t, dbctx)

	rr := do(t, h, http.MethodGet, "/api/v1/analyses/analysis_p", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var detail AnalysisDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&detail))
	assert.Equal(t, "pathoscope_bowtie", detail.Algorithm)
	assert.Equal(t, 4, detail.Summary.HitCount)
	require.NotNil(t, detail.Summary.Coverage)
	assert.Equal(t, 3, detail.Summary.Coverage.Count)
}

func TestImportListDelete(t *testing.T) {
	dbctx, h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/api/v1/analyses", pathoscopeJSON)
	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())

	var job ImportJob
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&job))
	assert.Equal(t, "/api/v1/jobs/"+job.ID, rr.Header().Get("Location"))

	require.Eventually(t, func() bool {
		got, ok := dbctx.ImportJobs.GetJob(job.ID)
		return ok && got.Status == ImportJobCompleted
	}, 5*time.Second, 10*time.Millisecond)

	rr = do(t, h, http.MethodGet, "/api/v1/jobs/"+job.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&job))
	assert.Equal(t, "analysis_p", job.AnalysisID)

	rr = do(t, h, http.MethodGet, "/api/v1/analyses", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var records []db.AnalysisRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].HitCount)

	rr = do(t, h, http.MethodDelete, "/api/v1/analyses/analysis_p", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/v1/analyses/analysis_p", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestImportRejectsInvalid(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/api/v1/analyses", `{"algorithm": "nuvs", "results": [{"id": 1}, {"id": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/analyses", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/v1/jobs/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
