package handler

import "net/http"

func NewRouter(dbctx *DBContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	mux.HandleFunc("GET /api/v1/health", HealthCheck)

	// Analyses
	mux.HandleFunc("GET /api/v1/analyses", dbctx.ListAnalyses)
	mux.HandleFunc("POST /api/v1/analyses", dbctx.ImportAnalysis)
	mux.HandleFunc("GET /api/v1/analyses/{analysis_id}", dbctx.GetAnalysis)
	mux.HandleFunc("DELETE /api/v1/analyses/{analysis_id}", dbctx.DeleteAnalysis)
	mux.HandleFunc("GET /api/v1/jobs/{job_id}", dbctx.GetImportJob)

	// Hits
	mux.HandleFunc("GET /api/v1/analyses/{analysis_id}/hits", dbctx.ListHits)
	mux.HandleFunc("GET /api/v1/analyses/{analysis_id}/hits/{hit_id}", dbctx.GetHit)

	return mux
}
