package handler

import (
	"net/http"

	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/handler/request"
	"github.com/yumyai/hitview/pkg/model"
	"go.uber.org/zap"
)

// ListHits runs the filter, sort and search selection over one analysis.
func (dbctx *DBContext) ListHits(w http.ResponseWriter, r *http.Request) {

	q, err := request.ParseHitQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := dbctx.Store.Get(r.Context(), r.PathValue("analysis_id"))
	if err != nil {
		dbctx.storeError(w, err)
		return
	}

	logger.Debug("Selecting hits",
		zap.String("analysis_id", a.ID),
		zap.String("sort", q.SortKey.String()),
		zap.Bool("filter_otus", q.FilterOTUs),
		zap.Bool("filter_sequences", q.FilterSequences),
		zap.String("find", q.Find),
		zap.Int("search_ids", len(q.SearchIDs)),
	)

	writeJSON(w, http.StatusOK, dbctx.Pipeline.Run(a, q))
}

// GetHit returns one hit by id, whether or not it is currently selected.
func (dbctx *DBContext) GetHit(w http.ResponseWriter, r *http.Request) {

	a, err := dbctx.Store.Get(r.Context(), r.PathValue("analysis_id"))
	if err != nil {
		dbctx.storeError(w, err)
		return
	}

	hit, ok := dbctx.Pipeline.Item(a, model.ID(r.PathValue("hit_id")))
	if !ok {
		writeError(w, http.StatusNotFound, "hit not found")
		return
	}

	writeJSON(w, http.StatusOK, hit)
}
