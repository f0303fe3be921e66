package pipeline

import "github.com/yumyai/hitview/pkg/model"

// Filter returns the ids of results that survive the algorithm's filter, in
// input order.
func Filter(algorithm string, results []*model.AnalysisResult, params model.FilterParams) []model.ID {
	family := model.FamilyOf(algorithm)

	ids := make([]model.ID, 0, len(results))
	for _, r := range results {
		if family.Keep(r, params) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
