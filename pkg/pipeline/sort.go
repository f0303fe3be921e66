package pipeline

import (
	"sort"

	"github.com/yumyai/hitview/pkg/model"
)

// Sort returns every result id ordered by key. The sort is stable and an
// absent field counts as greater than any value, so such results go last for
// ascending keys and first for descending ones. SortNone keeps input order.
func Sort(results []*model.AnalysisResult, key model.SortKey) []model.ID {
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}

	if key != model.SortNone {
		desc := key.Descending()
		sort.SliceStable(order, func(i, j int) bool {
			a, aok := key.Value(results[order[i]])
			b, bok := key.Value(results[order[j]])
			if desc {
				return greater(a, aok, b, bok)
			}
			return greater(b, bok, a, aok)
		})
	}

	ids := make([]model.ID, len(order))
	for i, idx := range order {
		ids[i] = results[idx].ID
	}
	return ids
}

// greater reports a > b where a missing value is the greatest.
func greater(a float64, aok bool, b float64, bok bool) bool {
	switch {
	case !aok:
		return bok
	case !bok:
		return false
	default:
		return a > b
	}
}
