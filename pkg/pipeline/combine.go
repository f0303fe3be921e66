package pipeline

import (
	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/model"
	"go.uber.org/zap"
)

// Combine intersects the sorted, filtered and (when searchIDs is non-nil)
// searched ids and returns the matching records in sort order. Search ids are
// converted to the algorithm's id form first. A nil searchIDs means no search;
// an empty one matches nothing.
func Combine(algorithm string, results []*model.AnalysisResult, filterIDs []model.ID, searchIDs []string, sortIDs []model.ID) []*model.AnalysisResult {
	return combine(model.FamilyOf(algorithm), NewLookup(results), filterIDs, searchIDs, sortIDs)
}

func combine(family model.Family, lookup Lookup, filterIDs []model.ID, searchIDs []string, sortIDs []model.ID) []*model.AnalysisResult {
	var matchIDs []model.ID

	if searchIDs != nil {
		matchIDs = Intersect(sortIDs, filterIDs, normalizeSearchIDs(family, searchIDs))
	} else {
		matchIDs = Intersect(sortIDs, filterIDs)
	}

	matches := make([]*model.AnalysisResult, 0, len(matchIDs))
	for _, id := range matchIDs {
		r, ok := lookup.Get(id)
		if !ok {
			logger.Debug("Matched id has no record, dropping", zap.String("id", id.String()), zap.String("algorithm", family.Name()))
			continue
		}
		matches = append(matches, r)
	}
	return matches
}

func normalizeSearchIDs(family model.Family, raw []string) []model.ID {
	ids := make([]model.ID, 0, len(raw))
	for _, s := range raw {
		if id, ok := family.NormalizeSearchID(s); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Intersect returns the distinct ids of first that appear in every one of
// others, keeping the order of first.
func Intersect(first []model.ID, others ...[]model.ID) []model.ID {
	sets := make([]map[model.ID]struct{}, len(others))
	for i, other := range others {
		set := make(map[model.ID]struct{}, len(other))
		for _, id := range other {
			set[id] = struct{}{}
		}
		sets[i] = set
	}

	out := make([]model.ID, 0, len(first))
	seen := make(map[model.ID]struct{}, len(first))

next:
	for _, id := range first {
		if _, dup := seen[id]; dup {
			continue
		}
		for _, set := range sets {
			if _, ok := set[id]; !ok {
				continue next
			}
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
