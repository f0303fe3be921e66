package pipeline

import "github.com/yumyai/hitview/pkg/model"

// Lookup gives random access to the results of one analysis by id, whatever
// the current filter or sort.
type Lookup map[model.ID]*model.AnalysisResult

func NewLookup(results []*model.AnalysisResult) Lookup {
	l := make(Lookup, len(results))
	for _, r := range results {
		// first occurrence wins
		if _, ok := l[r.ID]; !ok {
			l[r.ID] = r
		}
	}
	return l
}

func (l Lookup) Get(id model.ID) (*model.AnalysisResult, bool) {
	r, ok := l[id]
	return r, ok
}
