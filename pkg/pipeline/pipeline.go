package pipeline

import (
	"strings"

	"github.com/yumyai/hitview/pkg/model"
)

// Query is the UI state the hit list depends on.
type Query struct {
	Toggles
	SortKey model.SortKey
	// Find is free text run through the fuzzy index. When it is blank,
	// SearchIDs (if non-nil) is used as the search result instead.
	Find      string
	SearchIDs []string
	ActiveID  model.ID
}

// View is what the list and detail panes render.
type View struct {
	Matches []*model.AnalysisResult `json:"matches"`
	Active  *model.AnalysisResult   `json:"active"`
	Total   int                     `json:"total"`
}

type Pipeline struct {
	stages Stages
}

func New(stages Stages) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run derives the view of a for q.
func (p *Pipeline) Run(a *model.Analysis, q Query) View {
	filterIDs := p.stages.FilterIDs(a, q.Toggles)
	sortIDs := p.stages.SortIDs(a, q.SortKey)

	searchIDs := q.SearchIDs
	if find := strings.TrimSpace(q.Find); find != "" {
		searchIDs = idStrings(p.stages.Index(a).Query(find))
		if searchIDs == nil {
			searchIDs = []string{}
		}
	}

	matches := combine(a.Family(), p.stages.Lookup(a), filterIDs, searchIDs, sortIDs)

	return View{
		Matches: matches,
		Active:  PickActive(matches, q.ActiveID),
		Total:   len(a.Results),
	}
}

// Item looks up a single result regardless of filter, sort and search.
func (p *Pipeline) Item(a *model.Analysis, id model.ID) (*model.AnalysisResult, bool) {
	return p.stages.Lookup(a).Get(id)
}

func idStrings(ids []model.ID) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
