package pipeline

import "github.com/yumyai/hitview/pkg/model"

// Toggles are the filter switches owned by the UI.
type Toggles struct {
	FilterOTUs      bool
	FilterSequences bool
}

// Stages computes the per-analysis intermediate values of the pipeline.
// Returned slices and maps are shared and must not be modified.
type Stages interface {
	FilterIDs(a *model.Analysis, t Toggles) []model.ID
	SortIDs(a *model.Analysis, key model.SortKey) []model.ID
	Index(a *model.Analysis) FuzzyIndex
	Lookup(a *model.Analysis) Lookup
}

type pureStages struct {
	builder IndexBuilder
}

// NewStages recomputes everything on every call.
func NewStages(builder IndexBuilder) Stages {
	return pureStages{builder: builder}
}

func (s pureStages) FilterIDs(a *model.Analysis, t Toggles) []model.ID {
	return Filter(a.Algorithm, a.Results, model.FilterParams{
		FilterOTUs:      t.FilterOTUs,
		FilterSequences: t.FilterSequences,
		MaxReadLength:   a.MaxReadLength,
		ReadCount:       a.ReadCount,
	})
}

func (s pureStages) SortIDs(a *model.Analysis, key model.SortKey) []model.ID {
	return Sort(a.Results, key)
}

func (s pureStages) Index(a *model.Analysis) FuzzyIndex {
	return BuildIndex(s.builder, a.Algorithm, a.Results)
}

func (s pureStages) Lookup(a *model.Analysis) Lookup {
	return NewLookup(a.Results)
}
