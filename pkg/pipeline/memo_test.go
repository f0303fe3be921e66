package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/hitview/pkg/model"
)

type countingStages struct {
	next                           Stages
	filters, sorts, index, lookups int
}

func (c *countingStages) FilterIDs(a *model.Analysis, t Toggles) []model.ID {
	c.filters++
	return c.next.FilterIDs(a, t)
}

func (c *countingStages) SortIDs(a *model.Analysis, key model.SortKey) []model.ID {
	c.sorts++
	return c.next.SortIDs(a, key)
}

func (c *countingStages) Index(a *model.Analysis) FuzzyIndex {
	c.index++
	return c.next.Index(a)
}

func (c *countingStages) Lookup(a *model.Analysis) Lookup {
	c.lookups++
	return c.next.Lookup(a)
}

func TestCachedStagesRecomputeOnlyChangedInputs(t *testing.T) {
	counter := &countingStages{next: NewStages(ApproxBuilder{Options: DefaultFuzzyOptions})}
	stages, err := NewCachedStages(counter, 8)
	require.NoError(t, err)
	pl := New(stages)

	a := loadAnalysis(t, pathoscopeJSON)

	pl.Run(a, Query{Find: "virus"})
	pl.Run(a, Query{Find: "mosaic"})
	assert.Equal(t, 1, counter.filters)
	assert.Equal(t, 1, counter.sorts)
	assert.Equal(t, 1, counter.index)
	assert.Equal(t, 1, counter.lookups)

	// Changing the sort key only recomputes the sort stage.
	pl.Run(a, Query{SortKey: model.SortDepth})
	assert.Equal(t, 1, counter.filters)
	assert.Equal(t, 2, counter.sorts)

	// Changing the toggles only recomputes the filter stage.
	pl.Run(a, Query{SortKey: model.SortDepth, Toggles: Toggles{FilterOTUs: true}})
	assert.Equal(t, 2, counter.filters)
	assert.Equal(t, 2, counter.sorts)

	// A replaced analysis recomputes everything.
	b := loadAnalysis(t, pathoscopeJSON)
	pl.Run(b, Query{Find: "virus"})
	assert.Equal(t, 3, counter.filters)
	assert.Equal(t, 3, counter.sorts)
	assert.Equal(t, 2, counter.index)
	assert.Equal(t, 2, counter.lookups)

	stages.(*CachedStages).Purge()
	pl.Run(b, Query{Find: "virus"})
	assert.Equal(t, 3, counter.index)
}

func TestCachedStagesDisabled(t *testing.T) {
	pure := NewStages(ApproxBuilder{Options: DefaultFuzzyOptions})

	stages, err := NewCachedStages(pure, 0)
	require.NoError(t, err)
	assert.Equal(t, pure, stages)
}
