package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortKey(t *testing.T) {
	for _, key := range []SortKey{SortE, SortOrfs, SortLength, SortDepth, SortCoverage, SortWeight} {
		assert.Equal(t, key, ParseSortKey(key.String()))
	}

	assert.Equal(t, SortNone, ParseSortKey(""))
	assert.Equal(t, SortNone, ParseSortKey("pi"))
	assert.Equal(t, SortCoverage, ParseSortKey(" Coverage "))
}

func TestSortKeyDirection(t *testing.T) {
	assert.False(t, SortE.Descending())
	assert.True(t, SortOrfs.Descending())
	assert.True(t, SortLength.Descending())
	assert.False(t, SortDepth.Descending())
	assert.True(t, SortCoverage.Descending())
	assert.False(t, SortWeight.Descending())
}

func TestSortKeyValue(t *testing.T) {
	r := &AnalysisResult{
		E:                 fptr(1e-5),
		AnnotatedOrfCount: iptr(3),
		Sequence:          &Sequence{Length: iptr(900)},
		Depth:             fptr(12.5),
		Coverage:          fptr(0.75),
		Pi:                fptr(0.2),
	}

	tests := []struct {
		key  SortKey
		want float64
	}{
		{SortE, 1e-5},
		{SortOrfs, 3},
		{SortLength, 900},
		{SortDepth, 12.5},
		{SortCoverage, 0.75},
		{SortWeight, 0.2},
	}

	for _, tt := range tests {
		v, ok := tt.key.Value(r)
		assert.True(t, ok, tt.key.String())
		assert.Equal(t, tt.want, v, tt.key.String())
	}

	_, ok := SortNone.Value(r)
	assert.False(t, ok)

	_, ok = SortE.Value(&AnalysisResult{})
	assert.False(t, ok)
}
