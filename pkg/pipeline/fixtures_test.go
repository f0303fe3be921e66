package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yumyai/hitview/pkg/model"
)

const pathoscopeJSON = `{
	"id": "analysis_p",
	"algorithm": "pathoscope_bowtie",
	"read_count": 1000,
	"max_read_length": 100,
	"results": [
		{"id": "otu_a", "name": "Tobacco mosaic virus", "abbreviation": "TMV", "pi": 0.6, "length": 6400, "depth": 40, "coverage": 0.9},
		{"id": "otu_b", "name": "Cucumber mosaic virus", "abbreviation": "CMV", "pi": 0.001, "length": 8600, "depth": 1.5, "coverage": 0.1},
		{"id": "otu_c", "name": "Potato virus Y", "abbreviation": "PVY", "pi": 0.3, "length": 9700, "depth": 12, "coverage": 0.6},
		{"id": "otu_d", "name": "Tomato spotted wilt virus", "abbreviation": "TSWV", "pi": 0.05, "length": 10000}
	]
}`

const nuvsJSON = `{
	"id": "analysis_n",
	"algorithm": "nuvs",
	"results": [
		{"id": 1, "e": 0.01, "families": ["Picornaviridae"], "names": ["RNA-dependent RNA polymerase"], "annotatedOrfCount": 2, "sequence": {"length": 900}},
		{"id": 2, "annotatedOrfCount": 0, "sequence": {"length": 300}},
		{"id": 3, "e": 1e-8, "families": ["Geminiviridae"], "names": ["replication-associated protein"], "annotatedOrfCount": 2, "sequence": {"length": 1200}},
		{"id": 4, "e": 0.5, "families": "Picornaviridae", "names": ["capsid protein"], "annotatedOrfCount": 1, "sequence": {"length": 900}}
	]
}`

func loadAnalysis(t *testing.T, raw string) *model.Analysis {
	t.Helper()

	var a model.Analysis
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	require.NoError(t, a.Validate())
	return &a
}

func ids(list ...model.ID) []model.ID { return list }

func resultIDs(results []*model.AnalysisResult) []model.ID {
	out := make([]model.ID, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}
