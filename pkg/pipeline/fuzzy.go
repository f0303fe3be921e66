package pipeline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yumyai/hitview/pkg/model"
)

const (
	BackendApprox      = "approx"
	BackendSubsequence = "subsequence"
)

// FuzzyOptions tune matching. Threshold runs from 0 (exact) to 1 (anything).
type FuzzyOptions struct {
	MinMatchCharLength int
	Threshold          float64
	Tokenize           bool
	// Distance scales how much a match far from the start of a field costs.
	Distance int
}

var DefaultFuzzyOptions = FuzzyOptions{
	MinMatchCharLength: 2,
	Threshold:          0.3,
	Tokenize:           true,
	Distance:           100,
}

// FuzzyIndex answers free-text queries with result ids ranked best first.
// An empty query returns nil, meaning "no search constraint".
type FuzzyIndex interface {
	Query(text string) []model.ID
}

// IndexBuilder builds a FuzzyIndex over the given key fields of results.
type IndexBuilder interface {
	Build(results []*model.AnalysisResult, keys []string) FuzzyIndex
}

func NewIndexBuilder(backend string, opts FuzzyOptions) (IndexBuilder, error) {
	switch backend {
	case "", BackendApprox:
		return ApproxBuilder{Options: opts}, nil
	case BackendSubsequence:
		return SubsequenceBuilder{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unknown search backend %q", backend)
	}
}

// BuildIndex indexes the search keys of the algorithm's family.
func BuildIndex(builder IndexBuilder, algorithm string, results []*model.AnalysisResult) FuzzyIndex {
	return builder.Build(results, model.FamilyOf(algorithm).SearchKeys())
}

// searchDoc is the lowercased searchable text of one result.
type searchDoc struct {
	id     model.ID
	values []string
}

func collectDocs(results []*model.AnalysisResult, keys []string) []searchDoc {
	docs := make([]searchDoc, 0, len(results))
	for _, r := range results {
		doc := searchDoc{id: r.ID}
		for _, key := range keys {
			for _, v := range r.SearchValues(key) {
				if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
					doc.values = append(doc.values, v)
				}
			}
		}
		docs = append(docs, doc)
	}
	return docs
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
}
