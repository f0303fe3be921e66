package pipeline

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"github.com/yumyai/hitview/pkg/model"
)

// SubsequenceBuilder builds fzf-style indexes: the query characters must
// appear in order in a field value. Threshold and Tokenize are not used.
type SubsequenceBuilder struct {
	Options FuzzyOptions
}

func (b SubsequenceBuilder) Build(results []*model.AnalysisResult, keys []string) FuzzyIndex {
	ix := &subsequenceIndex{minLen: b.Options.MinMatchCharLength}
	for _, doc := range collectDocs(results, keys) {
		for _, v := range doc.values {
			ix.entries = append(ix.entries, subsequenceEntry{id: doc.id, value: v})
		}
	}
	return ix
}

type subsequenceEntry struct {
	id    model.ID
	value string
}

type subsequenceIndex struct {
	minLen  int
	entries []subsequenceEntry
}

// fuzzy.Source
func (ix *subsequenceIndex) String(i int) string { return ix.entries[i].value }

func (ix *subsequenceIndex) Len() int { return len(ix.entries) }

func (ix *subsequenceIndex) Query(text string) []model.ID {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return nil
	}
	if utf8.RuneCountInString(query) < ix.minLen {
		return []model.ID{}
	}

	matches := fuzzy.FindFrom(query, ix)

	ids := make([]model.ID, 0, len(matches))
	seen := make(map[model.ID]struct{}, len(matches))
	for _, m := range matches {
		id := ix.entries[m.Index].id
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
