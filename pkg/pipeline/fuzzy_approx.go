package pipeline

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/xrash/smetrics"
	"github.com/yumyai/hitview/pkg/model"
)

// ApproxBuilder builds typo-tolerant indexes. A pattern scores
// edits/len(pattern) at its best position in a field, plus a penalty for how
// far into the field that position is; a field matches when the score is at
// most Threshold. With Tokenize, each query word is also scored against each
// field word and a hit on any word is enough.
type ApproxBuilder struct {
	Options FuzzyOptions
}

func (b ApproxBuilder) Build(results []*model.AnalysisResult, keys []string) FuzzyIndex {
	return &approxIndex{opts: b.Options, docs: collectDocs(results, keys)}
}

type approxIndex struct {
	opts FuzzyOptions
	docs []searchDoc
}

type scoredID struct {
	id    model.ID
	score float64
}

func (ix *approxIndex) Query(text string) []model.ID {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return nil
	}

	var tokens []string
	if ix.opts.Tokenize {
		for _, tok := range tokenize(query) {
			if utf8.RuneCountInString(tok) >= ix.opts.MinMatchCharLength {
				tokens = append(tokens, tok)
			}
		}
	}

	if utf8.RuneCountInString(query) < ix.opts.MinMatchCharLength && len(tokens) == 0 {
		return []model.ID{}
	}

	hits := make([]scoredID, 0)

	for _, doc := range ix.docs {
		best, matched := 1.0, false
		for _, value := range doc.values {
			score, ok := ix.scoreValue(query, tokens, value)
			if ok {
				matched = true
				if score < best {
					best = score
				}
			}
		}
		if matched {
			hits = append(hits, scoredID{id: doc.id, score: best})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	ids := make([]model.ID, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

func (ix *approxIndex) scoreValue(query string, tokens []string, value string) (float64, bool) {
	full := ix.patternScore(query, value)
	matched := full <= ix.opts.Threshold

	if len(tokens) == 0 {
		return full, matched
	}

	words := tokenize(value)
	var sum float64
	for _, tok := range tokens {
		tokBest := 1.0
		for _, w := range words {
			if s := ix.patternScore(tok, w); s < tokBest {
				tokBest = s
			}
		}
		if tokBest <= ix.opts.Threshold {
			matched = true
		}
		sum += tokBest
	}

	return (full + sum/float64(len(tokens))) / 2, matched
}

// patternScore is the best edits/len(pattern) + offset/Distance over every
// window of text as long as pattern, capped at 1.
func (ix *approxIndex) patternScore(pattern, text string) float64 {
	p := []rune(pattern)
	t := []rune(text)
	n := len(p)
	if n == 0 {
		return 1
	}

	if idx := strings.Index(text, pattern); idx >= 0 {
		return capScore(ix.proximity(utf8.RuneCountInString(text[:idx])))
	}

	if len(t) <= n {
		edits := smetrics.WagnerFischer(pattern, text, 1, 1, 1)
		return capScore(float64(edits) / float64(n))
	}

	best := 1.0
	for start := 0; start+n <= len(t); start++ {
		edits := smetrics.WagnerFischer(pattern, string(t[start:start+n]), 1, 1, 1)
		score := float64(edits)/float64(n) + ix.proximity(start)
		if score < best {
			best = score
		}
	}
	return capScore(best)
}

func (ix *approxIndex) proximity(offset int) float64 {
	if ix.opts.Distance <= 0 {
		if offset == 0 {
			return 0
		}
		return 1
	}
	return float64(offset) / float64(ix.opts.Distance)
}

func capScore(s float64) float64 {
	if s > 1 {
		return 1
	}
	return s
}
