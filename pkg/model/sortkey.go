package model

import "strings"

// SortKey selects the ordering of the hit list.
type SortKey int

const (
	SortNone SortKey = iota
	SortE
	SortOrfs
	SortLength
	SortDepth
	SortCoverage
	SortWeight
)

func (k SortKey) String() string {
	switch k {
	case SortE:
		return "e"
	case SortOrfs:
		return "orfs"
	case SortLength:
		return "length"
	case SortDepth:
		return "depth"
	case SortCoverage:
		return "coverage"
	case SortWeight:
		return "weight"
	default:
		return ""
	}
}

// ParseSortKey never fails: anything unrecognised keeps retrieval order.
func ParseSortKey(raw string) SortKey {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "e":
		return SortE
	case "orfs":
		return SortOrfs
	case "length":
		return SortLength
	case "depth":
		return SortDepth
	case "coverage":
		return SortCoverage
	case "weight":
		return SortWeight
	default:
		return SortNone
	}
}

// Descending reports whether larger values come first.
func (k SortKey) Descending() bool {
	switch k {
	case SortOrfs, SortLength, SortCoverage:
		return true
	default:
		return false
	}
}

// Value extracts the sort field of r. ok is false when the field is absent or
// the key has no field.
func (k SortKey) Value(r *AnalysisResult) (v float64, ok bool) {
	switch k {
	case SortE:
		return floatOf(r.E)
	case SortOrfs:
		return intOf(r.AnnotatedOrfCount)
	case SortLength:
		n, ok := r.SequenceLength()
		return float64(n), ok
	case SortDepth:
		return floatOf(r.Depth)
	case SortCoverage:
		return floatOf(r.Coverage)
	case SortWeight:
		return floatOf(r.Pi)
	default:
		return 0, false
	}
}

func floatOf(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func intOf(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}
