package model

import (
	"github.com/montanaflynn/stats"
)

// FieldSummary describes one numeric field over the hits that carry it.
type FieldSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// Summary is the header information shown above a hit list.
type Summary struct {
	Algorithm         string        `json:"algorithm"`
	HitCount          int           `json:"hit_count"`
	ReadCount         int           `json:"read_count"`
	MaxSequenceLength int           `json:"max_sequence_length"`
	Pi                *FieldSummary `json:"pi,omitempty"`
	Depth             *FieldSummary `json:"depth,omitempty"`
	Coverage          *FieldSummary `json:"coverage,omitempty"`
}

func Summarize(a *Analysis) Summary {
	s := Summary{
		Algorithm: a.Algorithm,
		HitCount:  len(a.Results),
		ReadCount: a.ReadCount,
	}

	var pi, depth, coverage []float64

	for _, r := range a.Results {
		if n, ok := r.SequenceLength(); ok && n > s.MaxSequenceLength {
			s.MaxSequenceLength = n
		}
		if r.Pi != nil {
			pi = append(pi, *r.Pi)
		}
		if r.Depth != nil {
			depth = append(depth, *r.Depth)
		}
		if r.Coverage != nil {
			coverage = append(coverage, *r.Coverage)
		}
	}

	s.Pi = summarizeField(pi)
	s.Depth = summarizeField(depth)
	s.Coverage = summarizeField(coverage)

	return s
}

func summarizeField(values []float64) *FieldSummary {
	if len(values) == 0 {
		return nil
	}

	// stats only errors on empty input, checked above.
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	max, _ := stats.Max(values)

	return &FieldSummary{
		Count:  len(values),
		Mean:   mean,
		Median: median,
		Max:    max,
	}
}
