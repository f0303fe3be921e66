package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrDuplicateID = errors.New("duplicate result id")

// Analysis is one loaded analysis: the algorithm that produced it, its hits in
// retrieval order and the read statistics of the sample it ran on. A new
// Analysis value replaces the old one wholesale; it is never patched in place.
type Analysis struct {
	ID            string            `json:"id"`
	SampleID      string            `json:"sample_id,omitempty"`
	Algorithm     string            `json:"algorithm"`
	ReadCount     int               `json:"read_count"`
	MaxReadLength int               `json:"max_read_length"`
	CreatedAt     time.Time         `json:"created_at"`
	Results       []*AnalysisResult `json:"results"`
}

func (a *Analysis) Family() Family {
	return FamilyOf(a.Algorithm)
}

// IDs returns result identifiers in retrieval order.
func (a *Analysis) IDs() []ID {
	ids := make([]ID, 0, len(a.Results))
	for _, r := range a.Results {
		ids = append(ids, r.ID)
	}
	return ids
}

// Validate checks that every result has an id and that ids are unique.
func (a *Analysis) Validate() error {
	if a.Algorithm == "" {
		return errors.New("analysis has no algorithm")
	}

	seen := make(map[ID]struct{}, len(a.Results))
	for i, r := range a.Results {
		if r == nil {
			return fmt.Errorf("result %d is null", i)
		}
		if r.ID == NoID {
			return fmt.Errorf("result %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
