package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Terms is a searchable text field that arrives either as one string or as a
// list of strings.
type Terms []string

func (t *Terms) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Terms{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*t = list
	return nil
}

// Sequence is either an object carrying a length or the raw residue string
// of an assembled sequence; in both cases Length is set. Other keys of the
// object form are kept and written back out.
type Sequence struct {
	Residues string `json:"-"`
	Length   *int   `json:"length,omitempty"`

	extra map[string]json.RawMessage
}

func (s *Sequence) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var residues string
		if err := json.Unmarshal(data, &residues); err != nil {
			return err
		}
		n := len(residues)
		*s = Sequence{Residues: residues, Length: &n}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("expected sequence string or object: %w", err)
	}

	*s = Sequence{}
	if raw, ok := obj["length"]; ok {
		if err := json.Unmarshal(raw, &s.Length); err != nil {
			return fmt.Errorf("sequence length: %w", err)
		}
		delete(obj, "length")
	}
	if len(obj) > 0 {
		s.extra = obj
	}
	return nil
}

func (s Sequence) MarshalJSON() ([]byte, error) {
	if s.Residues != "" {
		return json.Marshal(s.Residues)
	}

	out := make(map[string]json.RawMessage, len(s.extra)+1)
	for key, value := range s.extra {
		out[key] = value
	}
	if s.Length != nil {
		length, err := json.Marshal(*s.Length)
		if err != nil {
			return nil, err
		}
		out["length"] = length
	}
	return json.Marshal(out)
}

// AnalysisResult is one hit: an OTU for Pathoscope, an assembled sequence for
// NuVs. Absent numeric fields are nil.
type AnalysisResult struct {
	ID           ID     `json:"id"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`

	// Pathoscope
	Pi       *float64 `json:"pi,omitempty"`
	Length   *int     `json:"length,omitempty"`
	Depth    *float64 `json:"depth,omitempty"`
	Coverage *float64 `json:"coverage,omitempty"`

	// NuVs
	Sequence          *Sequence `json:"sequence,omitempty"`
	AnnotatedOrfCount *int      `json:"annotatedOrfCount,omitempty"`
	E                 *float64  `json:"e,omitempty"`
	Families          Terms     `json:"families,omitempty"`
	Names             Terms     `json:"names,omitempty"`

	extra map[string]json.RawMessage
}

var knownResultKeys = []string{
	"id", "name", "abbreviation", "pi", "length", "depth", "coverage",
	"sequence", "annotatedOrfCount", "e", "families", "names",
}

type resultFields AnalysisResult

func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var fields resultFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range knownResultKeys {
		delete(all, key)
	}

	*r = AnalysisResult(fields)
	if len(all) > 0 {
		r.extra = all
	}
	return nil
}

// MarshalJSON writes the known fields plus everything else the record was
// decoded with (isolates, ORFs, ...).
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(resultFields(r))
	if err != nil {
		return nil, err
	}
	if len(r.extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(r.extra)+len(knownResultKeys))
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for key, value := range r.extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// Extra returns a field that has no typed counterpart on AnalysisResult.
func (r *AnalysisResult) Extra(key string) (json.RawMessage, bool) {
	v, ok := r.extra[key]
	return v, ok
}

// SearchValues returns the strings indexed for a search key.
func (r *AnalysisResult) SearchValues(key string) []string {
	switch key {
	case "name":
		return nonEmpty(r.Name)
	case "abbreviation":
		return nonEmpty(r.Abbreviation)
	case "families":
		return r.Families
	case "names":
		return r.Names
	default:
		return nil
	}
}

// SequenceLength is sequence.length, if known.
func (r *AnalysisResult) SequenceLength() (int, bool) {
	if r.Sequence == nil || r.Sequence.Length == nil {
		return 0, false
	}
	return *r.Sequence.Length, true
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
