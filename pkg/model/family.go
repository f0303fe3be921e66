package model

const (
	AlgorithmPathoscopeBowtie = "pathoscope_bowtie"
	AlgorithmNuVs             = "nuvs"
)

// Calibration factor of the Pathoscope minimum-evidence filter.
const pathoscopeLengthFactor = 0.8

// FilterParams are the inputs a family filter may look at.
type FilterParams struct {
	FilterOTUs      bool
	FilterSequences bool
	MaxReadLength   int
	ReadCount       int
}

// Family groups the algorithm-specific behaviour of the hit list: which fields
// are searchable, which hits survive the filter toggles, and what type result
// identifiers have.
type Family interface {
	Name() string
	SearchKeys() []string
	// Active reports whether Keep can reject anything under f.
	Active(f FilterParams) bool
	Keep(r *AnalysisResult, f FilterParams) bool
	// NormalizeSearchID converts an id produced by the search index to the
	// form used by this family's results. ok is false when it cannot match.
	NormalizeSearchID(raw string) (id ID, ok bool)
}

// FamilyOf maps an algorithm name to its family. Unknown names get the
// generic family.
func FamilyOf(algorithm string) Family {
	switch algorithm {
	case AlgorithmPathoscopeBowtie:
		return Pathoscope{}
	case AlgorithmNuVs:
		return NuVs{}
	default:
		return Generic{Algorithm: algorithm}
	}
}

type Pathoscope struct{}

func (Pathoscope) Name() string { return AlgorithmPathoscopeBowtie }

func (Pathoscope) SearchKeys() []string { return []string{"name", "abbreviation"} }

func (Pathoscope) Active(f FilterParams) bool { return f.FilterOTUs }

// Keep drops an OTU when pi * readCount < length * 0.8 / maxReadLength. A zero
// max read length or a missing pi/length never excludes.
func (p Pathoscope) Keep(r *AnalysisResult, f FilterParams) bool {
	if !p.Active(f) || f.MaxReadLength == 0 || r.Pi == nil || r.Length == nil {
		return true
	}

	evidence := *r.Pi * float64(f.ReadCount)
	threshold := float64(*r.Length) * pathoscopeLengthFactor / float64(f.MaxReadLength)

	return !(evidence < threshold)
}

func (Pathoscope) NormalizeSearchID(raw string) (ID, bool) { return ID(raw), true }

type NuVs struct{}

func (NuVs) Name() string { return AlgorithmNuVs }

func (NuVs) SearchKeys() []string { return []string{"families", "names"} }

func (NuVs) Active(f FilterParams) bool { return f.FilterSequences }

// Keep drops sequences without an annotation e-value when FilterSequences is set.
func (n NuVs) Keep(r *AnalysisResult, f FilterParams) bool {
	if !n.Active(f) {
		return true
	}
	return r.E != nil
}

func (NuVs) NormalizeSearchID(raw string) (ID, bool) { return NumericID(raw) }

// Generic covers every other algorithm: no filtering, string ids.
type Generic struct {
	Algorithm string
}

func (g Generic) Name() string { return g.Algorithm }

func (Generic) SearchKeys() []string { return []string{"name", "abbreviation"} }

func (Generic) Active(FilterParams) bool { return false }

func (Generic) Keep(*AnalysisResult, FilterParams) bool { return true }

func (Generic) NormalizeSearchID(raw string) (ID, bool) { return ID(raw), true }
