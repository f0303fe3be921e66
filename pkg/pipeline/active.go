package pipeline

import "github.com/yumyai/hitview/pkg/model"

// PickActive returns the match whose id is activeID, falling back to the first
// match. It returns nil only when matches is empty.
func PickActive(matches []*model.AnalysisResult, activeID model.ID) *model.AnalysisResult {
	if activeID != model.NoID {
		for _, r := range matches {
			if r.ID == activeID {
				return r
			}
		}
	}

	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
