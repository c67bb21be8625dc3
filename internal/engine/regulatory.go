package engine

import (
	"github.com/marcus/campaign-compliance/internal/types"
)

// checkRegulatory is Section I: FDCPA, TCPA, and CTIA legal compliance. It
// currently contributes no violations. The stage exists so the pipeline
// shape stays stable when disclosure rules land here.
func checkRegulatory(_ *types.Submission) ([]types.Violation, int) {
	return nil, 0
}
