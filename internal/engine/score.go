package engine

// approvalThreshold is the minimum score for an approvable verdict. Approval
// additionally requires an empty violation list.
const approvalThreshold = 99

// confidenceFor maps a score to a coarse confidence band. This is a fixed
// lookup table, not a continuous function.
func confidenceFor(score int) float64 {
	switch {
	case score >= 99:
		return 0.99
	case score >= 90:
		return 0.85
	case score >= 80:
		return 0.70
	default:
		return 0.50
	}
}
