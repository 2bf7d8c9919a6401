package analysis

// MarkMaxima flags one index per positive excursion of xs: a cycle opens when
// x becomes positive, follows the running maximum, and closes when x turns
// negative, at which point the index of the maximum is flagged. A cycle still
// open at the end of xs is not flagged.
//
// For an orbit around the origin this samples the trajectory once per
// revolution at its largest x, a fixed orbital phase.
func MarkMaxima(xs []float64) []bool {
	marks := make([]bool, len(xs))

	inCycle := false
	maxX := 0.0
	maxIdx := 0

	for i, x := range xs {
		switch {
		case !inCycle && x > 0:
			inCycle = true
			maxX = x
			maxIdx = i
		case inCycle && x > maxX:
			maxX = x
			maxIdx = i
		case inCycle && x < 0:
			marks[maxIdx] = true
			inCycle = false
		}
	}

	return marks
}
