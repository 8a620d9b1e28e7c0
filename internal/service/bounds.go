package service

import "github.com/saadjs/dietgoals/internal/model"

// TrueLower is the goal's lower bound once both raw bounds are ordered.
// Equal bounds have no true lower: they read as an exact upper target.
func TrueLower(g model.Goal) (float64, bool) {
	if g.LowerBound == nil {
		if g.UpperBound == nil {
			return 0, false
		}
		return *g.UpperBound, true
	}
	if g.UpperBound == nil {
		return *g.LowerBound, true
	}
	lower, upper := *g.LowerBound, *g.UpperBound
	if lower == upper {
		return 0, false
	}
	return min(lower, upper), true
}

// TrueUpper mirrors TrueLower but keeps the shared value when bounds are equal.
func TrueUpper(g model.Goal) (float64, bool) {
	if g.UpperBound == nil {
		if g.LowerBound == nil {
			return 0, false
		}
		return *g.LowerBound, true
	}
	if g.LowerBound == nil {
		return *g.UpperBound, true
	}
	return max(*g.LowerBound, *g.UpperBound), true
}

func LargerBound(g model.Goal) (float64, bool) {
	switch {
	case g.LowerBound != nil && g.UpperBound != nil:
		return max(*g.LowerBound, *g.UpperBound), true
	case g.UpperBound != nil:
		return *g.UpperBound, true
	case g.LowerBound != nil:
		return *g.LowerBound, true
	default:
		return 0, false
	}
}

func SmallerBound(g model.Goal) (float64, bool) {
	switch {
	case g.LowerBound != nil && g.UpperBound != nil:
		return min(*g.LowerBound, *g.UpperBound), true
	case g.UpperBound != nil:
		return *g.UpperBound, true
	case g.LowerBound != nil:
		return *g.LowerBound, true
	default:
		return 0, false
	}
}
