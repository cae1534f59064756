package unit

import "errors"

var ErrNoCandidates = errors.New("no candidate units to select from")

// Selector picks the unit to assign from an ordered list of free candidates.
type Selector interface {
	SelectUnit(candidates []*Unit) (*Unit, error)
}

// FirstCandidate takes the head of the list, so assignment follows the
// deterministic availability ordering.
type FirstCandidate struct{}

func (FirstCandidate) SelectUnit(candidates []*Unit) (*Unit, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates[0], nil
}

// LowestFloor prefers units closest to the ground floor; ties keep list order.
type LowestFloor struct{}

func (LowestFloor) SelectUnit(candidates []*Unit) (*Unit, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if abs(c.floor) < abs(best.floor) {
			best = c
		}
	}
	return best, nil
}

// NewSelector maps a configured strategy name to a Selector.
func NewSelector(strategy string) (Selector, error) {
	switch strategy {
	case "", "first":
		return FirstCandidate{}, nil
	case "lowest-floor":
		return LowestFloor{}, nil
	default:
		return nil, errors.New("unknown unit selection strategy: " + strategy)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
