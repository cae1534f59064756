package unit

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
	StatusBlocked     Status = "BLOCKED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusBlocked:
		return true
	default:
		return false
	}
}

// ResolveStatus derives the cached status from interval truth.
// A checked-in guest wins over a block covering the same day.
func ResolveStatus(occupied, blockedToday bool) Status {
	switch {
	case occupied:
		return StatusOccupied
	case blockedToday:
		return StatusBlocked
	default:
		return StatusAvailable
	}
}
