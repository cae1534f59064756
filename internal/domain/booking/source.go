package booking

import "github.com/google/uuid"

// Source is the channel partner a booking came through.
type Source struct {
	ID                uuid.UUID
	Name              string
	CommissionPercent float64
}
