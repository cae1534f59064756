package response

import (
	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type CategoryResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	ExtraAdultCents  int64     `json:"extra_adult_cents"`
	ExtraChildCents  int64     `json:"extra_child_cents"`
	IncludedAdults   int       `json:"included_adults"`
	IncludedChildren int       `json:"included_children"`
	MaxAdults        int       `json:"max_adults"`
	MaxChildren      int       `json:"max_children"`
}

type UnitResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Floor  int       `json:"floor"`
	Status string    `json:"status"`
}

type AvailabilityResponse struct {
	Category       CategoryResponse `json:"category"`
	CheckIn        string           `json:"check_in"`
	CheckOut       string           `json:"check_out"`
	Nights         int              `json:"nights"`
	Available      bool             `json:"available"`
	AvailableCount int              `json:"available_count"`
	Units          []UnitResponse   `json:"units"`
}

type CategoryAvailabilityResponse struct {
	Category       CategoryResponse `json:"category"`
	AvailableCount int              `json:"available_count"`
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	out := AvailabilityResponse{Units: []UnitResponse{}}
	if err := copyView(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromCategoryAvailabilityViews(vs []queries.CategoryAvailabilityView) ([]CategoryAvailabilityResponse, error) {
	out := make([]CategoryAvailabilityResponse, 0, len(vs))
	if err := copyView(&out, &vs); err != nil {
		return nil, err
	}
	return out, nil
}
