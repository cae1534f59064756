package response

import (
	"time"

	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

// BlockResponse reports the inclusive day span [StartDate, EndDate].
type BlockResponse struct {
	ID        uuid.UUID `json:"id"`
	UnitID    uuid.UUID `json:"unit_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type BlockPageResponse struct {
	Blocks     []BlockResponse `json:"blocks"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func FromBlockView(v *queries.BlockView) (*BlockResponse, error) {
	var out BlockResponse
	if err := copyView(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}

func FromBlockPage(p *queries.BlockPage) (*BlockPageResponse, error) {
	out := BlockPageResponse{Blocks: []BlockResponse{}}
	if err := copyView(&out, p); err != nil {
		return nil, err
	}
	return &out, nil
}
