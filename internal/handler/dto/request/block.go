package request

import (
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

// BlockUnitRequest covers the inclusive day span [StartDate, EndDate].
type BlockUnitRequest struct {
	StartDate string `json:"start_date" binding:"required,date"`
	EndDate   string `json:"end_date" binding:"required,date"`
	Reason    string `json:"reason" binding:"required,max=200"`
	Notes     string `json:"notes" binding:"omitempty,max=2000"`
}

func (r BlockUnitRequest) ToInput(unitID uuid.UUID) (commands.BlockUnitInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return commands.BlockUnitInput{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return commands.BlockUnitInput{}, err
	}
	return commands.BlockUnitInput{
		UnitID: unitID,
		Start:  start,
		End:    end,
		Reason: r.Reason,
		Notes:  r.Notes,
	}, nil
}

type ListBlocksQuery struct {
	UnitID string `form:"unit_id" binding:"omitempty,uuid"`
	From   string `form:"from" binding:"omitempty,date"`
	To     string `form:"to" binding:"omitempty,date"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Cursor string `form:"cursor"`
}

func (q ListBlocksQuery) ToFilter() (queries.BlockListFilter, error) {
	filter := queries.BlockListFilter{Limit: q.Limit, After: q.Cursor}
	if q.UnitID != "" {
		id, err := uuid.Parse(q.UnitID)
		if err != nil {
			return queries.BlockListFilter{}, err
		}
		filter.UnitID = &id
	}
	var err error
	if filter.From, err = parseOptionalDate(q.From); err != nil {
		return queries.BlockListFilter{}, err
	}
	if filter.To, err = parseOptionalDate(q.To); err != nil {
		return queries.BlockListFilter{}, err
	}
	return filter, nil
}
