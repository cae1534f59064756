package queries

import (
	"context"
	"time"

	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)

type BlockListFilter struct {
	UnitID *uuid.UUID
	From   *time.Time
	To     *time.Time
	Limit  int
	After  string
}

type BlockPage struct {
	Blocks     []BlockView `json:"blocks"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

type BlockQueries interface {
	ListBlocks(ctx context.Context, actor shared.Actor, filter BlockListFilter) (*BlockPage, error)
}

type blockQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBlockQueries(uow shared.UnitOfWork) BlockQueries {
	return &blockQueriesImpl{uow: uow}
}

// ListBlocks pages through blocks ordered by start date, then id.
func (q *blockQueriesImpl) ListBlocks(ctx context.Context, actor shared.Actor, filter BlockListFilter) (*BlockPage, error) {
	if err := actor.Require(user.RoleStaff); err != nil {
		return nil, err
	}
	limit := ValidateLimit(filter.Limit)

	var (
		afterStart time.Time
		afterID    uuid.UUID
	)
	if filter.After != "" {
		var err error
		afterStart, afterID, err = DecodeAfterCursor(filter.After)
		if err != nil {
			return nil, errs.Wrap(ErrInvalidCursor, err.Error())
		}
	}

	page := &BlockPage{Blocks: []BlockView{}}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		blocks, err := tx.Blocks().List(ctx, shared.BlockFilter{UnitID: filter.UnitID, From: filter.From, To: filter.To})
		if err != nil {
			return shared.RepoErr(err, nil)
		}
		for _, b := range blocks {
			if filter.After != "" && !isAfter(b.StartDate(), b.ID(), afterStart, afterID) {
				continue
			}
			if len(page.Blocks) == limit {
				last := page.Blocks[len(page.Blocks)-1]
				page.NextCursor = EncodeAfterCursor(last.StartDate, last.ID)
				break
			}
			page.Blocks = append(page.Blocks, ToBlockView(b))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func isAfter(start time.Time, id uuid.UUID, afterStart time.Time, afterID uuid.UUID) bool {
	if !start.Equal(afterStart) {
		return start.After(afterStart)
	}
	return id.String() > afterID.String()
}
