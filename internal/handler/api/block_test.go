//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/handler/api"
	resdto "reservation-engine/internal/handler/dto/response"
	commandsmock "reservation-engine/internal/mock/commands"
	queriesmock "reservation-engine/internal/mock/queries"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func TestBlockHandler_Block(t *testing.T) {
	router, auth := newTestEngine(t)
	ctrl := gomock.NewController(t)
	cmd := commandsmock.NewMockUnitBlockCommands(ctrl)
	h := api.NewBlockHandler(cmd, queriesmock.NewMockBlockQueries(ctrl))
	router.POST("/units/:id/blocks", auth.RequireAuth(), h.Block)

	staffID := uuid.New()
	token := tokenFor(t, staffID, user.RoleStaff)
	unitID := uuid.New()

	t.Run("success: inclusive end date round-trips", func(t *testing.T) {
		cmd.EXPECT().Block(gomock.Any(), shared.Actor{ID: staffID, Role: user.RoleStaff}, gomock.Any()).
			DoAndReturn(func(_ context.Context, actor shared.Actor, in commands.BlockUnitInput) (*unit.Block, error) {
				assert.Equal(t, commands.BlockUnitInput{
					UnitID: unitID,
					Start:  day("2025-03-10"),
					End:    day("2025-03-12"),
					Reason: "painting",
				}, in)
				return unit.NewBlock(in.UnitID, in.Start, in.End, in.Reason, in.Notes, actor.ID, testNow)
			})

		rec := performRequest(t, router, http.MethodPost, "/units/"+unitID.String()+"/blocks",
			map[string]any{"start_date": "2025-03-10", "end_date": "2025-03-12", "reason": "painting"}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp resdto.BlockResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, unitID, resp.UnitID)
		assert.Equal(t, "2025-03-10", resp.StartDate)
		assert.Equal(t, "2025-03-12", resp.EndDate)
		assert.Equal(t, staffID, resp.CreatedBy)
	})

	t.Run("error: overlapping block is a conflict", func(t *testing.T) {
		cmd.EXPECT().Block(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, shared.ErrUnitUnavailable)

		rec := performRequest(t, router, http.MethodPost, "/units/"+unitID.String()+"/blocks",
			map[string]any{"start_date": "2025-03-10", "end_date": "2025-03-12", "reason": "painting"}, token)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("error: reason is required", func(t *testing.T) {
		rec := performRequest(t, router, http.MethodPost, "/units/"+unitID.String()+"/blocks",
			map[string]any{"start_date": "2025-03-10", "end_date": "2025-03-12"}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBlockHandler_UnblockAndList(t *testing.T) {
	router, auth := newTestEngine(t)
	ctrl := gomock.NewController(t)
	cmd := commandsmock.NewMockUnitBlockCommands(ctrl)
	q := queriesmock.NewMockBlockQueries(ctrl)
	h := api.NewBlockHandler(cmd, q)
	router.DELETE("/blocks/:id", auth.RequireAuth(), h.Unblock)
	router.GET("/blocks", auth.RequireAuth(), h.List)

	token := tokenFor(t, uuid.New(), user.RoleManager)

	t.Run("unblock returns 204", func(t *testing.T) {
		id := uuid.New()
		cmd.EXPECT().Unblock(gomock.Any(), gomock.Any(), id).Return(nil)

		rec := performRequest(t, router, http.MethodDelete, "/blocks/"+id.String(), nil, token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unblock of a missing block is 404", func(t *testing.T) {
		id := uuid.New()
		cmd.EXPECT().Unblock(gomock.Any(), gomock.Any(), id).Return(shared.ErrBlockNotFound)

		rec := performRequest(t, router, http.MethodDelete, "/blocks/"+id.String(), nil, token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list forwards filters and cursor", func(t *testing.T) {
		unitID := uuid.New()
		block := queries.BlockView{ID: uuid.New(), UnitID: unitID, StartDate: day("2025-03-10"), EndDate: day("2025-03-12"), Reason: "painting"}
		q.EXPECT().ListBlocks(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ shared.Actor, f queries.BlockListFilter) (*queries.BlockPage, error) {
				require.NotNil(t, f.UnitID)
				assert.Equal(t, unitID, *f.UnitID)
				require.NotNil(t, f.From)
				assert.Equal(t, day("2025-03-01"), *f.From)
				assert.Nil(t, f.To)
				assert.Equal(t, 10, f.Limit)
				assert.Equal(t, "abc", f.After)
				return &queries.BlockPage{Blocks: []queries.BlockView{block}, NextCursor: "next"}, nil
			})

		rec := performRequest(t, router, http.MethodGet,
			"/blocks?unit_id="+unitID.String()+"&from=2025-03-01&limit=10&cursor=abc", nil, token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp resdto.BlockPageResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Blocks, 1)
		assert.Equal(t, "2025-03-12", resp.Blocks[0].EndDate)
		assert.Equal(t, "next", resp.NextCursor)
	})

	t.Run("list rejects a malformed date", func(t *testing.T) {
		rec := performRequest(t, router, http.MethodGet, "/blocks?from=March", nil, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
