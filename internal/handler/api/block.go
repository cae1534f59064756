package api

import (
	"net/http"

	reqdto "reservation-engine/internal/handler/dto/request"
	resdto "reservation-engine/internal/handler/dto/response"
	"reservation-engine/internal/handler/httperr"
	"reservation-engine/internal/handler/middleware"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BlockHandler struct {
	commands commands.UnitBlockCommands
	queries  queries.BlockQueries
}

func NewBlockHandler(cmd commands.UnitBlockCommands, q queries.BlockQueries) *BlockHandler {
	return &BlockHandler{commands: cmd, queries: q}
}

// @Summary Block unit
// @Description Take a unit out of service for an inclusive span of days
// @Tags blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Unit ID"
// @Param request body reqdto.BlockUnitRequest true "Block request"
// @Success 201 {object} resdto.BlockResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /units/{id}/blocks [post]
func (h *BlockHandler) Block(c *gin.Context) {
	unitID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.BlockUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	in, err := req.ToInput(unitID)
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	b, err := h.commands.Block(c.Request.Context(), middleware.GetActor(c), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	view := queries.ToBlockView(b)
	resp, err := resdto.FromBlockView(&view)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Remove block
// @Tags blocks
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /blocks/{id} [delete]
func (h *BlockHandler) Unblock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.commands.Unblock(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List blocks
// @Description Blocks ordered by start date, filtered by unit and overlapping [from, to]
// @Tags blocks
// @Produce json
// @Security BearerAuth
// @Param unit_id query string false "Unit ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param cursor query string false "Cursor from the previous page"
// @Success 200 {object} resdto.BlockPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /blocks [get]
func (h *BlockHandler) List(c *gin.Context) {
	var q reqdto.ListBlocksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	page, err := h.queries.ListBlocks(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	resp, err := resdto.FromBlockPage(page)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
