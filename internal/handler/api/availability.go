package api

import (
	"net/http"

	reqdto "reservation-engine/internal/handler/dto/request"
	resdto "reservation-engine/internal/handler/dto/response"
	"reservation-engine/internal/handler/httperr"
	"reservation-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	queries queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: q}
}

// @Summary Check category availability
// @Description List the units of a category that are free for the whole stay
// @Tags availability
// @Produce json
// @Param category_id query string true "Room category ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	categoryID, checkIn, checkOut, err := q.Parse()
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	view, err := h.queries.Check(c.Request.Context(), categoryID, checkIn, checkOut)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Search availability
// @Description Count free units per category that fits the party
// @Tags availability
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param adults query int false "Adults" default(1)
// @Param children query int false "Children" default(0)
// @Success 200 {array} resdto.CategoryAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /availability/search [get]
func (h *AvailabilityHandler) Search(c *gin.Context) {
	var q reqdto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	checkIn, checkOut, err := q.Stay()
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	views, err := h.queries.Search(c.Request.Context(), checkIn, checkOut, q.Adults, q.Children)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	resp, err := resdto.FromCategoryAvailabilityViews(views)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
