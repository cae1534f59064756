package api

import (
	"context"
	"net/http"

	"reservation-engine/internal/domain/booking"
	reqdto "reservation-engine/internal/handler/dto/request"
	resdto "reservation-engine/internal/handler/dto/response"
	"reservation-engine/internal/handler/httperr"
	"reservation-engine/internal/handler/middleware"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"
	"reservation-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmd commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{commands: cmd, queries: q}
}

// @Summary Create online booking
// @Description Public booking. The unit is assigned by the engine; the booking starts in PENDING_PAYMENT.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateOnline(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	b, err := h.commands.CreateOnline(c.Request.Context(), middleware.GetActor(c), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	respondBooking(c, http.StatusCreated, b)
}

// @Summary Create manual booking
// @Description Staff booking, confirmed on creation. Accepts a booking source and a price override.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ManualBookingRequest true "Manual booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/manual [post]
func (h *BookingHandler) CreateManual(c *gin.Context) {
	var req reqdto.ManualBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}

	b, err := h.commands.CreateManual(c.Request.Context(), middleware.GetActor(c), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	respondBooking(c, http.StatusCreated, b)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.queries.GetBooking(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	resp, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.commands.Confirm)
}

// @Summary Check in
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.commands.CheckIn)
}

// @Summary Check out
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/check-out [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.commands.CheckOut)
}

// @Summary Cancel booking
// @Description Staff may cancel any active booking; a guest may cancel their own booking before check-in.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancel reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortInvalidRequest(c, err)
			return
		}
	}

	b, err := h.commands.Cancel(c.Request.Context(), middleware.GetActor(c), id, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	respondBooking(c, http.StatusOK, b)
}

// @Summary Set booking status
// @Description Manager override of the lifecycle. A terminal booking cannot be moved.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.SetStatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	b, err := h.commands.SetStatus(c.Request.Context(), middleware.GetActor(c), id, booking.Status(req.Status), req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	respondBooking(c, http.StatusOK, b)
}

type transitionFunc func(ctx context.Context, actor shared.Actor, id uuid.UUID) (*booking.Booking, error)

func (h *BookingHandler) transition(c *gin.Context, fn transitionFunc) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := fn(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	respondBooking(c, http.StatusOK, b)
}

func respondBooking(c *gin.Context, status int, b *booking.Booking) {
	view := queries.ToBookingView(b, "")
	resp, err := resdto.FromBookingView(&view)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(status, resp)
}
