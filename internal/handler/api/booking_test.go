//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"reservation-engine/internal/domain/booking"
	"reservation-engine/internal/domain/daterange"
	"reservation-engine/internal/domain/money"
	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/handler/api"
	resdto "reservation-engine/internal/handler/dto/response"
	commandsmock "reservation-engine/internal/mock/commands"
	queriesmock "reservation-engine/internal/mock/queries"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"
	"reservation-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	staffID      uuid.UUID
	staffToken   string
	guestToken   string
}

func (s *BookingHandlerTestSuite) SetupTest() {
	engine, auth := newTestEngine(s.T())
	s.router = engine

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.staffID = uuid.New()
	s.staffToken = tokenFor(s.T(), s.staffID, user.RoleStaff)
	s.guestToken = tokenFor(s.T(), uuid.New(), user.RoleGuest)

	s.router.POST("/bookings", auth.OptionalAuth(), h.CreateOnline)
	authed := s.router.Group("", auth.RequireAuth())
	authed.POST("/bookings/manual", h.CreateManual)
	authed.GET("/bookings/:id", h.Get)
	authed.POST("/bookings/:id/confirm", h.Confirm)
	authed.POST("/bookings/:id/check-in", h.CheckIn)
	authed.POST("/bookings/:id/cancel", h.Cancel)
	authed.PUT("/bookings/:id/status", h.SetStatus)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) newBooking(channel booking.Channel) *booking.Booking {
	stay, err := daterange.Parse("2025-03-01", "2025-03-03")
	s.Require().NoError(err)
	b, _, err := booking.New(booking.NewParams{
		Number:     "BK-20250201-0001",
		Channel:    channel,
		CategoryID: uuid.New(),
		UnitID:     uuid.New(),
		GuestID:    uuid.New(),
		Stay:       stay,
		Adults:     2,
		Price:      pricing.Breakdown{Nights: 2, NightlyRate: 10000, Base: 20000, Subtotal: 20000, Taxable: 20000, TaxRatePercent: 10, TaxAmount: 2000, TotalAmount: 22000},
		Guests:     []booking.Guest{{Name: "Ana", Email: "ana@example.com", IsPrimary: true}},
	}, testNow)
	s.Require().NoError(err)
	return b
}

func validBookingBody() map[string]any {
	return map[string]any{
		"category_id": uuid.New().String(),
		"check_in":    "2025-03-01",
		"check_out":   "2025-03-03",
		"adults":      2,
		"children":    1,
		"coupon_code": "SPRING",
		"guest":       map[string]any{"name": "Ana", "email": "ana@example.com", "phone": "+100"},
		"companions":  []map[string]any{{"name": "Ben"}},
	}
}

func (s *BookingHandlerTestSuite) TestCreateOnline() {
	s.Run("success: anonymous caller gets 201 with the booking", func() {
		body := validBookingBody()
		created := s.newBooking(booking.ChannelOnline)

		s.mockCommands.EXPECT().CreateOnline(gomock.Any(), shared.Anonymous(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ shared.Actor, in commands.CreateBookingInput) (*booking.Booking, error) {
				s.Equal(body["category_id"], in.CategoryID.String())
				s.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), in.CheckIn)
				s.Equal(2, in.Adults)
				s.Equal(1, in.Children)
				s.Equal("SPRING", in.CouponCode)
				s.Equal(commands.GuestInput{Name: "Ana", Email: "ana@example.com", Phone: "+100"}, in.Guest)
				s.Equal([]booking.Guest{{Name: "Ben"}}, in.Companions)
				s.Nil(in.OverrideTotal)
				return created, nil
			})

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "")
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

		var resp resdto.BookingResponse
		decodeBody(s.T(), rec, &resp)
		s.Equal(created.ID(), resp.ID)
		s.Equal("BK-20250201-0001", resp.Number)
		s.Equal("PENDING_PAYMENT", resp.Status)
		s.Equal("2025-03-01", resp.CheckIn)
		s.Equal("2025-03-03", resp.CheckOut)
		s.Equal(int64(22000), resp.Price.TotalAmount)
		s.Require().Len(resp.Guests, 1)
		s.True(resp.Guests[0].IsPrimary)
	})

	s.Run("success: a signed-in guest is passed through as the actor", func() {
		guestID := uuid.New()
		token := tokenFor(s.T(), guestID, user.RoleGuest)
		s.mockCommands.EXPECT().CreateOnline(gomock.Any(), shared.Actor{ID: guestID, Role: user.RoleGuest}, gomock.Any()).
			Return(s.newBooking(booking.ChannelOnline), nil)

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", validBookingBody(), token)
		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	})

	s.Run("error: an invalid token is rejected instead of treated as anonymous", func() {
		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", validBookingBody(), "not-a-token")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 on malformed requests", func() {
		type testCase struct {
			name   string
			mutate func(m map[string]any)
		}

		runCases := func(cases []testCase) {
			for _, tc := range cases {
				s.Run(tc.name, func() {
					body := validBookingBody()
					tc.mutate(body)
					rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "")
					s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
					s.Equal("Invalid request", errorMessage(s.T(), rec))
				})
			}
		}

		runCases([]testCase{
			{name: "missing category", mutate: func(m map[string]any) { delete(m, "category_id") }},
			{name: "check-in not a date", mutate: func(m map[string]any) { m["check_in"] = "03/01/2025" }},
			{name: "no adults", mutate: func(m map[string]any) { m["adults"] = 0 }},
			{name: "negative children", mutate: func(m map[string]any) { m["children"] = -1 }},
			{name: "guest without name", mutate: func(m map[string]any) { m["guest"] = map[string]any{"email": "ana@example.com"} }},
			{name: "guest email malformed", mutate: func(m map[string]any) { m["guest"] = map[string]any{"name": "Ana", "email": "nope"} }},
			{name: "companion without name", mutate: func(m map[string]any) { m["companions"] = []map[string]any{{"phone": "1"}} }},
		})
	})

	s.Run("error: maps engine errors to statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
		}{
			{name: "sold out", err: shared.ErrSoldOut, expectedStatus: http.StatusConflict},
			{name: "retries exhausted", err: errs.ErrConcurrencyConflict, expectedStatus: http.StatusConflict},
			{name: "unknown category", err: shared.ErrCategoryNotFound, expectedStatus: http.StatusNotFound},
			{name: "invalid coupon", err: errs.Wrap(shared.ErrInvalidCoupon, "SPRING"), expectedStatus: http.StatusBadRequest},
			{name: "email required", err: shared.ErrGuestEmailRequired, expectedStatus: http.StatusBadRequest},
			{name: "unclassified", err: errors.New("connection reset"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateOnline(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

				rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings", validBookingBody(), "")
				s.Equal(tc.expectedStatus, rec.Code)
				if tc.expectedStatus == http.StatusInternalServerError {
					s.Equal("Internal server error", errorMessage(s.T(), rec))
				}
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCreateManual() {
	s.Run("success: forwards source and override", func() {
		body := validBookingBody()
		sourceID := uuid.New()
		body["source_id"] = sourceID.String()
		body["override_total"] = 15000
		body["override_reason"] = "loyal guest"

		s.mockCommands.EXPECT().CreateManual(gomock.Any(), shared.Actor{ID: s.staffID, Role: user.RoleStaff}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ shared.Actor, in commands.CreateBookingInput) (*booking.Booking, error) {
				s.Require().NotNil(in.SourceID)
				s.Equal(sourceID, *in.SourceID)
				s.Require().NotNil(in.OverrideTotal)
				s.Equal(money.Money(15000), *in.OverrideTotal)
				s.Equal("loyal guest", in.OverrideReason)
				return s.newBooking(booking.ChannelManual), nil
			})

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/manual", body, s.staffToken)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

		var resp resdto.BookingResponse
		decodeBody(s.T(), rec, &resp)
		s.Equal("CONFIRMED", resp.Status)
	})

	s.Run("error: override without a reason is rejected", func() {
		body := validBookingBody()
		body["override_total"] = 15000

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/manual", body, s.staffToken)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 401 without a token", func() {
		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/manual", validBookingBody(), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 403 when the engine refuses the role", func() {
		s.mockCommands.EXPECT().CreateManual(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(shared.ErrInsufficientRole, "requires role staff"))

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/manual", validBookingBody(), s.guestToken)
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestTransitions() {
	s.Run("success: confirm and check-in use the path id", func() {
		b := s.newBooking(booking.ChannelOnline)
		s.mockCommands.EXPECT().Confirm(gomock.Any(), gomock.Any(), b.ID()).Return(b, nil)
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), gomock.Any(), b.ID()).Return(b, nil)

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/"+b.ID().String()+"/confirm", nil, s.staffToken)
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
		rec = performRequest(s.T(), s.router, http.MethodPost, "/bookings/"+b.ID().String()+"/check-in", nil, s.staffToken)
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("error: invalid transition is a conflict", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), gomock.Any(), id).
			Return(nil, errs.Mark(booking.ErrInvalidTransition, errs.ErrConflict))

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/"+id.String()+"/check-in", nil, s.staffToken)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: malformed id", func() {
		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/123/confirm", nil, s.staffToken)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("Invalid id", errorMessage(s.T(), rec))
	})

	s.Run("success: cancel without a body", func() {
		b := s.newBooking(booking.ChannelOnline)
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), b.ID(), "").Return(b, nil)

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/"+b.ID().String()+"/cancel", nil, s.guestToken)
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})

	s.Run("success: cancel with a reason", func() {
		b := s.newBooking(booking.ChannelOnline)
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any(), b.ID(), "flight cancelled").Return(b, nil)

		rec := performRequest(s.T(), s.router, http.MethodPost, "/bookings/"+b.ID().String()+"/cancel",
			map[string]any{"reason": "flight cancelled"}, s.staffToken)
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	})
}

func (s *BookingHandlerTestSuite) TestSetStatus() {
	type testCase struct {
		name       string
		body       map[string]any
		expectCode int
	}

	runCases := func(cases []testCase) {
		for _, tc := range cases {
			s.Run(tc.name, func() {
				id := uuid.New()
				if tc.expectCode == http.StatusOK {
					s.mockCommands.EXPECT().
						SetStatus(gomock.Any(), gomock.Any(), id, booking.Status(tc.body["status"].(string)), tc.body["reason"]).
						Return(s.newBooking(booking.ChannelManual), nil)
				}
				rec := performRequest(s.T(), s.router, http.MethodPut, "/bookings/"+id.String()+"/status", tc.body, s.staffToken)
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	}

	runCases([]testCase{
		{name: "known status", body: map[string]any{"status": "CHECKED_OUT", "reason": "late fix"}, expectCode: http.StatusOK},
		{name: "unknown status", body: map[string]any{"status": "ARCHIVED", "reason": "x"}, expectCode: http.StatusBadRequest},
		{name: "lower-case status", body: map[string]any{"status": "confirmed", "reason": "x"}, expectCode: http.StatusBadRequest},
		{name: "missing status", body: map[string]any{"reason": "x"}, expectCode: http.StatusBadRequest},
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success: returns the view with unit code", func() {
		b := s.newBooking(booking.ChannelOnline)
		view := queries.ToBookingView(b, "101")
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), shared.Actor{ID: s.staffID, Role: user.RoleStaff}, b.ID()).Return(&view, nil)

		rec := performRequest(s.T(), s.router, http.MethodGet, "/bookings/"+b.ID().String(), nil, s.staffToken)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var resp resdto.BookingResponse
		decodeBody(s.T(), rec, &resp)
		s.Equal("101", resp.UnitCode)
	})

	s.Run("error: not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), gomock.Any(), id).Return(nil, shared.ErrBookingNotFound)

		rec := performRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, s.guestToken)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
