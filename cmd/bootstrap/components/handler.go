package components

import (
	"reservation-engine/internal/handler"
	"reservation-engine/internal/handler/api"
	"reservation-engine/internal/handler/middleware"
	"reservation-engine/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewAvailabilityHandler,
		api.NewPricingHandler,
		api.NewBookingHandler,
		api.NewBlockHandler,
		NewHandlers,
		NewTokenValidator,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	availability *api.AvailabilityHandler,
	pricing *api.PricingHandler,
	booking *api.BookingHandler,
	block *api.BlockHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:         auth,
		Availability: availability,
		Pricing:      pricing,
		Booking:      booking,
		Block:        block,
	}
}

func NewTokenValidator(s *jwt.Service) middleware.TokenValidator {
	return s
}
