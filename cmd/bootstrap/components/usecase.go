package components

import (
	"fmt"

	"reservation-engine/internal/domain/pricing"
	"reservation-engine/internal/domain/unit"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/pkg/config"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"
	"reservation-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCalculator,
	shared.NewQuoter,
	NewSelector,
	NewSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewUnitBlockCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewAvailabilityQueries,
		queries.NewPricingQueries,
		queries.NewBookingQueries,
		queries.NewBlockQueries,
	),
)

func NewCalculator(cfg config.Config) (*pricing.Calculator, error) {
	calc, err := pricing.NewCalculator(pricing.Config{
		TaxRatePercent:     cfg.Booking.TaxRatePercent,
		OverrideFloorRatio: cfg.Booking.OverrideFloorRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid booking pricing config: %w", err)
	}
	return calc, nil
}

func NewSelector(cfg config.Config) (unit.Selector, error) {
	return unit.NewSelector(cfg.Booking.UnitSelection)
}

func NewSettings(cfg config.Config) (commands.Settings, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return commands.Settings{}, err
	}
	return commands.Settings{
		MaxCreateAttempts: cfg.Booking.MaxCreateAttempts,
		Location:          loc,
	}, nil
}
