package components

import (
	"log/slog"

	"reservation-engine/internal/infra/memory"
	"reservation-engine/internal/infra/uow"
	"reservation-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func StorageModule(driver string) fx.Option {
	if driver == DriverMemory {
		return fx.Module("storage/memory",
			fx.Provide(
				memory.NewStore,
				memory.NewUnitOfWork,
			),
			fx.Invoke(func(logger *slog.Logger) {
				logger.Warn("using in-memory storage; data is lost on shutdown")
			}),
		)
	}
	return fx.Module("storage/postgres",
		fx.Provide(
			fx.Annotate(
				uow.NewPostgresUoW,
				fx.As(new(shared.UnitOfWork)),
			),
		),
	)
}
