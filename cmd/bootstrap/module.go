package bootstrap

import (
	"reservation-engine/cmd/bootstrap/components"
	"reservation-engine/internal/pkg/config"

	"go.uber.org/fx"
)

// Module assembles the server graph. Storage and audit backends are picked
// from cfg up front so that an unused backend is never constructed.
func Module(cfg config.Config) fx.Option {
	opts := []fx.Option{
		ConfigModule(cfg),
		LoggerModule,
		JWTModule,
	}
	if cfg.Storage.Driver == components.DriverPostgres {
		opts = append(opts, DBModule)
	}
	return fx.Options(append(opts,
		components.StorageModule(cfg.Storage.Driver),
		components.CollaboratorModule(cfg.Audit.Sink, cfg.Storage.Driver),
		components.UseCaseModule,
		components.HandlerModule,
	)...)
}
