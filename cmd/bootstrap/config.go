package bootstrap

import (
	"reservation-engine/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies a configuration loaded before the graph is built,
// since the storage and audit modules are chosen from it.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
