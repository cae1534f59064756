package components

import (
	"context"

	"reservation-engine/internal/infra/broker/kafka"
	"reservation-engine/internal/infra/collaborator"
	"reservation-engine/internal/pkg/config"
	"reservation-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
	SinkLog      = "log"
)

// CollaboratorModule wires the audit sink and ledger. The postgres ledger
// follows the storage driver; the audit sink is chosen independently.
func CollaboratorModule(sink, driver string) fx.Option {
	return fx.Module("collaborator",
		auditOption(sink),
		ledgerOption(driver),
	)
}

func auditOption(sink string) fx.Option {
	switch sink {
	case SinkPostgres:
		return fx.Provide(
			fx.Annotate(
				collaborator.NewPostgresAuditSink,
				fx.As(new(shared.AuditSink)),
			),
		)
	case SinkKafka:
		return fx.Provide(
			NewKafkaProducer,
			fx.Annotate(
				NewKafkaAuditSink,
				fx.As(new(shared.AuditSink)),
			),
		)
	default:
		return fx.Provide(
			fx.Annotate(
				collaborator.NewLogAuditSink,
				fx.As(new(shared.AuditSink)),
			),
		)
	}
}

func ledgerOption(driver string) fx.Option {
	if driver == DriverPostgres {
		return fx.Provide(
			fx.Annotate(
				collaborator.NewPostgresLedger,
				fx.As(new(shared.Ledger)),
			),
		)
	}
	return fx.Provide(
		fx.Annotate(
			collaborator.NewLogLedger,
			fx.As(new(shared.Ledger)),
		),
	)
}

func NewKafkaProducer(lc fx.Lifecycle, cfg config.Config) (*kafka.Producer, error) {
	producer, err := kafka.NewProducer(cfg.Kafka.Brokers, kafka.NewConfig(cfg.Kafka.ClientID))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})
	return producer, nil
}

func NewKafkaAuditSink(producer *kafka.Producer, cfg config.Config) *collaborator.KafkaAuditSink {
	return collaborator.NewKafkaAuditSink(producer, cfg.Kafka.AuditTopic)
}
