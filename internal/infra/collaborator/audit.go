package collaborator

import (
	"context"
	"encoding/json"
	"log/slog"

	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/shared"
)

type PostgresAuditSink struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPostgresAuditSink(dbtx db.DBTX, logger *slog.Logger) *PostgresAuditSink {
	return &PostgresAuditSink{db: dbtx, logger: logger}
}

func (s *PostgresAuditSink) Record(ctx context.Context, e shared.AuditEntry) error {
	_, err := s.db.Exec(ctx, `INSERT INTO audit_logs (action, entity_type, entity_id, actor_id, before, after, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Action, e.EntityType, e.EntityID, e.ActorID, e.Before, e.After, e.At)
	if err != nil {
		return infra.MapPgError(s.logger, "failed to insert audit log", err)
	}
	return nil
}

// Publisher is the slice of the Kafka producer the audit sink needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// KafkaAuditSink publishes entries as JSON keyed by entity id, so the
// history of one booking or block stays on one partition.
type KafkaAuditSink struct {
	publisher Publisher
	topic     string
}

func NewKafkaAuditSink(publisher Publisher, topic string) *KafkaAuditSink {
	return &KafkaAuditSink{publisher: publisher, topic: topic}
}

func (s *KafkaAuditSink) Record(ctx context.Context, e shared.AuditEntry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errs.Wrap(err, "failed to encode audit entry")
	}
	headers := map[string]string{
		"action":      e.Action,
		"entity_type": e.EntityType,
	}
	if err := s.publisher.Publish(ctx, s.topic, e.EntityID.String(), payload, headers); err != nil {
		return errs.Wrap(err, "failed to publish audit entry")
	}
	return nil
}

type LogAuditSink struct {
	logger *slog.Logger
}

func NewLogAuditSink(logger *slog.Logger) *LogAuditSink {
	return &LogAuditSink{logger: logger}
}

func (s *LogAuditSink) Record(ctx context.Context, e shared.AuditEntry) error {
	attrs := []any{
		"action", e.Action,
		"entity_type", e.EntityType,
		"entity_id", e.EntityID.String(),
		"at", e.At,
	}
	if e.ActorID != nil {
		attrs = append(attrs, "actor_id", e.ActorID.String())
	}
	if e.Before != nil {
		attrs = append(attrs, "before", e.Before)
	}
	if e.After != nil {
		attrs = append(attrs, "after", e.After)
	}
	s.logger.InfoContext(ctx, "audit", attrs...)
	return nil
}
