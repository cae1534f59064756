package shared

import (
	"context"
	"time"

	"reservation-engine/internal/domain/money"

	"github.com/google/uuid"
)

//go:generate mockgen -source=types.go -destination=../../mock/shared/collaborators_mock.go -package=sharedmock

// AuditEntry is one recorded state change.
type AuditEntry struct {
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	ActorID    *uuid.UUID     `json:"actor_id,omitempty"`
	Before     map[string]any `json:"before,omitempty"`
	After      map[string]any `json:"after,omitempty"`
	At         time.Time      `json:"at"`
}

// AuditSink is best effort. Callers log failures and move on.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type IncomeEntry struct {
	Amount        money.Money
	Category      string
	Description   string
	BookingID     uuid.UUID
	BookingNumber string
	At            time.Time
}

type Ledger interface {
	RecordIncome(ctx context.Context, entry IncomeEntry) error
}
