package shared

import (
	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

// Actor is the caller of an engine operation. The zero value is an anonymous visitor.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func Anonymous() Actor {
	return Actor{}
}

func (a Actor) IsAnonymous() bool {
	return a.ID == uuid.Nil
}

// IDPtr returns nil for anonymous actors, as stored in audit entries.
func (a Actor) IDPtr() *uuid.UUID {
	if a.IsAnonymous() {
		return nil
	}
	id := a.ID
	return &id
}

// Require fails with ErrInsufficientRole unless the actor holds min or above.
func (a Actor) Require(min user.Role) error {
	if a.IsAnonymous() || !a.Role.AtLeast(min) {
		return errs.Wrap(ErrInsufficientRole, "requires role "+min.String())
	}
	return nil
}
