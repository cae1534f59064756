package commands

import (
	"context"
	"log/slog"

	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/pkg/jwt"
	"reservation-engine/internal/pkg/password"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.Mark(errs.New("invalid email or password"), errs.ErrUnauthorized)
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, email, pass string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	logger     *slog.Logger
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates staff accounts. Guest accounts created by public
// bookings carry an unknown credential and always fail.
func (a *authCommandsImpl) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	credentials, err := user.NewCredentials(email, pass)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var account *user.User
	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByEmail(ctx, credentials.Email())
		if err != nil {
			return err
		}
		account = found
		return nil
	})
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, shared.RepoErr(err, nil)
	}

	if !account.CanLogin(credentials.Password().Value(), password.ComparePassword) {
		a.logger.Info("login rejected", "user_id", account.ID())
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(account.ID(), account.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      account.ID(),
		Role:        account.Role(),
		AccessToken: token,
	}, nil
}
