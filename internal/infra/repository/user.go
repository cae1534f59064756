package repository

import (
	"context"
	"log/slog"
	"time"

	"reservation-engine/internal/domain/user"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/infra/db"
	"reservation-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, name, phone, password_hash, role, is_guest, is_active, created_at`

type UserRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserRepository(dbtx db.DBTX, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: dbtx, logger: logger}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	if email.IsZero() {
		return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "user not found", nil)
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.Value())
	u, err := scanUser(row)
	if err != nil {
		return nil, infra.MapPgError(r.logger, "failed to find user by email", err)
	}
	return u, nil
}

// Create fails with DUPLICATE_KEY when the email is already registered.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	var email pgtype.Text
	if !u.Email().IsZero() {
		email = pgconv.StringToPgtype(u.Email().Value())
	}
	_, err := r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID(), email, u.Name(), u.Phone(), u.PasswordHash(), string(u.Role()),
		u.IsGuest(), u.IsActive(), u.CreatedAt())
	if err != nil {
		return infra.MapPgError(r.logger, "failed to create user", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                      uuid.UUID
		email                   pgtype.Text
		name, phone, hash, role string
		isGuest, isActive       bool
		createdAt               time.Time
	)
	if err := row.Scan(&id, &email, &name, &phone, &hash, &role, &isGuest, &isActive, &createdAt); err != nil {
		return nil, err
	}

	var addr user.Email
	if email.Valid {
		parsed, err := user.NewEmail(email.String)
		if err != nil {
			return nil, err
		}
		addr = parsed
	}
	r, err := user.NewRole(role)
	if err != nil {
		return nil, err
	}
	return user.Reconstruct(id, addr, name, phone, hash, r, isGuest, isActive, createdAt), nil
}
