package response

import (
	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

func FromUserView(v *queries.UserView) (*UserResponse, error) {
	var out UserResponse
	if err := copyView(&out, v); err != nil {
		return nil, err
	}
	return &out, nil
}
