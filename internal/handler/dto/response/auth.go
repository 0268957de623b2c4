package response

import (
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	UserID      uuid.UUID `json:"user_id"`
}

type MeResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func FromAuthorizedUser(u *queries.AuthorizedUser) *MeResponse {
	return &MeResponse{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}
