//go:build unit || e2e

package builder

import (
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserBuilder struct {
	ID       uuid.UUID
	Email    string
	Password string
	Role     string
	IsActive bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Password: "password123",
		Role:     "customer",
		IsActive: true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// BuildAuthorizedUser hashes the plaintext password so login tests exercise
// the real bcrypt comparison.
func (u *UserBuilder) BuildAuthorizedUser() *queries.AuthorizedUser {
	hash, _ := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.MinCost)
	return &queries.AuthorizedUser{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		PasswordHash: string(hash),
		IsActive:     u.IsActive,
	}
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
