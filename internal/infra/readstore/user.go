package readstore

import (
	"context"
	"errors"

	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) queries.UserReadStore {
	return &UserReadStore{pool: pool}
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUser, error) {
	return s.findBy(ctx, `SELECT id, email, role, password_hash, is_active FROM users WHERE email = $1`, email)
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUser, error) {
	return s.findBy(ctx, `SELECT id, email, role, password_hash, is_active FROM users WHERE id = $1`, id)
}

func (s *UserReadStore) findBy(ctx context.Context, query string, arg any) (*queries.AuthorizedUser, error) {
	var u queries.AuthorizedUser
	err := s.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Role, &u.PasswordHash, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read user", err)
	}
	return &u, nil
}
