package readstore

import (
	"context"

	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BranchReadStore struct {
	pool *pgxpool.Pool
}

func NewBranchReadStore(pool *pgxpool.Pool) queries.BranchReadStore {
	return &BranchReadStore{pool: pool}
}

func (s *BranchReadStore) List(ctx context.Context) ([]*queries.BranchView, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, city, address FROM branches ORDER BY city, name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list branches", err)
	}
	defer rows.Close()

	views := make([]*queries.BranchView, 0)
	for rows.Next() {
		var v queries.BranchView
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.Address); err != nil {
			return nil, infra.WrapRepoErr("failed to scan branch", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate branches", err)
	}
	return views, nil
}
