package repository

import (
	"context"
	"errors"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/branch"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BranchRepository struct{}

func NewBranchRepository() commands.BranchRepository {
	return &BranchRepository{}
}

func (r *BranchRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*branch.Branch, error) {
	var (
		branchID            uuid.UUID
		name, city, address string
	)
	err := dbtx.QueryRow(ctx, `SELECT id, name, city, address FROM branches WHERE id = $1`, id).
		Scan(&branchID, &name, &city, &address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("branch not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to scan branch", err)
	}
	return branch.Reconstruct(branchID, name, city, address), nil
}
