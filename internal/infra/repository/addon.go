package repository

import (
	"context"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/addon"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"

	"github.com/google/uuid"
)

type AddOnRepository struct{}

func NewAddOnRepository() commands.AddOnRepository {
	return &AddOnRepository{}
}

func (r *AddOnRepository) FindByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) ([]*addon.AddOn, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, name, price_cents, active
		FROM add_ons
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, wrapPgErr("failed to query add-ons", err)
	}
	defer rows.Close()

	var addOns []*addon.AddOn
	for rows.Next() {
		var (
			id         uuid.UUID
			name       string
			priceCents int64
			active     bool
		)
		if err := rows.Scan(&id, &name, &priceCents, &active); err != nil {
			return nil, wrapPgErr("failed to scan add-on", err)
		}
		addOns = append(addOns, addon.Reconstruct(id, name, priceCents, active))
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate add-ons", err)
	}
	return addOns, nil
}
