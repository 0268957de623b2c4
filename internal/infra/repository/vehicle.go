package repository

import (
	"context"
	"errors"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/vehicle"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VehicleRepository struct{}

func NewVehicleRepository() commands.VehicleRepository {
	return &VehicleRepository{}
}

const vehicleColumns = `
	id, brand, model, license_plate, price_per_day_cents, status, is_available, is_reserved, branch_id`

func (r *VehicleRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*vehicle.Vehicle, error) {
	row := dbtx.QueryRow(ctx, `SELECT`+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row)
}

func (r *VehicleRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*vehicle.Vehicle, error) {
	// Serializes concurrent bookings of the same vehicle: whichever
	// transaction grabs this lock first runs its overlap check alone.
	row := tx.QueryRow(ctx, `SELECT`+vehicleColumns+` FROM vehicles WHERE id = $1 FOR UPDATE`, id)
	return scanVehicle(row)
}

func (r *VehicleRepository) SetReserved(ctx context.Context, tx db.DBTX, id uuid.UUID, reserved bool) error {
	tag, err := tx.Exec(ctx, `UPDATE vehicles SET is_reserved = $2 WHERE id = $1`, id, reserved)
	if err != nil {
		return wrapPgErr("failed to update vehicle reserved flag", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VehicleRepository) SetAvailability(ctx context.Context, tx db.DBTX, id uuid.UUID, available bool) error {
	tag, err := tx.Exec(ctx, `UPDATE vehicles SET is_available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return wrapPgErr("failed to update vehicle availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var (
		id, branchID               uuid.UUID
		brand, model, plate, state string
		priceCents                 int64
		isAvailable, isReserved    bool
	)
	err := row.Scan(&id, &brand, &model, &plate, &priceCents, &state, &isAvailable, &isReserved, &branchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to scan vehicle", err)
	}
	return vehicle.Reconstruct(id, brand, model, plate, priceCents, state, isAvailable, isReserved, branchID), nil
}
