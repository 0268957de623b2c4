package readstore

import (
	"context"
	"errors"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleReadStore struct {
	pool *pgxpool.Pool
}

func NewVehicleReadStore(pool *pgxpool.Pool) queries.VehicleReadStore {
	return &VehicleReadStore{pool: pool}
}

const vehicleViewColumns = `
	id, brand, model, license_plate, price_per_day_cents, status, is_available, is_reserved, branch_id`

func (s *VehicleReadStore) List(ctx context.Context) ([]*queries.VehicleView, error) {
	rows, err := s.pool.Query(ctx, `SELECT`+vehicleViewColumns+` FROM vehicles ORDER BY brand, model`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	defer rows.Close()

	views := make([]*queries.VehicleView, 0)
	for rows.Next() {
		var v queries.VehicleView
		err := rows.Scan(
			&v.ID, &v.Brand, &v.Model, &v.LicensePlate, &v.PricePerDayCents,
			&v.Status, &v.IsAvailable, &v.IsReserved, &v.BranchID,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicles", err)
	}
	return views, nil
}

func (s *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	var v queries.VehicleView
	err := s.pool.QueryRow(ctx, `SELECT`+vehicleViewColumns+` FROM vehicles WHERE id = $1`, id).Scan(
		&v.ID, &v.Brand, &v.Model, &v.LicensePlate, &v.PricePerDayCents,
		&v.Status, &v.IsAvailable, &v.IsReserved, &v.BranchID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read vehicle", err)
	}
	return &v, nil
}

func (s *VehicleReadStore) CountOverlapping(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (int64, error) {
	blocking := reservation.BlockingStatuses()
	statuses := make([]string, len(blocking))
	for i, st := range blocking {
		statuses[i] = st.String()
	}

	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE vehicle_id = $1
		  AND status = ANY($2)
		  AND start_date < $4
		  AND end_date > $3`, vehicleID, statuses, start, end).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping reservations", err)
	}
	return count, nil
}
