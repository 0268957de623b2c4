package queries

import (
	"context"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/vehicle"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"

	"github.com/google/uuid"
)

type AvailabilityResult struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

type VehicleQueries interface {
	List(ctx context.Context) ([]*VehicleView, error)
	// CheckAvailability is the read-side availability checker: pure query,
	// no side effects. The booking transaction re-runs the same check.
	CheckAvailability(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (*AvailabilityResult, error)
}

type VehicleReadStore interface {
	List(ctx context.Context) ([]*VehicleView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	CountOverlapping(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (int64, error)
}

type vehicleQueriesImpl struct {
	store VehicleReadStore
}

func NewVehicleQueries(store VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{store: store}
}

func (q *vehicleQueriesImpl) List(ctx context.Context) ([]*VehicleView, error) {
	return q.store.List(ctx)
}

func (q *vehicleQueriesImpl) CheckAvailability(ctx context.Context, vehicleID uuid.UUID, start, end time.Time) (*AvailabilityResult, error) {
	if !start.Before(end) {
		return nil, errs.ErrInvalidDateRange
	}

	view, err := q.store.FindByID(ctx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, err
	}

	result := &AvailabilityResult{
		VehicleID: vehicleID,
		StartDate: start,
		EndDate:   end,
	}

	if view.Status == vehicle.StatusMaintenance {
		result.Reason = "vehicle under maintenance"
		return result, nil
	}
	if !view.IsAvailable {
		result.Reason = "vehicle unavailable"
		return result, nil
	}

	overlapping, err := q.store.CountOverlapping(ctx, vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		result.Reason = "dates already booked"
		return result, nil
	}

	result.Available = true
	return result, nil
}
