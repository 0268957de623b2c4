package commands

import (
	"context"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/addon"
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/branch"
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/vehicle"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/ports"

	"github.com/google/uuid"
)

// UnitOfWork scopes repository calls to a single transaction. The overlap
// check and the reservation insert always share one Within block so the two
// act as a single decision point.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	// FindByIDForUpdate locks the row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	// CountOverlapping applies the half-open overlap rule against blocking
	// statuses only (pending, confirmed, picked_up).
	CountOverlapping(ctx context.Context, dbtx db.DBTX, vehicleID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int64, error)
}

type VehicleRepository interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*vehicle.Vehicle, error)
	// FindByIDForUpdate serializes concurrent bookings of one vehicle.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*vehicle.Vehicle, error)
	SetReserved(ctx context.Context, tx db.DBTX, id uuid.UUID, reserved bool) error
	SetAvailability(ctx context.Context, tx db.DBTX, id uuid.UUID, available bool) error
}

type BranchRepository interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*branch.Branch, error)
}

type AddOnRepository interface {
	FindByIDs(ctx context.Context, dbtx db.DBTX, ids []uuid.UUID) ([]*addon.AddOn, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type (
	PaymentCard    = ports.PaymentCard
	PaymentResult  = ports.PaymentResult
	PaymentGateway = ports.PaymentGateway
)
