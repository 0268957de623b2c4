package queries

import (
	"context"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/user"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	// GetByID enforces ownership: customers only see their own bookings,
	// staff and admins see all.
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the ownership check for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, err
	}

	if view.UserID != actorID && actorRole == user.RoleCustomer {
		// Hidden rather than forbidden: do not leak booking existence.
		return nil, errs.ErrReservationNotFound
	}

	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error) {
	return q.store.FindByUserID(ctx, userID)
}
