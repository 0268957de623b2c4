package commands

import (
	"context"
	"encoding/json"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	reqdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/request"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/clock"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"

	"github.com/google/uuid"
)

type PayReservationResult struct {
	Message           string
	ReservationID     uuid.UUID
	ReservationNumber string
	Status            string
	TotalCostCents    int64
	Payment           reservation.PaymentInfo
}

type PaymentCommands interface {
	// Pay settles a pending reservation. Approved payments confirm it;
	// rejected or provider-pending ones leave it pending and payable. An
	// expired payment window cancels the reservation on the spot.
	Pay(ctx context.Context, reservationID, actorID uuid.UUID, req reqdto.PaymentRequest) (*PayReservationResult, error)
}

type paymentCommandsImpl struct {
	uow              UnitOfWork
	reservationRepo  ReservationRepository
	vehicleRepo      VehicleRepository
	notificationRepo NotificationRepository
	gateway          PaymentGateway
	clock            clock.Clock
}

func NewPaymentCommands(
	uow UnitOfWork,
	reservationRepo ReservationRepository,
	vehicleRepo VehicleRepository,
	notificationRepo NotificationRepository,
	gateway PaymentGateway,
	clock clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:              uow,
		reservationRepo:  reservationRepo,
		vehicleRepo:      vehicleRepo,
		notificationRepo: notificationRepo,
		gateway:          gateway,
		clock:            clock,
	}
}

func (p *paymentCommandsImpl) Pay(
	ctx context.Context,
	reservationID, actorID uuid.UUID,
	req reqdto.PaymentRequest,
) (*PayReservationResult, error) {
	// Pre-flight read without locks: ownership, status and the payment
	// window are checked before any money moves.
	var amountCents int64
	err := p.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		res, err := p.reservationRepo.FindByID(ctx, dbtx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if res.UserID() != actorID {
			return errs.ErrReservationNotFound
		}
		if res.Status() != reservation.StatusPending {
			return errs.ErrReservationNotPending
		}
		amountCents = res.TotalCost().Cents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if expired, err := p.expireIfWindowLapsed(ctx, reservationID); err != nil {
		return nil, err
	} else if expired {
		return nil, errs.ErrPaymentWindowExpired
	}

	// The gateway call happens outside any transaction so a slow provider
	// never holds row locks.
	result, err := p.gateway.ProcessPayment(ctx, req.ToCard(), amountCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPaymentGateway)
	}

	payment := reservation.PaymentInfo{
		TransactionID: result.TransactionID,
		Method:        req.Method,
		Status:        result.Status,
	}

	var out *PayReservationResult
	err = p.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := p.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// A concurrent payment may have won the race between the pre-flight
		// read and here; the second attempt is rejected, not double-charged
		// state-wise.
		if res.Status() != reservation.StatusPending {
			return errs.ErrReservationNotPending
		}

		now := p.clock.Now()
		switch result.Status {
		case reservation.PaymentApproved:
			if err := res.ConfirmPayment(payment, now); err != nil {
				return errs.Mark(err, errs.ErrInvalidStatusChange)
			}
			if err := p.vehicleRepo.SetReserved(ctx, tx, res.VehicleID(), true); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if err := p.enqueueVoucher(ctx, tx, res); err != nil {
				return err
			}
		default:
			// Rejected and gateway-pending attempts are recorded but do not
			// confirm anything; the reservation stays payable.
			if err := res.RecordPaymentAttempt(payment, now); err != nil {
				return errs.Mark(err, errs.ErrInvalidStatusChange)
			}
		}

		if err := p.reservationRepo.Update(ctx, tx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		out = &PayReservationResult{
			ReservationID:     res.ID(),
			ReservationNumber: res.Number(),
			Status:            res.Status().String(),
			TotalCostCents:    res.TotalCost().Cents(),
			Payment:           payment,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch result.Status {
	case reservation.PaymentApproved:
		out.Message = "payment approved"
	case reservation.PaymentPending:
		// A provider-pending result never confirms the booking; the caller
		// sees a failed attempt and the reservation stays payable.
		out.Message = "payment pending confirmation by the provider"
		return out, errs.ErrPaymentNotApproved
	case reservation.PaymentRejected:
		out.Message = result.Message
		return out, errs.ErrPaymentDeclined
	}
	return out, nil
}

// expireIfWindowLapsed applies lazy expiry: there is no background sweeper,
// so an unpaid reservation past its window is cancelled at the moment someone
// touches it.
func (p *paymentCommandsImpl) expireIfWindowLapsed(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	now := p.clock.Now()
	expired := false

	err := p.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := p.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !res.PaymentWindowExpired(now) {
			return nil
		}

		if err := res.Expire(now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStatusChange)
		}
		if err := p.reservationRepo.Update(ctx, tx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := p.vehicleRepo.SetReserved(ctx, tx, res.VehicleID(), false); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		expired = true
		return nil
	})
	return expired, err
}

func (p *paymentCommandsImpl) enqueueVoucher(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id":     res.ID(),
		"reservation_number": res.Number(),
		"total_cost_cents":   res.TotalCost().Cents(),
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := p.notificationRepo.CreateJob(ctx, tx, "email", "voucher", payload, p.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
