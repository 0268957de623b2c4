package commands

import (
	"context"
	"encoding/json"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/branch"
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/user"
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/vehicle"
	reqdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/request"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/clock"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationResult struct {
	Reservation *queries.ReservationView
}

type RefundType string

const (
	RefundFull    RefundType = "full"
	RefundPartial RefundType = "partial"
	RefundNone    RefundType = "none"
)

type CancelReservationResult struct {
	ReservationID     uuid.UUID
	ReservationNumber string
	Status            string
	RefundAmountCents int64
	RefundType        RefundType
}

type ReservationCommands interface {
	// Create is the primary deferred-pay flow: the booking is persisted as
	// pending and must be paid within the payment window.
	Create(ctx context.Context, req reqdto.CreateReservationRequest, userID uuid.UUID) (*CreateReservationResult, error)
	// Checkout is the alternate pay-at-creation flow: a rejected payment
	// persists nothing.
	Checkout(ctx context.Context, req reqdto.CheckoutReservationRequest, userID uuid.UUID) (*CreateReservationResult, error)
	Cancel(ctx context.Context, id, actorID uuid.UUID, actorRole user.Role) (*CancelReservationResult, error)
	PickUp(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	Return(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow              UnitOfWork
	reservationRepo  ReservationRepository
	vehicleRepo      VehicleRepository
	branchRepo       BranchRepository
	addOnRepo        AddOnRepository
	notificationRepo NotificationRepository
	gateway          PaymentGateway
	priceCalc        reservation.PriceCalculator
	reservationQs    queries.ReservationQueries
	clock            clock.Clock
}

func NewReservationCommands(
	uow UnitOfWork,
	reservationRepo ReservationRepository,
	vehicleRepo VehicleRepository,
	branchRepo BranchRepository,
	addOnRepo AddOnRepository,
	notificationRepo NotificationRepository,
	gateway PaymentGateway,
	priceCalc reservation.PriceCalculator,
	reservationQs queries.ReservationQueries,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:              uow,
		reservationRepo:  reservationRepo,
		vehicleRepo:      vehicleRepo,
		branchRepo:       branchRepo,
		addOnRepo:        addOnRepo,
		notificationRepo: notificationRepo,
		gateway:          gateway,
		priceCalc:        priceCalc,
		reservationQs:    reservationQs,
		clock:            clock,
	}
}

// bookingDraft carries the validated pieces of a booking between the
// validation step and persistence.
type bookingDraft struct {
	vehicle   *vehicle.Vehicle
	dates     reservation.DateRange
	totalCost reservation.Money
	addOns    []reservation.AddOnLine
}

func (r *reservationCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	userID uuid.UUID,
) (*CreateReservationResult, error) {
	dates, err := reservation.NewDateRange(req.StartDate, req.EndDate, r.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	var reservationID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		draft, err := r.validateBooking(ctx, tx, req.VehicleID, req.PickupBranchID, req.ReturnBranchID, req.AddOns, dates)
		if err != nil {
			return err
		}

		res, err := reservation.NewReservation(
			userID, draft.vehicle.ID(), req.PickupBranchID, req.ReturnBranchID,
			draft.dates, draft.totalCost, draft.addOns, r.clock.Now(),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := r.persistNewReservation(ctx, tx, res, "reservation_created"); err != nil {
			return err
		}

		reservationID = res.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQs.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CreateReservationResult{Reservation: view}, nil
}

func (r *reservationCommandsImpl) Checkout(
	ctx context.Context,
	req reqdto.CheckoutReservationRequest,
	userID uuid.UUID,
) (*CreateReservationResult, error) {
	dates, err := reservation.NewDateRange(req.StartDate, req.EndDate, r.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	// First pass validates and prices without holding any locks across the
	// gateway call.
	var draft *bookingDraft
	err = r.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		d, err := r.validateBooking(ctx, dbtx, req.VehicleID, req.PickupBranchID, req.ReturnBranchID, req.AddOns, dates)
		if err != nil {
			return err
		}
		draft = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := r.gateway.ProcessPayment(ctx, req.Payment.ToCard(), draft.totalCost.Cents())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPaymentGateway)
	}
	if result.Status == reservation.PaymentRejected {
		// Nothing was persisted; the whole operation fails.
		return nil, errs.ErrPaymentDeclined
	}

	payment := reservation.PaymentInfo{
		TransactionID: result.TransactionID,
		Method:        req.Payment.Method,
		Status:        result.Status,
	}

	var reservationID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		// Availability may have changed while the gateway was deciding;
		// re-validate under the vehicle lock.
		d, err := r.validateBooking(ctx, tx, req.VehicleID, req.PickupBranchID, req.ReturnBranchID, req.AddOns, dates)
		if err != nil {
			return err
		}

		res, err := reservation.NewConfirmedReservation(
			userID, d.vehicle.ID(), req.PickupBranchID, req.ReturnBranchID,
			d.dates, d.totalCost, d.addOns, payment, r.clock.Now(),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := r.persistNewReservation(ctx, tx, res, "voucher"); err != nil {
			return err
		}
		if err := r.vehicleRepo.SetReserved(ctx, tx, d.vehicle.ID(), true); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		reservationID = res.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQs.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CreateReservationResult{Reservation: view}, nil
}

func (r *reservationCommandsImpl) Cancel(
	ctx context.Context,
	id, actorID uuid.UUID,
	actorRole user.Role,
) (*CancelReservationResult, error) {
	now := r.clock.Now()
	var result *CancelReservationResult

	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := r.reservationRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if res.UserID() != actorID && actorRole == user.RoleCustomer {
			return errs.ErrReservationNotFound
		}

		refund := reservation.ZeroMoney()
		refundType := RefundNone
		if res.HasApprovedPayment() {
			refund = reservation.CalculateRefund(res.Dates().Start(), res.TotalCost(), now)
			switch {
			case refund.Cents() == res.TotalCost().Cents():
				refundType = RefundFull
			case refund.Cents() > 0:
				refundType = RefundPartial
			}
		}

		if err := res.Cancel(refund, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStatusChange)
		}
		if err := r.reservationRepo.Update(ctx, tx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := r.vehicleRepo.SetReserved(ctx, tx, res.VehicleID(), false); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &CancelReservationResult{
			ReservationID:     res.ID(),
			ReservationNumber: res.Number(),
			Status:            res.Status().String(),
			RefundAmountCents: refund.Cents(),
			RefundType:        refundType,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reservationCommandsImpl) PickUp(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	now := r.clock.Now()

	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := r.reservationRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := res.PickUp(now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStatusChange)
		}
		if err := r.reservationRepo.Update(ctx, tx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// In use: no longer reserved, not offered for booking either.
		if err := r.vehicleRepo.SetReserved(ctx, tx, res.VehicleID(), false); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := r.vehicleRepo.SetAvailability(ctx, tx, res.VehicleID(), false); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.reservationQs.GetByIDSystem(ctx, id)
}

func (r *reservationCommandsImpl) Return(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	now := r.clock.Now()

	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := r.reservationRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := res.Return(now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStatusChange)
		}
		if err := r.reservationRepo.Update(ctx, tx, res); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		veh, err := r.vehicleRepo.FindByIDForUpdate(ctx, tx, res.VehicleID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if veh.Status() != vehicle.StatusMaintenance {
			if err := r.vehicleRepo.SetAvailability(ctx, tx, res.VehicleID(), true); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.reservationQs.GetByIDSystem(ctx, id)
}

// validateBooking runs the shared validation path of both creation flows:
// lookups, maintenance flag, availability and pricing. Branch lookups run
// against the same tx so both flows see one consistent snapshot.
func (r *reservationCommandsImpl) validateBooking(
	ctx context.Context,
	tx db.DBTX,
	vehicleID, pickupBranchID, returnBranchID uuid.UUID,
	addOns []reqdto.AddOnSelection,
	dates reservation.DateRange,
) (*bookingDraft, error) {
	veh, err := r.vehicleRepo.FindByIDForUpdate(ctx, tx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := veh.ValidateBookable(); err != nil {
		if err == vehicle.ErrUnderMaintenance {
			return nil, errs.ErrVehicleInMaintenance
		}
		return nil, errs.ErrVehicleUnavailable
	}

	if _, err := r.findBranch(ctx, tx, pickupBranchID); err != nil {
		return nil, err
	}
	if _, err := r.findBranch(ctx, tx, returnBranchID); err != nil {
		return nil, err
	}

	lines, err := r.buildAddOnLines(ctx, tx, addOns)
	if err != nil {
		return nil, err
	}

	overlapping, err := r.reservationRepo.CountOverlapping(ctx, tx, vehicleID, dates.Start(), dates.End(), nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if overlapping > 0 {
		return nil, errs.ErrReservationConflict
	}

	base, err := r.priceCalc.TotalCost(reservation.MustMoney(veh.PricePerDayCents()), dates)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTotalCost)
	}

	total := base
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	return &bookingDraft{
		vehicle:   veh,
		dates:     dates,
		totalCost: total,
		addOns:    lines,
	}, nil
}

func (r *reservationCommandsImpl) findBranch(ctx context.Context, tx db.DBTX, id uuid.UUID) (*branch.Branch, error) {
	b, err := r.branchRepo.FindByID(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBranchNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (r *reservationCommandsImpl) buildAddOnLines(
	ctx context.Context,
	tx db.DBTX,
	selections []reqdto.AddOnSelection,
) ([]reservation.AddOnLine, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(selections))
	for i, sel := range selections {
		ids[i] = sel.AddOnID
	}

	catalog, err := r.addOnRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	byID := make(map[uuid.UUID]int64, len(catalog))
	for _, a := range catalog {
		if !a.IsActive() {
			continue
		}
		byID[a.ID()] = a.PriceCents()
	}

	lines := make([]reservation.AddOnLine, 0, len(selections))
	for _, sel := range selections {
		price, ok := byID[sel.AddOnID]
		if !ok {
			return nil, errs.ErrAddOnNotFound
		}
		line, err := reservation.NewAddOnLine(sel.AddOnID, sel.Quantity, price)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *reservationCommandsImpl) persistNewReservation(
	ctx context.Context,
	tx db.DBTX,
	res *reservation.Reservation,
	topic string,
) error {
	if err := r.reservationRepo.Create(ctx, tx, res); err != nil {
		// The exclusion constraint is the final arbiter against concurrent
		// bookings that both passed the overlap check.
		if infra.IsKind(err, infra.KindConflict) {
			return errs.ErrReservationConflict
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	payload, err := json.Marshal(map[string]any{
		"reservation_id":     res.ID(),
		"reservation_number": res.Number(),
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := r.notificationRepo.CreateJob(ctx, tx, "email", topic, payload, r.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
