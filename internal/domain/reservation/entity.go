package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotPending        = errors.New("reservation is not pending")
	ErrWindowExpired     = errors.New("payment window expired")
	ErrAlreadyCancelled  = errors.New("reservation is already cancelled")
)

// PaymentWindow is how long a pending reservation stays payable. Expiry is
// evaluated lazily on the next payment attempt, never by a background timer.
const PaymentWindow = 30 * time.Minute

type Reservation struct {
	id            uuid.UUID
	number        string
	userID        uuid.UUID
	vehicleID     uuid.UUID
	pickupBranch  uuid.UUID
	returnBranch  uuid.UUID
	dates         DateRange
	status        Status
	totalCost     Money
	payment       *PaymentInfo
	addOns        []AddOnLine
	voucherSent   bool
	canceledAt    *time.Time
	refundAmount  Money
	createdAt     time.Time
	updatedAt     time.Time
}

// NewReservation starts the deferred-pay flow: the booking is persisted as
// pending and must be paid within PaymentWindow.
func NewReservation(
	userID, vehicleID, pickupBranch, returnBranch uuid.UUID,
	dates DateRange,
	totalCost Money,
	addOns []AddOnLine,
	now time.Time,
) (*Reservation, error) {
	if totalCost.Cents() <= 0 {
		return nil, fmt.Errorf("total cost must be positive, got %d", totalCost.Cents())
	}

	return &Reservation{
		id:           uuid.New(),
		number:       NewReservationNumber(now),
		userID:       userID,
		vehicleID:    vehicleID,
		pickupBranch: pickupBranch,
		returnBranch: returnBranch,
		dates:        dates,
		status:       StatusPending,
		totalCost:    totalCost,
		addOns:       addOns,
		refundAmount: ZeroMoney(),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// NewConfirmedReservation starts the pay-at-creation flow: the gateway has
// already answered approved or pending, so the booking is born confirmed.
func NewConfirmedReservation(
	userID, vehicleID, pickupBranch, returnBranch uuid.UUID,
	dates DateRange,
	totalCost Money,
	addOns []AddOnLine,
	payment PaymentInfo,
	now time.Time,
) (*Reservation, error) {
	if payment.Status == PaymentRejected {
		return nil, fmt.Errorf("cannot confirm a reservation with a rejected payment")
	}
	res, err := NewReservation(userID, vehicleID, pickupBranch, returnBranch, dates, totalCost, addOns, now)
	if err != nil {
		return nil, err
	}
	res.status = StatusConfirmed
	res.payment = &payment
	return res, nil
}

func Reconstruct(
	id uuid.UUID,
	number string,
	userID, vehicleID, pickupBranch, returnBranch uuid.UUID,
	dates DateRange,
	status Status,
	totalCost Money,
	payment *PaymentInfo,
	addOns []AddOnLine,
	voucherSent bool,
	canceledAt *time.Time,
	refundAmount Money,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		number:       number,
		userID:       userID,
		vehicleID:    vehicleID,
		pickupBranch: pickupBranch,
		returnBranch: returnBranch,
		dates:        dates,
		status:       status,
		totalCost:    totalCost,
		payment:      payment,
		addOns:       addOns,
		voucherSent:  voucherSent,
		canceledAt:   canceledAt,
		refundAmount: refundAmount,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// PaymentWindowExpired reports whether a pending reservation can no longer
// be paid.
func (r *Reservation) PaymentWindowExpired(now time.Time) bool {
	return r.status == StatusPending && now.Sub(r.createdAt) > PaymentWindow
}

// ConfirmPayment moves pending -> confirmed after an approved gateway answer.
func (r *Reservation) ConfirmPayment(payment PaymentInfo, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if err := r.transition(StatusConfirmed, now); err != nil {
		return err
	}
	r.payment = &payment
	return nil
}

// RecordPaymentAttempt keeps the reservation pending and payable; a rejected
// or gateway-pending attempt is recorded without confirming anything.
func (r *Reservation) RecordPaymentAttempt(payment PaymentInfo, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.payment = &payment
	r.updatedAt = now
	return nil
}

// Expire cancels a pending reservation whose payment window lapsed.
func (r *Reservation) Expire(now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if !r.PaymentWindowExpired(now) {
		return fmt.Errorf("payment window still open")
	}
	if err := r.transition(StatusCancelled, now); err != nil {
		return err
	}
	t := now
	r.canceledAt = &t
	return nil
}

// Cancel ends a pending or confirmed reservation with the given refund.
func (r *Reservation) Cancel(refund Money, now time.Time) error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if err := r.transition(StatusCancelled, now); err != nil {
		return err
	}
	t := now
	r.canceledAt = &t
	r.refundAmount = refund
	return nil
}

func (r *Reservation) PickUp(now time.Time) error {
	return r.transition(StatusPickedUp, now)
}

// Return drives picked_up -> returned -> completed as a single business
// transition; callers only ever observe the completed state.
func (r *Reservation) Return(now time.Time) error {
	if err := r.transition(StatusReturned, now); err != nil {
		return err
	}
	return r.transition(StatusCompleted, now)
}

func (r *Reservation) MarkVoucherSent(now time.Time) {
	r.voucherSent = true
	r.updatedAt = now
}

func (r *Reservation) transition(to Status, now time.Time) error {
	if !CanTransition(r.status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.status, to)
	}
	r.status = to
	r.updatedAt = now
	return nil
}

// HasApprovedPayment gates refund computation: an unpaid booking never
// produces a refund.
func (r *Reservation) HasApprovedPayment() bool {
	return r.payment != nil && r.payment.Status == PaymentApproved
}

func (r *Reservation) AddOnsTotal() Money {
	total := ZeroMoney()
	for _, line := range r.addOns {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) Number() string            { return r.number }
func (r *Reservation) UserID() uuid.UUID         { return r.userID }
func (r *Reservation) VehicleID() uuid.UUID      { return r.vehicleID }
func (r *Reservation) PickupBranchID() uuid.UUID { return r.pickupBranch }
func (r *Reservation) ReturnBranchID() uuid.UUID { return r.returnBranch }
func (r *Reservation) Dates() DateRange          { return r.dates }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) TotalCost() Money          { return r.totalCost }
func (r *Reservation) Payment() *PaymentInfo     { return r.payment }
func (r *Reservation) AddOns() []AddOnLine       { return r.addOns }
func (r *Reservation) VoucherSent() bool         { return r.voucherSent }
func (r *Reservation) CanceledAt() *time.Time    { return r.canceledAt }
func (r *Reservation) RefundAmount() Money       { return r.refundAmount }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }
