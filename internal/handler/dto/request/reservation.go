package request

import (
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/ports"

	"github.com/google/uuid"
)

type AddOnSelection struct {
	AddOnID  uuid.UUID `json:"add_on_id" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required,min=1"`
}

type CreateReservationRequest struct {
	VehicleID      uuid.UUID        `json:"vehicle_id" binding:"required"`
	PickupBranchID uuid.UUID        `json:"pickup_branch_id" binding:"required"`
	ReturnBranchID uuid.UUID        `json:"return_branch_id" binding:"required"`
	StartDate      time.Time        `json:"start_date" binding:"required"`
	EndDate        time.Time        `json:"end_date" binding:"required"`
	AddOns         []AddOnSelection `json:"add_ons,omitempty"`
}

type PaymentRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
	Method     string `json:"method" binding:"required"`
}

func (p PaymentRequest) ToCard() ports.PaymentCard {
	return ports.PaymentCard{
		Number: p.CardNumber,
		Expiry: p.Expiry,
		CVV:    p.CVV,
		Method: p.Method,
	}
}

// CheckoutReservationRequest pays at creation time; a declined card leaves
// no reservation behind.
type CheckoutReservationRequest struct {
	VehicleID      uuid.UUID        `json:"vehicle_id" binding:"required"`
	PickupBranchID uuid.UUID        `json:"pickup_branch_id" binding:"required"`
	ReturnBranchID uuid.UUID        `json:"return_branch_id" binding:"required"`
	StartDate      time.Time        `json:"start_date" binding:"required"`
	EndDate        time.Time        `json:"end_date" binding:"required"`
	AddOns         []AddOnSelection `json:"add_ons,omitempty"`
	Payment        PaymentRequest   `json:"payment" binding:"required"`
}
