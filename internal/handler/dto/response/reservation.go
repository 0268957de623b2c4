package response

import (
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Method        string `json:"method"`
	Status        string `json:"status"`
}

type AddOnLineResponse struct {
	AddOnID        uuid.UUID `json:"add_on_id"`
	AddOnName      string    `json:"add_on_name"`
	Quantity       int32     `json:"quantity"`
	ItemPriceCents int64     `json:"item_price_cents"`
}

type ReservationResponse struct {
	ID                uuid.UUID           `json:"id"`
	ReservationNumber string              `json:"reservation_number"`
	UserID            uuid.UUID           `json:"user_id"`
	UserEmail         string              `json:"user_email"`
	VehicleID         uuid.UUID           `json:"vehicle_id"`
	VehicleName       string              `json:"vehicle_name"`
	PickupBranchID    uuid.UUID           `json:"pickup_branch_id"`
	PickupBranchName  string              `json:"pickup_branch_name"`
	ReturnBranchID    uuid.UUID           `json:"return_branch_id"`
	ReturnBranchName  string              `json:"return_branch_name"`
	StartDate         time.Time           `json:"start_date"`
	EndDate           time.Time           `json:"end_date"`
	Status            string              `json:"status"`
	TotalCostCents    int64               `json:"total_cost_cents"`
	Payment           *PaymentResponse    `json:"payment,omitempty"`
	AddOns            []AddOnLineResponse `json:"add_ons,omitempty"`
	VoucherSent       bool                `json:"voucher_sent"`
	CanceledAt        *time.Time          `json:"canceled_at,omitempty"`
	RefundAmountCents int64               `json:"refund_amount_cents"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type ReservationListResponse struct {
	ID                uuid.UUID `json:"id"`
	ReservationNumber string    `json:"reservation_number"`
	VehicleID         uuid.UUID `json:"vehicle_id"`
	VehicleName       string    `json:"vehicle_name"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Status            string    `json:"status"`
	TotalCostCents    int64     `json:"total_cost_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

type CancelReservationResponse struct {
	ReservationID     uuid.UUID `json:"reservation_id"`
	ReservationNumber string    `json:"reservation_number"`
	Status            string    `json:"status"`
	RefundAmountCents int64     `json:"refund_amount_cents"`
	RefundType        string    `json:"refund_type"`
}

type PayReservationResponse struct {
	Message           string           `json:"message"`
	ReservationID     uuid.UUID        `json:"reservation_id"`
	ReservationNumber string           `json:"reservation_number"`
	Status            string           `json:"status"`
	TotalCostCents    int64            `json:"total_cost_cents"`
	Payment           *PaymentResponse `json:"payment,omitempty"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	// Field names line up one to one with the read model.
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	var resp ReservationListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromCancelResult(result *commands.CancelReservationResult) *CancelReservationResponse {
	return &CancelReservationResponse{
		ReservationID:     result.ReservationID,
		ReservationNumber: result.ReservationNumber,
		Status:            result.Status,
		RefundAmountCents: result.RefundAmountCents,
		RefundType:        string(result.RefundType),
	}
}

func FromPayResult(result *commands.PayReservationResult) *PayReservationResponse {
	return &PayReservationResponse{
		Message:           result.Message,
		ReservationID:     result.ReservationID,
		ReservationNumber: result.ReservationNumber,
		Status:            result.Status,
		TotalCostCents:    result.TotalCostCents,
		Payment: &PaymentResponse{
			TransactionID: result.Payment.TransactionID,
			Method:        result.Payment.Method,
			Status:        string(result.Payment.Status),
		},
	}
}
