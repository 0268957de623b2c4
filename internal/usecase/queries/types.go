package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID                uuid.UUID       `json:"id"`
	ReservationNumber string          `json:"reservation_number"`
	UserID            uuid.UUID       `json:"user_id"`
	UserEmail         string          `json:"user_email"`
	VehicleID         uuid.UUID       `json:"vehicle_id"`
	VehicleName       string          `json:"vehicle_name"`
	PickupBranchID    uuid.UUID       `json:"pickup_branch_id"`
	PickupBranchName  string          `json:"pickup_branch_name"`
	ReturnBranchID    uuid.UUID       `json:"return_branch_id"`
	ReturnBranchName  string          `json:"return_branch_name"`
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	Status            string          `json:"status"`
	TotalCostCents    int64           `json:"total_cost_cents"`
	Payment           *PaymentView    `json:"payment,omitempty"`
	AddOns            []AddOnLineView `json:"add_ons,omitempty"`
	VoucherSent       bool            `json:"voucher_sent"`
	CanceledAt        *time.Time      `json:"canceled_at,omitempty"`
	RefundAmountCents int64           `json:"refund_amount_cents"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type PaymentView struct {
	TransactionID string `json:"transaction_id"`
	Method        string `json:"method"`
	Status        string `json:"status"`
}

type AddOnLineView struct {
	AddOnID        uuid.UUID `json:"add_on_id"`
	AddOnName      string    `json:"add_on_name"`
	Quantity       int32     `json:"quantity"`
	ItemPriceCents int64     `json:"item_price_cents"`
}

type ReservationListItem struct {
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

type VehicleView struct {
	ID               uuid.UUID `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	LicensePlate     string    `json:"license_plate"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	Status           string    `json:"status"`
	IsAvailable      bool      `json:"is_available"`
	// IsReserved is a display hint only; date availability comes from the
	// availability query, never from this flag.
	IsReserved bool      `json:"is_reserved"`
	BranchID   uuid.UUID `json:"branch_id"`
}

type BranchView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	City    string    `json:"city"`
	Address string    `json:"address"`
}

type AuthorizedUser struct {
	ID           uuid.UUID
	Email        string
	Role         string
	PasswordHash string
	IsActive     bool
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*AuthorizedUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUser, error)
}
