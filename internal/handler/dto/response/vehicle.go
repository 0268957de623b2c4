package response

import (
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VehicleResponse struct {
	ID               uuid.UUID `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	LicensePlate     string    `json:"license_plate"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	Status           string    `json:"status"`
	IsAvailable      bool      `json:"is_available"`
	IsReserved       bool      `json:"is_reserved"`
	BranchID         uuid.UUID `json:"branch_id"`
}

type AvailabilityResponse struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

type BranchResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	City    string    `json:"city"`
	Address string    `json:"address"`
}

func FromVehicleView(rm *queries.VehicleView) *VehicleResponse {
	var resp VehicleResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromAvailabilityResult(rm *queries.AvailabilityResult) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBranchView(rm *queries.BranchView) *BranchResponse {
	var resp BranchResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
