package vehicle

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUnderMaintenance = errors.New("vehicle is under maintenance")
	ErrNotAvailable     = errors.New("vehicle is not available")
)

// Operational status values kept as stored; the maintenance sentinel blocks
// every booking regardless of dates.
const (
	StatusAvailable   = "Disponible"
	StatusMaintenance = "En mantenimiento"
)

type Vehicle struct {
	id           uuid.UUID
	brand        string
	model        string
	licensePlate string
	pricePerDay  int64 // cents
	status       string
	isAvailable  bool
	isReserved   bool
	branchID     uuid.UUID
}

func Reconstruct(
	id uuid.UUID,
	brand, model, licensePlate string,
	pricePerDayCents int64,
	status string,
	isAvailable, isReserved bool,
	branchID uuid.UUID,
) *Vehicle {
	return &Vehicle{
		id:           id,
		brand:        brand,
		model:        model,
		licensePlate: licensePlate,
		pricePerDay:  pricePerDayCents,
		status:       status,
		isAvailable:  isAvailable,
		isReserved:   isReserved,
		branchID:     branchID,
	}
}

// ValidateBookable guards the administrative flags only. Date availability is
// always decided against existing reservations, never against these flags.
func (v *Vehicle) ValidateBookable() error {
	if v.status == StatusMaintenance {
		return ErrUnderMaintenance
	}
	if !v.isAvailable {
		return ErrNotAvailable
	}
	return nil
}

func (v *Vehicle) ID() uuid.UUID           { return v.id }
func (v *Vehicle) Brand() string           { return v.brand }
func (v *Vehicle) Model() string           { return v.model }
func (v *Vehicle) LicensePlate() string    { return v.licensePlate }
func (v *Vehicle) PricePerDayCents() int64 { return v.pricePerDay }
func (v *Vehicle) Status() string          { return v.status }
func (v *Vehicle) IsAvailable() bool       { return v.isAvailable }
func (v *Vehicle) IsReserved() bool        { return v.isReserved }
func (v *Vehicle) BranchID() uuid.UUID     { return v.branchID }
