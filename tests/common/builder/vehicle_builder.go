//go:build unit || e2e

package builder

import (
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/vehicle"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	ID               uuid.UUID
	Brand            string
	Model            string
	LicensePlate     string
	PricePerDayCents int64
	Status           string
	IsAvailable      bool
	IsReserved       bool
	BranchID         uuid.UUID
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		ID:               uuid.New(),
		Brand:            "Toyota",
		Model:            "Corolla",
		LicensePlate:     "AB123CD",
		PricePerDayCents: 100000,
		Status:           vehicle.StatusAvailable,
		IsAvailable:      true,
		IsReserved:       false,
		BranchID:         uuid.New(),
	}
}

func (v *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(v)
	return v
}

func (v *VehicleBuilder) BuildDomain() *vehicle.Vehicle {
	return vehicle.Reconstruct(
		v.ID,
		v.Brand, v.Model, v.LicensePlate,
		v.PricePerDayCents,
		v.Status,
		v.IsAvailable, v.IsReserved,
		v.BranchID,
	)
}

func (v *VehicleBuilder) BuildView() *queries.VehicleView {
	return &queries.VehicleView{
		ID:               v.ID,
		Brand:            v.Brand,
		Model:            v.Model,
		LicensePlate:     v.LicensePlate,
		PricePerDayCents: v.PricePerDayCents,
		Status:           v.Status,
		IsAvailable:      v.IsAvailable,
		IsReserved:       v.IsReserved,
		BranchID:         v.BranchID,
	}
}

func (v *VehicleBuilder) UnderMaintenance() *VehicleBuilder {
	v.Status = vehicle.StatusMaintenance
	return v
}
