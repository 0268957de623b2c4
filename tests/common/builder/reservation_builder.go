//go:build unit || e2e

package builder

import (
	"time"

	domres "github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	reqdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/request"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID             uuid.UUID
	Number         string
	UserID         uuid.UUID
	VehicleID      uuid.UUID
	PickupBranchID uuid.UUID
	ReturnBranchID uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	Status         domres.Status
	TotalCostCents int64
	Payment        *domres.PaymentInfo
	AddOns         []reqdto.AddOnSelection
	CreatedAt      time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &ReservationBuilder{
		ID:             uuid.New(),
		Number:         "RES-20260101-0001",
		UserID:         uuid.New(),
		VehicleID:      uuid.New(),
		PickupBranchID: uuid.New(),
		ReturnBranchID: uuid.New(),
		StartDate:      now.Add(24 * time.Hour),
		EndDate:        now.Add(4 * 24 * time.Hour),
		Status:         domres.StatusPending,
		TotalCostCents: 300000,
		CreatedAt:      now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		VehicleID:      r.VehicleID,
		PickupBranchID: r.PickupBranchID,
		ReturnBranchID: r.ReturnBranchID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		AddOns:         r.AddOns,
	}
}

func (r *ReservationBuilder) BuildCheckoutRequestDTO(payment reqdto.PaymentRequest) reqdto.CheckoutReservationRequest {
	return reqdto.CheckoutReservationRequest{
		VehicleID:      r.VehicleID,
		PickupBranchID: r.PickupBranchID,
		ReturnBranchID: r.ReturnBranchID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		AddOns:         r.AddOns,
		Payment:        payment,
	}
}

// BuildDomain reconstructs the aggregate directly so tests can control
// status and createdAt, which the public constructors deliberately do not
// allow.
func (r *ReservationBuilder) BuildDomain() *domres.Reservation {
	return domres.Reconstruct(
		r.ID,
		r.Number,
		r.UserID, r.VehicleID, r.PickupBranchID, r.ReturnBranchID,
		domres.ReconstructDateRange(r.StartDate, r.EndDate),
		r.Status,
		domres.MustMoney(r.TotalCostCents),
		r.Payment,
		nil,
		false,
		nil,
		domres.ZeroMoney(),
		r.CreatedAt, r.CreatedAt,
	)
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	view := &queries.ReservationView{
		ID:                r.ID,
		ReservationNumber: r.Number,
		UserID:            r.UserID,
		UserEmail:         "customer@example.com",
		VehicleID:         r.VehicleID,
		VehicleName:       "Toyota Corolla",
		PickupBranchID:    r.PickupBranchID,
		PickupBranchName:  "Centro",
		ReturnBranchID:    r.ReturnBranchID,
		ReturnBranchName:  "Aeropuerto",
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		Status:            r.Status.String(),
		TotalCostCents:    r.TotalCostCents,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.CreatedAt,
	}
	if r.Payment != nil {
		view.Payment = &queries.PaymentView{
			TransactionID: r.Payment.TransactionID,
			Method:        r.Payment.Method,
			Status:        string(r.Payment.Status),
		}
	}
	return view
}

func NewPaymentRequestBuilder() reqdto.PaymentRequest {
	return reqdto.PaymentRequest{
		CardNumber: "4111 1111 1111 1234",
		Expiry:     "12/27",
		CVV:        "123",
		Method:     "credit_card",
	}
}
