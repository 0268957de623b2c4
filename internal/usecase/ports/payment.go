package ports

import (
	"context"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
)

// PaymentCard is the opaque payment data forwarded to the gateway; the core
// never inspects it beyond passing it through.
type PaymentCard struct {
	Number string
	Expiry string
	CVV    string
	Method string
}

type PaymentResult struct {
	Status        reservation.PaymentStatus
	TransactionID string
	Message       string
}

// PaymentGateway is the external payment collaborator. A returned error is a
// technical failure; a business decision always comes back as a result with
// one of the three statuses.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, card PaymentCard, amountCents int64) (PaymentResult, error)
}
