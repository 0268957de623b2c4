package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/clock"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/config"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/ports"
)

var ErrCardNumberRequired = errs.New("card number is required")

// SimulatedGateway stands in for a real payment provider. Card numbers
// ending in 0000 are rejected and numbers ending in 9999 come back as
// provider-pending; everything else is approved.
type SimulatedGateway struct {
	cfg   config.PaymentConfig
	clock clock.Clock
}

func NewSimulatedGateway(cfg config.PaymentConfig, clock clock.Clock) ports.PaymentGateway {
	return &SimulatedGateway{cfg: cfg, clock: clock}
}

func (g *SimulatedGateway) ProcessPayment(ctx context.Context, card ports.PaymentCard, amountCents int64) (ports.PaymentResult, error) {
	// A real provider call would block inside this deadline. The simulator
	// answers instantly, so only an already-expired context trips it.
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return ports.PaymentResult{}, errs.Wrap(err, "payment gateway unreachable")
	}

	number := strings.ReplaceAll(strings.TrimSpace(card.Number), " ", "")
	if number == "" {
		return ports.PaymentResult{}, ErrCardNumberRequired
	}

	txID := fmt.Sprintf("TXN-%d", g.clock.Now().UnixMilli())

	result := ports.PaymentResult{
		Status:        reservation.PaymentApproved,
		TransactionID: txID,
		Message:       "approved",
	}
	switch {
	case strings.HasSuffix(number, "0000"):
		result.Status = reservation.PaymentRejected
		result.Message = "card declined by issuer"
	case strings.HasSuffix(number, "9999"):
		result.Status = reservation.PaymentPending
		result.Message = "pending provider confirmation"
	}

	slog.Debug("simulated payment processed",
		"transaction_id", txID,
		"status", string(result.Status),
		"amount_cents", amountCents,
	)
	return result, nil
}
