package reservation

import (
	"math"
	"time"
)

const (
	fullRefundLeadHours = 24
	partialRefundRate   = 0.8
)

// CalculateRefund applies the cancellation policy:
//
//	more than 24h before pickup  -> full refund
//	up to 24h before pickup      -> 80%, rounded to whole cents
//	pickup time reached or past  -> nothing
//
// Pure function; the server result and any client-side preview must agree,
// so the rounding here is the single source of truth.
func CalculateRefund(startDate time.Time, totalCost Money, now time.Time) Money {
	hoursUntilStart := startDate.Sub(now).Hours()

	switch {
	case hoursUntilStart > fullRefundLeadHours:
		return totalCost
	case hoursUntilStart > 0:
		cents := int64(math.Round(float64(totalCost.Cents()) * partialRefundRate))
		return MustMoney(cents)
	default:
		return ZeroMoney()
	}
}
