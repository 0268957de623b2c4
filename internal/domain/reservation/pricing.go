package reservation

import "errors"

var ErrNonPositiveCost = errors.New("total cost must be positive")

// PriceCalculator computes the base rental cost for a date range.
type PriceCalculator interface {
	TotalCost(pricePerDay Money, dates DateRange) (Money, error)
}

// DailyRateCalculator charges the per-day rate times the calendar-day ceiling
// of the range. A booking spanning part of a day pays the full day.
type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (c *DailyRateCalculator) TotalCost(pricePerDay Money, dates DateRange) (Money, error) {
	total := pricePerDay.MulInt(dates.Days())
	if total.Cents() <= 0 {
		return Money{}, ErrNonPositiveCost
	}
	return total, nil
}
