//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyRateCalculator(t *testing.T) {
	calc := reservation.NewDailyRateCalculator()
	rate := reservation.MustMoney(100_000) // 1000.00 per day

	t.Run("one day costs one rate", func(t *testing.T) {
		dr := mustRange(t, baseTime, baseTime.Add(24*time.Hour))
		total, err := calc.TotalCost(rate, dr)
		require.NoError(t, err)
		assert.Equal(t, rate.Cents(), total.Cents())
	})

	t.Run("three days cost three rates", func(t *testing.T) {
		dr := mustRange(t, baseTime, baseTime.Add(72*time.Hour))
		total, err := calc.TotalCost(rate, dr)
		require.NoError(t, err)
		assert.Equal(t, 3*rate.Cents(), total.Cents())
	})

	t.Run("partial day charges a full day", func(t *testing.T) {
		dr := mustRange(t, baseTime, baseTime.Add(25*time.Hour))
		total, err := calc.TotalCost(rate, dr)
		require.NoError(t, err)
		assert.Equal(t, 2*rate.Cents(), total.Cents())
	})

	t.Run("zero rate yields an error", func(t *testing.T) {
		dr := mustRange(t, baseTime, baseTime.Add(24*time.Hour))
		_, err := calc.TotalCost(reservation.ZeroMoney(), dr)
		require.ErrorIs(t, err, reservation.ErrNonPositiveCost)
	})
}
