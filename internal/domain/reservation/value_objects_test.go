//go:build unit

package reservation_test

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

func mustRange(t *testing.T, start, end time.Time) reservation.DateRange {
	t.Helper()
	dr, err := reservation.NewDateRange(start, end, start.Add(-48*time.Hour))
	require.NoError(t, err)
	return dr
}

func TestNewDateRange(t *testing.T) {
	now := baseTime

	t.Run("valid range", func(t *testing.T) {
		dr, err := reservation.NewDateRange(now.Add(time.Hour), now.Add(25*time.Hour), now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(time.Hour), dr.Start())
	})

	t.Run("start equal to end rejected", func(t *testing.T) {
		_, err := reservation.NewDateRange(now, now, now)
		require.ErrorIs(t, err, reservation.ErrStartNotBeforeEnd)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := reservation.NewDateRange(now.Add(time.Hour), now, now)
		require.ErrorIs(t, err, reservation.ErrStartNotBeforeEnd)
	})

	t.Run("start before today rejected", func(t *testing.T) {
		_, err := reservation.NewDateRange(now.Add(-48*time.Hour), now.Add(time.Hour), now)
		require.ErrorIs(t, err, reservation.ErrStartInPast)
	})
}

func TestDateRangeDays(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     int64
	}{
		{name: "exactly one day", duration: 24 * time.Hour, want: 1},
		{name: "exactly three days", duration: 72 * time.Hour, want: 3},
		{name: "partial day rounds up", duration: 26 * time.Hour, want: 2},
		{name: "one hour counts a full day", duration: time.Hour, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dr := mustRange(t, baseTime, baseTime.Add(tc.duration))
			assert.Equal(t, tc.want, dr.Days())
		})
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	day := 24 * time.Hour
	at := func(d int) time.Time { return baseTime.Add(time.Duration(d) * day) }

	t.Run("touching endpoints do not overlap", func(t *testing.T) {
		a := mustRange(t, at(0), at(2))
		b := mustRange(t, at(2), at(4))
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("contained interval overlaps", func(t *testing.T) {
		a := mustRange(t, at(0), at(10))
		b := mustRange(t, at(3), at(4))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("partial overlap", func(t *testing.T) {
		a := mustRange(t, at(0), at(3))
		b := mustRange(t, at(2), at(5))
		assert.True(t, a.Overlaps(b))
	})

	t.Run("disjoint intervals do not overlap", func(t *testing.T) {
		a := mustRange(t, at(0), at(2))
		b := mustRange(t, at(5), at(7))
		assert.False(t, a.Overlaps(b))
	})

	// Randomized property: Overlaps must agree with the half-open rule
	// s < E && e > S, and must be symmetric.
	t.Run("randomized intervals match the half-open rule", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 1000; i++ {
			s1 := rng.Intn(50)
			e1 := s1 + 1 + rng.Intn(20)
			s2 := rng.Intn(50)
			e2 := s2 + 1 + rng.Intn(20)

			a := mustRange(t, at(s1), at(e1))
			b := mustRange(t, at(s2), at(e2))

			want := at(s2).Before(at(e1)) && at(e2).After(at(s1))
			require.Equal(t, want, a.Overlaps(b), "a=[%d,%d) b=[%d,%d)", s1, e1, s2, e2)
			require.Equal(t, a.Overlaps(b), b.Overlaps(a), "overlap must be symmetric")
		}
	})
}

func TestMoney(t *testing.T) {
	t.Run("negative cents rejected", func(t *testing.T) {
		_, err := reservation.NewMoney(-1)
		require.ErrorIs(t, err, reservation.ErrNegativeMoney)
	})

	t.Run("arithmetic", func(t *testing.T) {
		m := reservation.MustMoney(1500)
		assert.Equal(t, int64(4500), m.MulInt(3).Cents())
		assert.Equal(t, int64(2000), m.Add(reservation.MustMoney(500)).Cents())
	})
}

func TestAddOnLine(t *testing.T) {
	id := uuid.New()

	t.Run("quantity below one rejected", func(t *testing.T) {
		_, err := reservation.NewAddOnLine(id, 0, 500)
		require.ErrorIs(t, err, reservation.ErrInvalidQuantity)
	})

	t.Run("negative item price rejected", func(t *testing.T) {
		_, err := reservation.NewAddOnLine(id, 1, -500)
		require.ErrorIs(t, err, reservation.ErrNegativeItemPrice)
	})

	t.Run("subtotal multiplies captured price", func(t *testing.T) {
		line, err := reservation.NewAddOnLine(id, 3, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), line.Subtotal().Cents())
	})
}

func TestNewReservationNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^RES-\d{13}-\d{3}$`)
	for i := 0; i < 20; i++ {
		number := reservation.NewReservationNumber(baseTime)
		assert.Regexp(t, pattern, number)
	}
}
