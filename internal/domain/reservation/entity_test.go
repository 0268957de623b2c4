//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingReservation(t *testing.T, createdAt time.Time) *reservation.Reservation {
	t.Helper()
	dr := mustRange(t, createdAt.Add(48*time.Hour), createdAt.Add(72*time.Hour))
	res, err := reservation.NewReservation(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		dr, reservation.MustMoney(300_000), nil, createdAt,
	)
	require.NoError(t, err)
	return res
}

func approvedPayment() reservation.PaymentInfo {
	return reservation.PaymentInfo{
		TransactionID: "TXN-1",
		Method:        "card",
		Status:        reservation.PaymentApproved,
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to reservation.Status
		want     bool
	}{
		{reservation.StatusPending, reservation.StatusConfirmed, true},
		{reservation.StatusPending, reservation.StatusCancelled, true},
		{reservation.StatusConfirmed, reservation.StatusPickedUp, true},
		{reservation.StatusConfirmed, reservation.StatusCancelled, true},
		{reservation.StatusPickedUp, reservation.StatusReturned, true},
		{reservation.StatusReturned, reservation.StatusCompleted, true},
		{reservation.StatusPending, reservation.StatusPickedUp, false},
		{reservation.StatusPickedUp, reservation.StatusCancelled, false},
		{reservation.StatusCancelled, reservation.StatusConfirmed, false},
		{reservation.StatusCompleted, reservation.StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, reservation.CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestReservationLifecycle(t *testing.T) {
	now := baseTime

	t.Run("new reservation starts pending with a number", func(t *testing.T) {
		res := newPendingReservation(t, now)
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.Regexp(t, `^RES-\d+-\d{3}$`, res.Number())
		assert.False(t, res.VoucherSent())
		assert.Nil(t, res.CanceledAt())
		assert.True(t, res.RefundAmount().IsZero())
	})

	t.Run("zero total cost rejected", func(t *testing.T) {
		dr := mustRange(t, now.Add(48*time.Hour), now.Add(72*time.Hour))
		_, err := reservation.NewReservation(
			uuid.New(), uuid.New(), uuid.New(), uuid.New(),
			dr, reservation.ZeroMoney(), nil, now,
		)
		require.Error(t, err)
	})

	t.Run("confirm payment", func(t *testing.T) {
		res := newPendingReservation(t, now)
		require.NoError(t, res.ConfirmPayment(approvedPayment(), now.Add(time.Minute)))
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		require.NotNil(t, res.Payment())
		assert.Equal(t, reservation.PaymentApproved, res.Payment().Status)
	})

	t.Run("confirm twice fails with not pending", func(t *testing.T) {
		res := newPendingReservation(t, now)
		require.NoError(t, res.ConfirmPayment(approvedPayment(), now))
		err := res.ConfirmPayment(approvedPayment(), now)
		require.ErrorIs(t, err, reservation.ErrNotPending)
	})

	t.Run("declined payment keeps reservation pending", func(t *testing.T) {
		res := newPendingReservation(t, now)
		declined := reservation.PaymentInfo{TransactionID: "TXN-2", Method: "card", Status: reservation.PaymentRejected}
		require.NoError(t, res.RecordPaymentAttempt(declined, now))
		assert.Equal(t, reservation.StatusPending, res.Status())
		require.NotNil(t, res.Payment())
		assert.Equal(t, reservation.PaymentRejected, res.Payment().Status)
	})

	t.Run("payment window expiry is lazy", func(t *testing.T) {
		res := newPendingReservation(t, now)
		assert.False(t, res.PaymentWindowExpired(now.Add(29*time.Minute)))
		assert.True(t, res.PaymentWindowExpired(now.Add(31*time.Minute)))

		err := res.Expire(now.Add(29 * time.Minute))
		require.Error(t, err)

		require.NoError(t, res.Expire(now.Add(31*time.Minute)))
		assert.Equal(t, reservation.StatusCancelled, res.Status())
		require.NotNil(t, res.CanceledAt())
	})

	t.Run("cancel with refund", func(t *testing.T) {
		res := newPendingReservation(t, now)
		require.NoError(t, res.ConfirmPayment(approvedPayment(), now))

		cancelAt := now.Add(time.Hour)
		require.NoError(t, res.Cancel(reservation.MustMoney(240_000), cancelAt))
		assert.Equal(t, reservation.StatusCancelled, res.Status())
		assert.Equal(t, int64(240_000), res.RefundAmount().Cents())
		require.NotNil(t, res.CanceledAt())
		assert.Equal(t, cancelAt, *res.CanceledAt())
	})

	t.Run("cancel twice fails", func(t *testing.T) {
		res := newPendingReservation(t, now)
		require.NoError(t, res.Cancel(reservation.ZeroMoney(), now))
		require.ErrorIs(t, res.Cancel(reservation.ZeroMoney(), now), reservation.ErrAlreadyCancelled)
	})

	t.Run("pickup requires confirmed", func(t *testing.T) {
		res := newPendingReservation(t, now)
		require.ErrorIs(t, res.PickUp(now), reservation.ErrInvalidTransition)

		require.NoError(t, res.ConfirmPayment(approvedPayment(), now))
		require.NoError(t, res.PickUp(now))
		assert.Equal(t, reservation.StatusPickedUp, res.Status())
	})

	t.Run("return completes in one business transition", func(t *testing.T) {
		res := newPendingReservation(t, now)
		require.NoError(t, res.ConfirmPayment(approvedPayment(), now))
		require.NoError(t, res.PickUp(now))
		require.NoError(t, res.Return(now))
		assert.Equal(t, reservation.StatusCompleted, res.Status())
	})

	t.Run("cancel after pickup rejected", func(t *testing.T) {
		res := newPendingReservation(t, now)
		require.NoError(t, res.ConfirmPayment(approvedPayment(), now))
		require.NoError(t, res.PickUp(now))
		require.ErrorIs(t, res.Cancel(reservation.ZeroMoney(), now), reservation.ErrInvalidTransition)
	})

	t.Run("add-on totals use captured prices", func(t *testing.T) {
		line1, err := reservation.NewAddOnLine(uuid.New(), 2, 1_000)
		require.NoError(t, err)
		line2, err := reservation.NewAddOnLine(uuid.New(), 1, 2_500)
		require.NoError(t, err)

		dr := mustRange(t, now.Add(48*time.Hour), now.Add(72*time.Hour))
		res, err := reservation.NewReservation(
			uuid.New(), uuid.New(), uuid.New(), uuid.New(),
			dr, reservation.MustMoney(100_000), []reservation.AddOnLine{line1, line2}, now,
		)
		require.NoError(t, err)
		assert.Equal(t, int64(4_500), res.AddOnsTotal().Cents())
	})

	t.Run("pay-at-creation flow starts confirmed", func(t *testing.T) {
		dr := mustRange(t, now.Add(48*time.Hour), now.Add(72*time.Hour))
		res, err := reservation.NewConfirmedReservation(
			uuid.New(), uuid.New(), uuid.New(), uuid.New(),
			dr, reservation.MustMoney(300_000), nil, approvedPayment(), now,
		)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		assert.True(t, res.HasApprovedPayment())
	})

	t.Run("pay-at-creation rejects a rejected payment", func(t *testing.T) {
		dr := mustRange(t, now.Add(48*time.Hour), now.Add(72*time.Hour))
		rejected := reservation.PaymentInfo{TransactionID: "TXN-3", Method: "card", Status: reservation.PaymentRejected}
		_, err := reservation.NewConfirmedReservation(
			uuid.New(), uuid.New(), uuid.New(), uuid.New(),
			dr, reservation.MustMoney(300_000), nil, rejected, now,
		)
		require.Error(t, err)
	})
}
