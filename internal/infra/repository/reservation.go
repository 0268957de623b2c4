package repository

import (
	"context"
	"errors"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
)

type ReservationRepository struct{}

func NewReservationRepository() commands.ReservationRepository {
	return &ReservationRepository{}
}

const reservationColumns = `
	id, reservation_number, user_id, vehicle_id, pickup_branch_id, return_branch_id,
	start_date, end_date, status, total_cost_cents,
	payment_transaction_id, payment_method, payment_status,
	voucher_sent, canceled_at, refund_amount_cents, created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	var (
		txnID, method, status *string
	)
	if p := res.Payment(); p != nil {
		txnID = &p.TransactionID
		method = &p.Method
		s := string(p.Status)
		status = &s
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO reservations (
			id, reservation_number, user_id, vehicle_id, pickup_branch_id, return_branch_id,
			start_date, end_date, status, total_cost_cents,
			payment_transaction_id, payment_method, payment_status,
			voucher_sent, refund_amount_cents, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		res.ID(), res.Number(), res.UserID(), res.VehicleID(), res.PickupBranchID(), res.ReturnBranchID(),
		res.Dates().Start(), res.Dates().End(), res.Status().String(), res.TotalCost().Cents(),
		txnID, method, status,
		res.VoucherSent(), res.RefundAmount().Cents(), res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to insert reservation", err)
	}

	for _, line := range res.AddOns() {
		_, err := tx.Exec(ctx, `
			INSERT INTO reservation_add_ons (reservation_id, add_on_id, quantity, item_price_cents)
			VALUES ($1, $2, $3, $4)`,
			res.ID(), line.AddOnID(), line.Quantity(), line.ItemPrice().Cents(),
		)
		if err != nil {
			return wrapPgErr("failed to insert reservation add-on", err)
		}
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row := dbtx.QueryRow(ctx, `SELECT`+reservationColumns+` FROM reservations WHERE id = $1`, id)
	return r.scanReservation(ctx, dbtx, row)
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row := tx.QueryRow(ctx, `SELECT`+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id)
	return r.scanReservation(ctx, tx, row)
}

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	var txnID, method, status *string
	if p := res.Payment(); p != nil {
		txnID = &p.TransactionID
		method = &p.Method
		s := string(p.Status)
		status = &s
	}

	tag, err := tx.Exec(ctx, `
		UPDATE reservations SET
			status = $2,
			payment_transaction_id = $3,
			payment_method = $4,
			payment_status = $5,
			voucher_sent = $6,
			canceled_at = $7,
			refund_amount_cents = $8,
			updated_at = $9
		WHERE id = $1`,
		res.ID(), res.Status().String(), txnID, method, status,
		res.VoucherSent(), res.CanceledAt(), res.RefundAmount().Cents(), res.UpdatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) CountOverlapping(
	ctx context.Context,
	dbtx db.DBTX,
	vehicleID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (int64, error) {
	// Half-open ranges: touching bookings do not overlap.
	query := `
		SELECT COUNT(*) FROM reservations
		WHERE vehicle_id = $1
		  AND status = ANY($2)
		  AND start_date < $4
		  AND end_date > $3`
	args := []any{vehicleID, blockingStatusStrings(), start, end}
	if excludeID != nil {
		query += ` AND id <> $5`
		args = append(args, *excludeID)
	}

	var count int64
	if err := dbtx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapPgErr("failed to count overlapping reservations", err)
	}
	return count, nil
}

func (r *ReservationRepository) scanReservation(ctx context.Context, dbtx db.DBTX, row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, userID, vehicleID, pickupBranch, returnBranch uuid.UUID
		number, status                                    string
		start, end, createdAt, updatedAt                  time.Time
		totalCostCents, refundCents                       int64
		txnID, method, payStatus                          *string
		voucherSent                                       bool
		canceledAt                                        *time.Time
	)
	err := row.Scan(
		&id, &number, &userID, &vehicleID, &pickupBranch, &returnBranch,
		&start, &end, &status, &totalCostCents,
		&txnID, &method, &payStatus,
		&voucherSent, &canceledAt, &refundCents, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to scan reservation", err)
	}

	lines, err := r.loadAddOnLines(ctx, dbtx, id)
	if err != nil {
		return nil, err
	}

	var payment *reservation.PaymentInfo
	if txnID != nil && payStatus != nil {
		m := ""
		if method != nil {
			m = *method
		}
		payment = &reservation.PaymentInfo{
			TransactionID: *txnID,
			Method:        m,
			Status:        reservation.PaymentStatus(*payStatus),
		}
	}

	return reservation.Reconstruct(
		id, number, userID, vehicleID, pickupBranch, returnBranch,
		reservation.ReconstructDateRange(start, end),
		reservation.Status(status),
		reservation.MustMoney(totalCostCents),
		payment,
		lines,
		voucherSent,
		canceledAt,
		reservation.MustMoney(refundCents),
		createdAt, updatedAt,
	), nil
}

func (r *ReservationRepository) loadAddOnLines(ctx context.Context, dbtx db.DBTX, reservationID uuid.UUID) ([]reservation.AddOnLine, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT add_on_id, quantity, item_price_cents
		FROM reservation_add_ons
		WHERE reservation_id = $1
		ORDER BY add_on_id`, reservationID)
	if err != nil {
		return nil, wrapPgErr("failed to load reservation add-ons", err)
	}
	defer rows.Close()

	var lines []reservation.AddOnLine
	for rows.Next() {
		var (
			addOnID    uuid.UUID
			quantity   int32
			priceCents int64
		)
		if err := rows.Scan(&addOnID, &quantity, &priceCents); err != nil {
			return nil, wrapPgErr("failed to scan reservation add-on", err)
		}
		line, err := reservation.NewAddOnLine(addOnID, quantity, priceCents)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt reservation add-on row", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate reservation add-ons", err)
	}
	return lines, nil
}

func blockingStatusStrings() []string {
	blocking := reservation.BlockingStatuses()
	out := make([]string, len(blocking))
	for i, s := range blocking {
		out[i] = s.String()
	}
	return out
}

// wrapPgErr classifies pg error codes into repository kinds. The exclusion
// constraint on reservation date ranges surfaces here as a conflict.
func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		case pgExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
