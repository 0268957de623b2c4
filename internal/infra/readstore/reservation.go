package readstore

import (
	"context"
	"errors"

	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) queries.ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT r.id, r.reservation_number, r.user_id, u.email,
		       r.vehicle_id, v.brand || ' ' || v.model,
		       r.pickup_branch_id, pb.name,
		       r.return_branch_id, rb.name,
		       r.start_date, r.end_date, r.status, r.total_cost_cents,
		       r.payment_transaction_id, r.payment_method, r.payment_status,
		       r.voucher_sent, r.canceled_at, r.refund_amount_cents,
		       r.created_at, r.updated_at
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		JOIN vehicles v ON v.id = r.vehicle_id
		JOIN branches pb ON pb.id = r.pickup_branch_id
		JOIN branches rb ON rb.id = r.return_branch_id
		WHERE r.id = $1`, id)

	var (
		view                     queries.ReservationView
		txnID, method, payStatus *string
	)
	err := row.Scan(
		&view.ID, &view.ReservationNumber, &view.UserID, &view.UserEmail,
		&view.VehicleID, &view.VehicleName,
		&view.PickupBranchID, &view.PickupBranchName,
		&view.ReturnBranchID, &view.ReturnBranchName,
		&view.StartDate, &view.EndDate, &view.Status, &view.TotalCostCents,
		&txnID, &method, &payStatus,
		&view.VoucherSent, &view.CanceledAt, &view.RefundAmountCents,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read reservation", err)
	}

	if txnID != nil && payStatus != nil {
		m := ""
		if method != nil {
			m = *method
		}
		view.Payment = &queries.PaymentView{
			TransactionID: *txnID,
			Method:        m,
			Status:        *payStatus,
		}
	}

	addOns, err := s.loadAddOns(ctx, id)
	if err != nil {
		return nil, err
	}
	view.AddOns = addOns

	return &view, nil
}

func (s *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.reservation_number, r.vehicle_id, v.brand || ' ' || v.model,
		       r.start_date, r.end_date, r.status, r.total_cost_cents, r.created_at
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var item queries.ReservationListItem
		err := rows.Scan(
			&item.ID, &item.ReservationNumber, &item.VehicleID, &item.VehicleName,
			&item.StartDate, &item.EndDate, &item.Status, &item.TotalCostCents, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return items, nil
}

func (s *ReservationReadStore) loadAddOns(ctx context.Context, reservationID uuid.UUID) ([]queries.AddOnLineView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ra.add_on_id, a.name, ra.quantity, ra.item_price_cents
		FROM reservation_add_ons ra
		JOIN add_ons a ON a.id = ra.add_on_id
		WHERE ra.reservation_id = $1
		ORDER BY a.name`, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation add-ons", err)
	}
	defer rows.Close()

	var views []queries.AddOnLineView
	for rows.Next() {
		var v queries.AddOnLineView
		if err := rows.Scan(&v.AddOnID, &v.AddOnName, &v.Quantity, &v.ItemPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation add-on", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation add-ons", err)
	}
	return views, nil
}
