package repository

import (
	"context"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"

	"github.com/google/uuid"
)

// NotificationJob is an outbox row. Jobs are written in the same transaction
// as the booking change that caused them, so a crash can never lose a
// notification that the booking claims to have scheduled.
type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	Attempts  int32
	RunAt     time.Time
	CreatedAt time.Time
}

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, status, attempts, run_at, created_at)
		VALUES ($1, $2, $3, $4, 'pending', 0, $5, $5)`,
		uuid.New(), kind, topic, payload, runAt,
	)
	if err != nil {
		return wrapPgErr("failed to enqueue notification job", err)
	}
	return nil
}

// ClaimDue locks and returns up to limit runnable jobs. SKIP LOCKED lets
// multiple dispatcher instances poll the same table without stepping on
// each other.
func (r *NotificationRepository) ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int32) ([]NotificationJob, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, kind, topic, payload, attempts, run_at, created_at
		FROM notification_jobs
		WHERE status = 'pending' AND run_at <= $1
		ORDER BY run_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED`, now, limit)
	if err != nil {
		return nil, wrapPgErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var job NotificationJob
		if err := rows.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &job.Attempts, &job.RunAt, &job.CreatedAt); err != nil {
			return nil, wrapPgErr("failed to scan notification job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx db.DBTX, id uuid.UUID, sentAt time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE notification_jobs
		SET status = 'sent', attempts = attempts + 1, sent_at = $2
		WHERE id = $1`, id, sentAt)
	if err != nil {
		return wrapPgErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed records the attempt and reschedules with a linear backoff until
// the attempt cap, after which the job is parked as failed.
func (r *NotificationRepository) MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time, maxAttempts int32) error {
	_, err := tx.Exec(ctx, `
		UPDATE notification_jobs
		SET attempts = attempts + 1,
		    status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END,
		    run_at = $2 + make_interval(mins => (attempts + 1))
		WHERE id = $1`, id, now, maxAttempts)
	if err != nil {
		return wrapPgErr("failed to mark notification job failed", err)
	}
	return nil
}

// MarkVoucherSent flips the reservation flag once the voucher email actually
// went out.
func (r *NotificationRepository) MarkVoucherSent(ctx context.Context, tx db.DBTX, reservationID uuid.UUID, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE reservations SET voucher_sent = TRUE, updated_at = $2 WHERE id = $1`,
		reservationID, now)
	if err != nil {
		return wrapPgErr("failed to mark voucher sent", err)
	}
	return nil
}
