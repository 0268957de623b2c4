package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/infra/db"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/mailer"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/repository"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/clock"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/google/uuid"
)

const (
	pollInterval = 5 * time.Second
	claimBatch   = 20
	maxAttempts  = 5
)

// Dispatcher drains the notification outbox: jobs are claimed in small
// batches, rendered against the current reservation state and handed to the
// mailer. Delivery failures are retried with backoff until the attempt cap.
type Dispatcher struct {
	uow           commands.UnitOfWork
	jobs          *repository.NotificationRepository
	reservationQs queries.ReservationQueries
	mailer        mailer.Mailer
	clock         clock.Clock

	done chan struct{}
}

func NewDispatcher(
	uow commands.UnitOfWork,
	jobs *repository.NotificationRepository,
	reservationQs queries.ReservationQueries,
	mailer mailer.Mailer,
	clock clock.Clock,
) *Dispatcher {
	return &Dispatcher{
		uow:           uow,
		jobs:          jobs,
		reservationQs: reservationQs,
		mailer:        mailer,
		clock:         clock,
		done:          make(chan struct{}),
	}
}

// Start begins polling until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Dispatcher) Stop() {
	<-d.done
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.drainOnce(ctx); err != nil {
				slog.Error("notification dispatch cycle failed", "error", err.Error())
			}
		}
	}
}

// drainOnce claims one batch and processes it inside a single transaction;
// SKIP LOCKED on the claim keeps concurrent dispatchers from double-sending.
func (d *Dispatcher) drainOnce(ctx context.Context) error {
	return d.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		now := d.clock.Now()
		claimed, err := d.jobs.ClaimDue(ctx, tx, now, claimBatch)
		if err != nil {
			return err
		}

		for _, job := range claimed {
			if err := d.deliver(ctx, tx, job); err != nil {
				slog.Warn("notification delivery failed",
					"job_id", job.ID, "topic", job.Topic, "attempts", job.Attempts, "error", err.Error())
				if err := d.jobs.MarkFailed(ctx, tx, job.ID, now, maxAttempts); err != nil {
					return err
				}
				continue
			}
			if err := d.jobs.MarkSent(ctx, tx, job.ID, now); err != nil {
				return err
			}
		}
		return nil
	})
}

type jobPayload struct {
	ReservationID     uuid.UUID `json:"reservation_id"`
	ReservationNumber string    `json:"reservation_number"`
}

func (d *Dispatcher) deliver(ctx context.Context, tx db.DBTX, job repository.NotificationJob) error {
	var payload jobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return err
	}

	view, err := d.reservationQs.GetByIDSystem(ctx, payload.ReservationID)
	if err != nil {
		return err
	}

	subject, body := renderMessage(job.Topic, view)
	if err := d.mailer.Send(ctx, view.UserEmail, subject, body); err != nil {
		return err
	}

	if job.Topic == "voucher" {
		return d.jobs.MarkVoucherSent(ctx, tx, view.ID, d.clock.Now())
	}
	return nil
}

func renderMessage(topic string, view *queries.ReservationView) (subject, body string) {
	switch topic {
	case "voucher":
		subject = fmt.Sprintf("Voucher %s", view.ReservationNumber)
		body = fmt.Sprintf(
			"Your reservation %s is confirmed.\n\nVehicle: %s\nPickup: %s\nReturn: %s\nFrom: %s\nTo: %s\nTotal: %.2f\n",
			view.ReservationNumber, view.VehicleName,
			view.PickupBranchName, view.ReturnBranchName,
			view.StartDate.Format(time.RFC1123), view.EndDate.Format(time.RFC1123),
			float64(view.TotalCostCents)/100,
		)
	case "reservation_created":
		subject = fmt.Sprintf("Reservation %s received", view.ReservationNumber)
		body = fmt.Sprintf(
			"We received your reservation %s for %s. Complete the payment to confirm it.\n",
			view.ReservationNumber, view.VehicleName,
		)
	default:
		subject = fmt.Sprintf("Update on reservation %s", view.ReservationNumber)
		body = fmt.Sprintf("Your reservation %s is now %s.\n", view.ReservationNumber, view.Status)
	}
	return subject, body
}
