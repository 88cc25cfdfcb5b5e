package commands

import (
	"context"
	"log/slog"
	"time"

	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"
	"booking-marketplace/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
)

const (
	relayBaseDelay   = 5 * time.Second
	relayMaxDelay    = 10 * time.Minute
	relayMaxAttempts = 10
	relayBatch       = 100
	lastErrorMaxLen  = 512
)

type RelayResult struct {
	Sent        int
	Rescheduled int
	Failed      int
}

type OutboxCommands interface {
	// RelayDue publishes queued outbox jobs that are due. Jobs stay locked until the relay commits.
	RelayDue(ctx context.Context) (*RelayResult, error)
}

type outboxUseCaseImpl struct {
	uow         shared.UnitOfWork
	publisher   shared.EventPublisher
	clock       clock.Clock
	batch       int32
	maxAttempts int32
}

func NewOutboxUseCase(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock, cfg config.WorkerConfig) OutboxCommands {
	batch, maxAttempts := cfg.OutboxBatch, cfg.OutboxMaxAttempts
	if batch <= 0 {
		batch = relayBatch
	}
	if maxAttempts <= 0 {
		maxAttempts = relayMaxAttempts
	}
	return &outboxUseCaseImpl{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		batch:       batch,
		maxAttempts: maxAttempts,
	}
}

func (o *outboxUseCaseImpl) RelayDue(ctx context.Context) (*RelayResult, error) {
	result := &RelayResult{}
	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		*result = RelayResult{}
		now := o.clock.Now()

		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, o.batch)
		if err != nil {
			return storeErr(err)
		}

		for _, job := range jobs {
			perr := o.publisher.Publish(ctx, job.Topic, job.ID, job.Payload)
			if perr == nil {
				if err := tx.Notifications().MarkSent(ctx, tx.DB(), job.ID); err != nil {
					return storeErr(err)
				}
				result.Sent++
				continue
			}

			if job.Attempts+1 >= o.maxAttempts {
				slog.Error("outbox job exhausted its attempts",
					"job_id", job.ID.String(),
					"topic", job.Topic,
					"attempts", job.Attempts+1,
					"error", perr.Error())
				if err := tx.Notifications().MarkFailed(ctx, tx.DB(), job.ID, errs.Summary(perr, lastErrorMaxLen)); err != nil {
					return storeErr(err)
				}
				result.Failed++
				continue
			}

			slog.Warn("outbox publish failed, rescheduling",
				"job_id", job.ID.String(),
				"topic", job.Topic,
				"attempt", job.Attempts+1,
				"error", perr.Error())
			if err := tx.Notifications().Reschedule(ctx, tx.DB(), job.ID, now.Add(relayDelay(job.Attempts)), errs.Summary(perr, lastErrorMaxLen)); err != nil {
				return storeErr(err)
			}
			result.Rescheduled++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// relayDelay doubles from relayBaseDelay per attempt, capped at relayMaxDelay.
// Jitter is off so a rescheduled job's run_at is reproducible.
func relayDelay(attempts int32) time.Duration {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     relayBaseDelay,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         relayMaxDelay,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()

	delay := b.NextBackOff()
	for range attempts {
		delay = b.NextBackOff()
	}
	return delay
}
