package worker

import (
	"context"
	"log/slog"
	"time"

	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 5 * time.Minute

// Scheduler runs the periodic sweeps. A sweep that is still running when its next tick fires is skipped.
type Scheduler struct {
	cron   *cron.Cron
	cfg    config.WorkerConfig
	logger *slog.Logger

	reservations commands.ReservationCommands
	payments     commands.PaymentCommands
	points       commands.PointCommands
	outbox       commands.OutboxCommands

	cfgPayment config.PaymentConfig

	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(
	cfg config.WorkerConfig,
	paymentCfg config.PaymentConfig,
	logger *slog.Logger,
	reservations commands.ReservationCommands,
	payments commands.PaymentCommands,
	points commands.PointCommands,
	outbox commands.OutboxCommands,
) *Scheduler {
	cronLogger := cronLogger{logger: logger.With("component", "worker")}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		cfg:          cfg,
		cfgPayment:   paymentCfg,
		logger:       logger,
		reservations: reservations,
		payments:     payments,
		points:       points,
		outbox:       outbox,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Register adds every sweep to the cron table. It fails on an unparsable schedule.
func (s *Scheduler) Register() error {
	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) error
	}{
		{name: "expire_abandoned", spec: s.cfg.ExpireAbandonedSpec, run: s.ExpireAbandoned},
		{name: "refund_retry", spec: s.cfg.RefundRetrySpec, run: s.RetryRefunds},
		{name: "point_expiry", spec: s.cfg.PointExpirySpec, run: s.ExpirePoints},
		{name: "outbox_relay", spec: s.cfg.OutboxRelaySpec, run: s.RelayOutbox},
	}
	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, s.wrap(job.name, job.run)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("worker scheduler started")
}

// Stop cancels running sweeps and waits for them to return.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("worker scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) wrap(name string, run func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
		defer cancel()

		start := time.Now()
		if err := run(ctx); err != nil {
			s.logger.Error("worker job failed", "job", name, "error", err.Error())
			return
		}
		s.logger.Debug("worker job finished", "job", name, "duration", time.Since(start).String())
	}
}

// ExpireAbandoned fails expired prepared payments first so the reservation sweep sees them as abandoned.
func (s *Scheduler) ExpireAbandoned(ctx context.Context) error {
	expired, err := s.payments.ExpireAbandoned(ctx, int(s.cfgPayment.ExpiryBatch))
	if err != nil {
		return err
	}
	cancelled, err := s.reservations.CancelAbandoned(ctx, int(s.cfgPayment.ExpiryBatch))
	if err != nil {
		return err
	}
	if expired+cancelled > 0 {
		s.logger.Info("abandoned reservations swept", "expired_payments", expired, "cancelled_reservations", cancelled)
	}
	return nil
}

func (s *Scheduler) RetryRefunds(ctx context.Context) error {
	n, err := s.payments.ProcessPendingCancellations(ctx, int(s.cfgPayment.RefundBatch))
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("pending cancellations settled", "count", n)
	}
	return nil
}

func (s *Scheduler) ExpirePoints(ctx context.Context) error {
	n, err := s.points.ExpirePoints(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("point credits expired", "entries", n)
	}
	return nil
}

func (s *Scheduler) RelayOutbox(ctx context.Context) error {
	res, err := s.outbox.RelayDue(ctx)
	if err != nil {
		return err
	}
	if res.Sent+res.Rescheduled+res.Failed > 0 {
		s.logger.Info("outbox relayed", "sent", res.Sent, "rescheduled", res.Rescheduled, "failed", res.Failed)
	}
	return nil
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err.Error())...)
}
