package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/pkg/clock"
	"github.com/robfig/cron/v3"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

type sweepService interface {
	Sweep(ctx context.Context, reference time.Time) (*model.SweepResult, error)
}

type Sweeper struct {
	logger   *zap.SugaredLogger
	service  sweepService
	clock    clock.Clock
	schedule string
	cron     *cron.Cron
}

func NewSweeper(logger *zap.SugaredLogger, service sweepService, clk clock.Clock, schedule string) *Sweeper {
	cl := cronLogger{logger: logger}

	return &Sweeper{
		logger:   logger,
		service:  service,
		clock:    clk,
		schedule: schedule,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Start runs one sweep right away and then follows the schedule until Stop is
// called or the application shuts down.
func (s *Sweeper) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("parse sweep schedule %q: %w", s.schedule, err)
	}

	// initial sweep
	go s.Sweep(ctx)

	s.cron.Start()
	closer.Bind(s.Stop)

	return nil
}

func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) Sweep(ctx context.Context) {
	reference := s.clock.Now()
	s.logger.Debugw("sweeping recurrences", "reference", reference)

	res, err := s.service.Sweep(ctx, reference)
	if err != nil {
		s.logger.Errorw("failed to sweep recurrences", "err", err)
		return
	}

	if res.Failed > 0 {
		s.logger.Warnw("sweep finished with failures",
			"due", res.Due, "created", res.Created, "skipped", res.Skipped, "failed", res.Failed)
		return
	}

	s.logger.Infow("sweep finished", "due", res.Due, "created", res.Created, "skipped", res.Skipped)
}

type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "err", err)...)
}
