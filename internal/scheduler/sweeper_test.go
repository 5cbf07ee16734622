package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

type fakeSweepService struct {
	calls chan time.Time
	res   *model.SweepResult
	err   error
}

func (f *fakeSweepService) Sweep(_ context.Context, reference time.Time) (*model.SweepResult, error) {
	f.calls <- reference
	return f.res, f.err
}

var now = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

func TestStartRunsInitialSweep(t *testing.T) {
	service := &fakeSweepService{calls: make(chan time.Time, 1), res: &model.SweepResult{}}
	s := NewSweeper(zap.NewNop().Sugar(), service, fixedClock(now), "@hourly")

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	select {
	case reference := <-service.calls:
		assert.Equal(t, now, reference)
	case <-time.After(time.Second):
		t.Fatal("initial sweep did not run")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewSweeper(zap.NewNop().Sugar(), &fakeSweepService{}, fixedClock(now), "every tuesday")

	require.Error(t, s.Start(context.Background()))
}

func TestSweepLogsOutcome(t *testing.T) {
	tests := []struct {
		name    string
		res     *model.SweepResult
		err     error
		message string
	}{
		{name: "clean", res: &model.SweepResult{Due: 2, Created: 2}, message: "sweep finished"},
		{name: "failures", res: &model.SweepResult{Due: 2, Created: 1, Failed: 1}, message: "sweep finished with failures"},
		{name: "error", err: errors.New("db down"), message: "failed to sweep recurrences"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			service := &fakeSweepService{calls: make(chan time.Time, 1), res: tt.res, err: tt.err}
			s := NewSweeper(zap.New(core).Sugar(), service, fixedClock(now), "@hourly")

			s.Sweep(context.Background())

			require.Equal(t, 1, logs.FilterMessage(tt.message).Len())
		})
	}
}
