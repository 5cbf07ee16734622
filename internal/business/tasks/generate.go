package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/recurrence"
	"golang.org/x/sync/errgroup"
)

// GenerateDue creates the next task of a series if it is due by reference.
// It returns nil when nothing was due. A series whose stop condition is met is
// torn down and its tasks become plain tasks.
func (s *Service) GenerateDue(ctx context.Context, recurrenceID int64, reference time.Time) (*model.Task, error) {
	var created *model.Task

	err := s.withLock(ctx, recurrenceID, func() error {
		return s.withTx(ctx, func(tx database.Tx) error {
			state, err := s.recurrencesRepository.GetRecurrence(ctx, tx, recurrenceID)
			if err != nil {
				return fmt.Errorf("recurrencesRepository.GetRecurrence: %w", err)
			}

			due, err := recurrence.MaterializeDue(state, reference)
			if err != nil {
				return err
			}

			if due.Exhausted {
				return s.teardown(ctx, tx, recurrenceID)
			}

			if len(due.ToCreate) == 0 {
				return nil
			}

			template, err := s.lastTask(ctx, tx, recurrenceID)
			if errors.Is(err, model.ErrNoRecord) {
				return s.teardown(ctx, tx, recurrenceID)
			}
			if err != nil {
				return err
			}

			info := template.TaskCreate
			info.Date = due.ToCreate[0]

			id, err := s.tasksRepository.CreateTask(ctx, tx, &info)
			if err != nil {
				return fmt.Errorf("tasksRepository.CreateTask: %w", err)
			}

			if err := s.tasksRepository.SetRecurrence(ctx, tx, id, recurrenceID); err != nil {
				return fmt.Errorf("tasksRepository.SetRecurrence: %w", err)
			}

			if err := recurrence.Advance(state); err != nil {
				return err
			}

			if err := s.recurrencesRepository.AdvanceRecurrence(ctx, tx, state); err != nil {
				return fmt.Errorf("recurrencesRepository.AdvanceRecurrence: %w", err)
			}

			created = &model.Task{
				ID:           id,
				Recurring:    true,
				RecurrenceID: &recurrenceID,
				Active:       true,
				TaskCreate:   info,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) lastTask(ctx context.Context, q database.Queryable, recurrenceID int64) (*model.Task, error) {
	tasks, err := s.tasksRepository.GetTasksByRecurrence(ctx, q, model.TasksFilter{RecurrenceID: recurrenceID})
	if err != nil {
		return nil, fmt.Errorf("tasksRepository.GetTasksByRecurrence: %w", err)
	}

	if len(tasks) == 0 {
		return nil, model.ErrNoRecord
	}

	return tasks[len(tasks)-1], nil
}

// Sweep runs GenerateDue for every series that is due by reference. A series
// that is behind by several occurrences catches up one task per sweep. Failures
// are logged and counted; a locked series is skipped until the next sweep.
func (s *Service) Sweep(ctx context.Context, reference time.Time) (*model.SweepResult, error) {
	reference = recurrence.DateOf(reference)

	states, err := s.recurrencesRepository.GetDueRecurrences(ctx, s.db, reference)
	if err != nil {
		return nil, fmt.Errorf("recurrencesRepository.GetDueRecurrences: %w", err)
	}

	var created, skipped, failed int64

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.SweepConcurrency)

	for _, state := range states {
		id := state.ID
		g.Go(func() error {
			task, err := s.GenerateDue(ctx, id, reference)
			switch {
			case errors.Is(err, model.ErrLocked), errors.Is(err, model.ErrRuleChangedConcurrently):
				s.logger.Infow("recurrence busy, skipping", "recurrence_id", id, "err", err)
				atomic.AddInt64(&skipped, 1)
			case err != nil:
				s.logger.Errorw("failed to generate occurrence", "recurrence_id", id, "err", err)
				atomic.AddInt64(&failed, 1)
			case task != nil:
				atomic.AddInt64(&created, 1)
			}

			return nil
		})
	}

	_ = g.Wait()

	return &model.SweepResult{
		Due:     len(states),
		Created: int(created),
		Skipped: int(skipped),
		Failed:  int(failed),
	}, nil
}
