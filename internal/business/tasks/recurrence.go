package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/recurrence"
)

// SetRecurrence makes the task recurring or edits the rule of its series. An
// invalid rule rejects the edit and leaves the series as it was. Tasks that
// were already created are never touched.
func (s *Service) SetRecurrence(ctx context.Context, taskID int64, rule model.Rule) (*model.RecurrenceState, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.Recurring || task.RecurrenceID == nil {
		state, err := newSeries(rule, task.Date)
		if err != nil {
			return nil, err
		}

		if err := s.withTx(ctx, func(tx database.Tx) error {
			_, err := s.startSeries(ctx, tx, task.ID, state)
			return err
		}); err != nil {
			return nil, err
		}

		return state, nil
	}

	recurrenceID := *task.RecurrenceID

	var res *model.RecurrenceState
	err = s.withLock(ctx, recurrenceID, func() error {
		return s.withTx(ctx, func(tx database.Tx) error {
			state, err := s.recurrencesRepository.GetRecurrence(ctx, tx, recurrenceID)
			if err != nil {
				return fmt.Errorf("recurrencesRepository.GetRecurrence: %w", err)
			}

			if rule.Anchor.IsZero() {
				rule.Anchor = state.Rule.Anchor
			}
			rule.Anchor = recurrence.DateOf(rule.Anchor)

			rrule, err := recurrence.RRule(rule)
			if err != nil {
				return err
			}

			if err := recurrence.Reconfigure(state, rule); err != nil {
				return err
			}
			state.RRule = rrule

			if err := s.recurrencesRepository.UpdateRule(ctx, tx, state); err != nil {
				return fmt.Errorf("recurrencesRepository.UpdateRule: %w", err)
			}

			res = state
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Service) StopRecurrence(ctx context.Context, taskID int64) error {
	task, err := s.recurringTask(ctx, taskID)
	if err != nil {
		return err
	}

	recurrenceID := *task.RecurrenceID
	return s.withLock(ctx, recurrenceID, func() error {
		return s.withTx(ctx, func(tx database.Tx) error {
			return s.teardown(ctx, tx, recurrenceID)
		})
	})
}

// ContinueRecurrence takes a single task out of its series. The series itself
// keeps producing tasks.
func (s *Service) ContinueRecurrence(ctx context.Context, taskID int64) error {
	if _, err := s.recurringTask(ctx, taskID); err != nil {
		return err
	}

	if err := s.tasksRepository.DetachTask(ctx, s.db, taskID); err != nil {
		return fmt.Errorf("tasksRepository.DetachTask: %w", err)
	}

	return nil
}

func (s *Service) PreviewRecurrence(ctx context.Context, taskID int64) (*model.RecurrencePreview, error) {
	task, err := s.recurringTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	state, err := s.recurrencesRepository.GetRecurrence(ctx, s.db, *task.RecurrenceID)
	if err != nil {
		return nil, fmt.Errorf("recurrencesRepository.GetRecurrence: %w", err)
	}

	return s.preview(state.Rule, state.NextAnchor, state.Count, state.RRule)
}

func (s *Service) PreviewRule(_ context.Context, rule model.Rule) (*model.RecurrencePreview, error) {
	if rule.Anchor.IsZero() {
		rule.Anchor = defaultAnchor(rule, s.today())
	}
	rule.Anchor = recurrence.DateOf(rule.Anchor)

	if err := recurrence.Validate(rule); err != nil {
		return nil, err
	}

	rrule, err := recurrence.RRule(rule)
	if err != nil {
		return nil, err
	}

	return s.preview(rule, rule.Anchor, 0, rrule)
}

func (s *Service) preview(rule model.Rule, from time.Time, materialized int, rrule string) (*model.RecurrencePreview, error) {
	p, err := recurrence.NewPreview(rule, from, recurrence.PreviewConfig{
		MaxItems:     s.cfg.PreviewItems,
		Materialized: materialized,
	})
	if err != nil {
		return nil, err
	}

	return &model.RecurrencePreview{
		Dates:   p.Dates,
		HasMore: p.HasMore,
		Total:   p.Total,
		Message: recurrence.Message(rule, p, s.cfg.Locale),
		RRule:   rrule,
	}, nil
}

func (s *Service) teardown(ctx context.Context, q database.Queryable, recurrenceID int64) error {
	if err := s.tasksRepository.DetachRecurrence(ctx, q, recurrenceID); err != nil {
		return fmt.Errorf("tasksRepository.DetachRecurrence: %w", err)
	}

	if err := s.recurrencesRepository.DeleteRecurrence(ctx, q, recurrenceID); err != nil {
		return fmt.Errorf("recurrencesRepository.DeleteRecurrence: %w", err)
	}

	return nil
}
