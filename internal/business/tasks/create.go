package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/recurrence"
)

func (s *Service) CreateTask(ctx context.Context, info *model.TaskCreate, rule *model.Rule) (*model.Task, error) {
	if info.Date.IsZero() {
		info.Date = s.today()
	}
	info.Date = recurrence.DateOf(info.Date)

	var state *model.RecurrenceState
	if rule != nil {
		var err error
		state, err = newSeries(*rule, info.Date)
		if err != nil {
			return nil, err
		}
	}

	task := &model.Task{Active: true, TaskCreate: *info}

	err := s.withTx(ctx, func(tx database.Tx) error {
		id, err := s.tasksRepository.CreateTask(ctx, tx, info)
		if err != nil {
			return fmt.Errorf("tasksRepository.CreateTask: %w", err)
		}
		task.ID = id

		if state == nil {
			return nil
		}

		recurrenceID, err := s.startSeries(ctx, tx, id, state)
		if err != nil {
			return err
		}

		task.Recurring = true
		task.RecurrenceID = &recurrenceID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func newSeries(rule model.Rule, from time.Time) (*model.RecurrenceState, error) {
	if rule.Anchor.IsZero() {
		rule.Anchor = defaultAnchor(rule, from)
	}
	rule.Anchor = recurrence.DateOf(rule.Anchor)

	state, err := recurrence.NewState(rule)
	if err != nil {
		return nil, err
	}

	state.RRule, err = recurrence.RRule(rule)
	if err != nil {
		return nil, err
	}

	return state, nil
}

// defaultAnchor starts a series right after its template task: one interval
// later for daily rules, the next day otherwise.
func defaultAnchor(rule model.Rule, from time.Time) time.Time {
	if rule.Unit == model.UnitDay && rule.Interval > 0 {
		return from.AddDate(0, 0, rule.Interval)
	}

	return from.AddDate(0, 0, 1)
}

func (s *Service) startSeries(ctx context.Context, q database.Queryable, taskID int64, state *model.RecurrenceState) (int64, error) {
	state.TaskID = taskID

	id, err := s.recurrencesRepository.CreateRecurrence(ctx, q, state)
	if err != nil {
		return 0, fmt.Errorf("recurrencesRepository.CreateRecurrence: %w", err)
	}
	state.ID = id

	if err := s.tasksRepository.SetRecurrence(ctx, q, taskID, id); err != nil {
		return 0, fmt.Errorf("tasksRepository.SetRecurrence: %w", err)
	}

	return id, nil
}
