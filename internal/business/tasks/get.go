package tasks

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

func (s *Service) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	task, err := s.tasksRepository.GetTaskByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("tasksRepository.GetTaskByID: %w", err)
	}

	return task, nil
}

func (s *Service) GetRecurrenceTasks(ctx context.Context, taskID int64) ([]*model.Task, error) {
	task, err := s.recurringTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasksRepository.GetTasksByRecurrence(ctx, s.db, model.TasksFilter{RecurrenceID: *task.RecurrenceID})
	if err != nil {
		return nil, fmt.Errorf("tasksRepository.GetTasksByRecurrence: %w", err)
	}

	return tasks, nil
}

func (s *Service) CountRecurrenceTasks(ctx context.Context, taskID int64) (int, error) {
	task, err := s.recurringTask(ctx, taskID)
	if err != nil {
		return 0, err
	}

	count, err := s.tasksRepository.CountTasksByRecurrence(ctx, s.db, *task.RecurrenceID)
	if err != nil {
		return 0, fmt.Errorf("tasksRepository.CountTasksByRecurrence: %w", err)
	}

	return count, nil
}

func (s *Service) recurringTask(ctx context.Context, taskID int64) (*model.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.Recurring || task.RecurrenceID == nil {
		return nil, model.ErrNotRecurring
	}

	return task, nil
}
