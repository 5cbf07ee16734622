package tasks

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if task.Recurring {
		return model.ErrRecurringTask
	}

	if err := s.tasksRepository.DeleteTask(ctx, s.db, id); err != nil {
		return fmt.Errorf("tasksRepository.DeleteTask: %w", err)
	}

	return nil
}
