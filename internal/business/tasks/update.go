package tasks

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

// UpdateTask edits the template fields of a task. For recurring tasks the scope
// decides whether the edit also reaches the other tasks of the series.
func (s *Service) UpdateTask(ctx context.Context, id int64, info *model.TaskUpdate, scope model.UpdateScope) (*model.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if info.Active != nil && !*info.Active && task.Recurring {
		return nil, model.ErrRecurringTask
	}

	ids := []int64{id}
	if task.Recurring && task.RecurrenceID != nil && scope != model.UpdateScopeThis && scope != "" {
		filter := model.TasksFilter{RecurrenceID: *task.RecurrenceID}
		if scope == model.UpdateScopeSubsequent {
			filter.CreatedFrom = &task.CreatedAt
		}

		siblings, err := s.tasksRepository.GetTasksByRecurrence(ctx, s.db, filter)
		if err != nil {
			return nil, fmt.Errorf("tasksRepository.GetTasksByRecurrence: %w", err)
		}

		for _, t := range siblings {
			if t.ID != id {
				ids = append(ids, t.ID)
			}
		}
	}

	if err := s.tasksRepository.UpdateTasks(ctx, s.db, ids, info); err != nil {
		return nil, fmt.Errorf("tasksRepository.UpdateTasks: %w", err)
	}

	return s.GetTask(ctx, id)
}
