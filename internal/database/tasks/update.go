package tasks

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

func (*Repository) UpdateTasks(ctx context.Context, q database.Queryable, ids []int64, update *model.TaskUpdate) error {
	if len(ids) == 0 {
		return nil
	}

	tags := update.Tags
	if tags == nil {
		tags = []string{}
	}

	values := map[string]interface{}{
		"title":       update.Title,
		"description": update.Description,
		"assignee_id": update.AssigneeID,
		"tags":        tags,
		"priority":    update.Priority,
	}
	if update.Active != nil {
		values["active"] = *update.Active
	}

	qb := database.PSQL.
		Update(database.TasksTable).
		SetMap(values).
		Where(sq.Eq{"id": ids})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) SetRecurrence(ctx context.Context, q database.Queryable, taskID, recurrenceID int64) error {
	qb := database.PSQL.
		Update(database.TasksTable).
		SetMap(map[string]interface{}{
			"recurring":     true,
			"recurrence_id": recurrenceID,
		}).
		Where(sq.Eq{"id": taskID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) DetachRecurrence(ctx context.Context, q database.Queryable, recurrenceID int64) error {
	return detach(ctx, q, sq.Eq{"recurrence_id": recurrenceID})
}

// DetachTask turns a single task into a plain task. The rest of the series
// keeps going.
func (*Repository) DetachTask(ctx context.Context, q database.Queryable, taskID int64) error {
	return detach(ctx, q, sq.Eq{"id": taskID})
}

func detach(ctx context.Context, q database.Queryable, predicate interface{}) error {
	qb := database.PSQL.
		Update(database.TasksTable).
		SetMap(map[string]interface{}{
			"recurring":     false,
			"recurrence_id": nil,
		}).
		Where(predicate)

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
