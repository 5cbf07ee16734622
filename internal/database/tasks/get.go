package tasks

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

func (*Repository) GetTaskByID(ctx context.Context, q database.Queryable, id int64) (*model.Task, error) {
	tasks, err := getTasks(ctx, q, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}

	if len(tasks) == 0 {
		return nil, model.ErrNoRecord
	}

	return tasks[0], nil
}

func (*Repository) GetTasksByRecurrence(ctx context.Context, q database.Queryable, filter model.TasksFilter) ([]*model.Task, error) {
	predicate := sq.And{sq.Eq{"recurrence_id": filter.RecurrenceID}}
	if filter.CreatedFrom != nil {
		predicate = append(predicate, sq.GtOrEq{"created_at": *filter.CreatedFrom})
	}

	return getTasks(ctx, q, predicate)
}

func (*Repository) CountTasksByRecurrence(ctx context.Context, q database.Queryable, recurrenceID int64) (int, error) {
	qb := database.PSQL.
		Select("count(*)").
		From(database.TasksTable).
		Where(sq.Eq{"recurrence_id": recurrenceID})

	var count int
	if err := q.Get(ctx, &count, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return count, nil
}

func getTasks(ctx context.Context, q database.Queryable, predicate interface{}) ([]*model.Task, error) {
	qb := baseQuery.
		Where(predicate).
		OrderBy("date", "id")

	var dtos []*taskDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Task, len(dtos))
	for i, d := range dtos {
		res[i] = mapToTask(d)
	}

	return res, nil
}
