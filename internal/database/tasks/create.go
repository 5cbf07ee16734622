package tasks

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

func (*Repository) CreateTask(ctx context.Context, q database.Queryable, task *model.TaskCreate) (int64, error) {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}

	qb := database.PSQL.
		Insert(database.TasksTable).
		Columns(
			"title",
			"description",
			"project_id",
			"assignee_id",
			"tags",
			"priority",
			"date",
		).
		Values(
			task.Title,
			task.Description,
			task.ProjectID,
			task.AssigneeID,
			tags,
			task.Priority,
			task.Date,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
