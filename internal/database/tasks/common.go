package tasks

import "github.com/SergeyKozhin/recurring-tasks/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
		"title",
		"description",
		"project_id",
		"assignee_id",
		"tags",
		"priority",
		"date",
		"recurring",
		"recurrence_id",
		"active",
		"created_at",
	).
	From(database.TasksTable)
