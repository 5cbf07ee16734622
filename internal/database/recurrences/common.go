package recurrences

import "github.com/SergeyKozhin/recurring-tasks/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
		"task_id",
		"anchor",
		"repeat_interval",
		"repeat_unit",
		"stop_type",
		"stop_until",
		"stop_count",
		"month_mode",
		"year_mode",
		"weekdays",
		"ordinal",
		"weekday",
		"day_of_month",
		"month_of_year",
		"rrule",
		"next_anchor",
		"occurrence_count",
		"version",
	).
	From(database.RecurrencesTable)
