package recurrences

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

func (*Repository) CreateRecurrence(ctx context.Context, q database.Queryable, state *model.RecurrenceState) (int64, error) {
	values := ruleColumns(state)
	values["task_id"] = state.TaskID
	values["next_anchor"] = state.NextAnchor
	values["occurrence_count"] = state.Count

	qb := database.PSQL.
		Insert(database.RecurrencesTable).
		SetMap(values).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
