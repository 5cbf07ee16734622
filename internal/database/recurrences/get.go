package recurrences

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

func (*Repository) GetRecurrence(ctx context.Context, q database.Queryable, id int64) (*model.RecurrenceState, error) {
	states, err := getRecurrences(ctx, q, baseQuery.Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	if len(states) == 0 {
		return nil, model.ErrNoRecord
	}

	return states[0], nil
}

func (*Repository) GetDueRecurrences(ctx context.Context, q database.Queryable, reference time.Time) ([]*model.RecurrenceState, error) {
	return getRecurrences(ctx, q, baseQuery.
		Where(sq.LtOrEq{"next_anchor": reference}).
		OrderBy("next_anchor", "id"))
}

func getRecurrences(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.RecurrenceState, error) {
	var dtos []*recurrenceDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.RecurrenceState, len(dtos))
	for i, d := range dtos {
		res[i] = mapToState(d)
	}

	return res, nil
}
