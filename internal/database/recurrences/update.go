package recurrences

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

// UpdateRule stores an edited rule together with the recomputed next anchor.
// The write only happens if nobody changed the row since state was read.
func (*Repository) UpdateRule(ctx context.Context, q database.Queryable, state *model.RecurrenceState) error {
	values := ruleColumns(state)
	values["next_anchor"] = state.NextAnchor

	return compareAndSwap(ctx, q, state, values)
}

func (*Repository) AdvanceRecurrence(ctx context.Context, q database.Queryable, state *model.RecurrenceState) error {
	return compareAndSwap(ctx, q, state, map[string]interface{}{
		"next_anchor":      state.NextAnchor,
		"occurrence_count": state.Count,
	})
}

func compareAndSwap(ctx context.Context, q database.Queryable, state *model.RecurrenceState, values map[string]interface{}) error {
	values["version"] = sq.Expr("version + 1")

	qb := database.PSQL.
		Update(database.RecurrencesTable).
		SetMap(values).
		Where(sq.Eq{"id": state.ID, "version": state.Version})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrRuleChangedConcurrently
	}

	state.Version++

	return nil
}
