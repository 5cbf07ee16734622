package recurrences

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/recurring-tasks/internal/database"
)

func (*Repository) DeleteRecurrence(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Delete(database.RecurrencesTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
