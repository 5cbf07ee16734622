package tasks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/pkg/clock"
	"github.com/SergeyKozhin/recurring-tasks/internal/recurrence"
	"go.uber.org/zap"
)

type Service struct {
	db                    database.PGX
	tasksRepository       tasksRepository
	recurrencesRepository recurrencesRepository
	locker                locker
	clock                 clock.Clock
	logger                *zap.SugaredLogger
	cfg                   Config
}

type Config struct {
	PreviewItems     int
	SweepConcurrency int
	Locale           recurrence.Locale
}

type tasksRepository interface {
	CreateTask(ctx context.Context, q database.Queryable, task *model.TaskCreate) (int64, error)
	GetTaskByID(ctx context.Context, q database.Queryable, id int64) (*model.Task, error)
	GetTasksByRecurrence(ctx context.Context, q database.Queryable, filter model.TasksFilter) ([]*model.Task, error)
	CountTasksByRecurrence(ctx context.Context, q database.Queryable, recurrenceID int64) (int, error)
	UpdateTasks(ctx context.Context, q database.Queryable, ids []int64, update *model.TaskUpdate) error
	SetRecurrence(ctx context.Context, q database.Queryable, taskID, recurrenceID int64) error
	DetachRecurrence(ctx context.Context, q database.Queryable, recurrenceID int64) error
	DetachTask(ctx context.Context, q database.Queryable, taskID int64) error
	DeleteTask(ctx context.Context, q database.Queryable, id int64) error
}

type recurrencesRepository interface {
	CreateRecurrence(ctx context.Context, q database.Queryable, state *model.RecurrenceState) (int64, error)
	GetRecurrence(ctx context.Context, q database.Queryable, id int64) (*model.RecurrenceState, error)
	GetDueRecurrences(ctx context.Context, q database.Queryable, reference time.Time) ([]*model.RecurrenceState, error)
	UpdateRule(ctx context.Context, q database.Queryable, state *model.RecurrenceState) error
	AdvanceRecurrence(ctx context.Context, q database.Queryable, state *model.RecurrenceState) error
	DeleteRecurrence(ctx context.Context, q database.Queryable, id int64) error
}

type locker interface {
	Lock(ctx context.Context, key string) (func(context.Context) error, error)
}

func NewService(
	db database.PGX,
	tasksRepo tasksRepository,
	recurrencesRepo recurrencesRepository,
	locker locker,
	clk clock.Clock,
	logger *zap.SugaredLogger,
	cfg Config,
) *Service {
	if cfg.PreviewItems <= 0 {
		cfg.PreviewItems = recurrence.DefaultPreviewItems
	}
	if cfg.SweepConcurrency <= 0 {
		cfg.SweepConcurrency = 1
	}

	return &Service{
		db:                    db,
		tasksRepository:       tasksRepo,
		recurrencesRepository: recurrencesRepo,
		locker:                locker,
		clock:                 clk,
		logger:                logger,
		cfg:                   cfg,
	}
}

func (s *Service) today() time.Time {
	return recurrence.DateOf(s.clock.Now())
}

func (s *Service) withLock(ctx context.Context, recurrenceID int64, fn func() error) error {
	key := "recurrence:" + strconv.FormatInt(recurrenceID, 10)

	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(ctx); err != nil {
			s.logger.Errorw("failed to release lock", "key", key, "err", err)
		}
	}()

	return fn()
}

func (s *Service) withTx(ctx context.Context, fn func(tx database.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
