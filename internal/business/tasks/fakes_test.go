package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

type fakeDB struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (d *fakeDB) Exec(context.Context, database.Sqlizer) (pgconn.CommandTag, error) { return nil, nil }
func (d *fakeDB) Get(context.Context, interface{}, database.Sqlizer) error          { return nil }
func (d *fakeDB) Select(context.Context, interface{}, database.Sqlizer) error       { return nil }

func (d *fakeDB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return &fakeTx{db: d}, nil
}

type fakeTx struct {
	fakeDB
	db        *fakeDB
	committed bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.committed = true
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if !t.committed {
		t.db.rollbacks++
	}
	return nil
}

type memTasks struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*model.Task
}

func newMemTasks() *memTasks {
	return &memTasks{tasks: map[int64]*model.Task{}}
}

func (m *memTasks) CreateTask(_ context.Context, _ database.Queryable, info *model.TaskCreate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.tasks[m.nextID] = &model.Task{
		ID:         m.nextID,
		Active:     true,
		CreatedAt:  time.Date(2024, time.January, 1, 0, 0, int(m.nextID), 0, time.UTC),
		TaskCreate: *info,
	}
	return m.nextID, nil
}

func (m *memTasks) GetTaskByID(_ context.Context, _ database.Queryable, id int64) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	c := *t
	return &c, nil
}

func (m *memTasks) GetTasksByRecurrence(_ context.Context, _ database.Queryable, filter model.TasksFilter) ([]*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []*model.Task
	for _, t := range m.tasks {
		if t.RecurrenceID == nil || *t.RecurrenceID != filter.RecurrenceID {
			continue
		}
		if filter.CreatedFrom != nil && t.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		c := *t
		res = append(res, &c)
	}

	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (m *memTasks) CountTasksByRecurrence(ctx context.Context, q database.Queryable, recurrenceID int64) (int, error) {
	tasks, err := m.GetTasksByRecurrence(ctx, q, model.TasksFilter{RecurrenceID: recurrenceID})
	return len(tasks), err
}

func (m *memTasks) UpdateTasks(_ context.Context, _ database.Queryable, ids []int64, update *model.TaskUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		t := m.tasks[id]
		t.Title = update.Title
		t.Description = update.Description
		t.AssigneeID = update.AssigneeID
		t.Tags = update.Tags
		t.Priority = update.Priority
		if update.Active != nil {
			t.Active = *update.Active
		}
	}
	return nil
}

func (m *memTasks) SetRecurrence(_ context.Context, _ database.Queryable, taskID, recurrenceID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[taskID]
	if !ok {
		return model.ErrNoRecord
	}
	t.Recurring = true
	t.RecurrenceID = &recurrenceID
	return nil
}

func (m *memTasks) DetachRecurrence(_ context.Context, _ database.Queryable, recurrenceID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tasks {
		if t.RecurrenceID != nil && *t.RecurrenceID == recurrenceID {
			t.Recurring = false
			t.RecurrenceID = nil
		}
	}
	return nil
}

func (m *memTasks) DetachTask(_ context.Context, _ database.Queryable, taskID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.tasks[taskID]
	t.Recurring = false
	t.RecurrenceID = nil
	return nil
}

func (m *memTasks) DeleteTask(_ context.Context, _ database.Queryable, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tasks, id)
	return nil
}

func (m *memTasks) recurring(recurrenceID int64) []*model.Task {
	tasks, _ := m.GetTasksByRecurrence(context.Background(), nil, model.TasksFilter{RecurrenceID: recurrenceID})
	return tasks
}

type memRecurrences struct {
	mu     sync.Mutex
	nextID int64
	states map[int64]*model.RecurrenceState
	// afterGet runs once a state was read, before it is handed out.
	afterGet func(state *model.RecurrenceState)
}

func newMemRecurrences() *memRecurrences {
	return &memRecurrences{states: map[int64]*model.RecurrenceState{}}
}

func copyState(s *model.RecurrenceState) *model.RecurrenceState {
	c := *s
	c.Rule.Weekdays = append([]time.Weekday(nil), s.Rule.Weekdays...)
	return &c
}

func (m *memRecurrences) CreateRecurrence(_ context.Context, _ database.Queryable, state *model.RecurrenceState) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	c := copyState(state)
	c.ID = m.nextID
	m.states[m.nextID] = c
	return m.nextID, nil
}

func (m *memRecurrences) GetRecurrence(_ context.Context, _ database.Queryable, id int64) (*model.RecurrenceState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	res := copyState(s)
	if m.afterGet != nil {
		m.afterGet(s)
	}
	return res, nil
}

func (m *memRecurrences) GetDueRecurrences(_ context.Context, _ database.Queryable, reference time.Time) ([]*model.RecurrenceState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []*model.RecurrenceState
	for _, s := range m.states {
		if !s.NextAnchor.After(reference) {
			res = append(res, copyState(s))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *memRecurrences) swap(state *model.RecurrenceState, apply func(stored *model.RecurrenceState)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.states[state.ID]
	if !ok || stored.Version != state.Version {
		return model.ErrRuleChangedConcurrently
	}
	apply(stored)
	stored.Version++
	state.Version++
	return nil
}

func (m *memRecurrences) UpdateRule(_ context.Context, _ database.Queryable, state *model.RecurrenceState) error {
	return m.swap(state, func(stored *model.RecurrenceState) {
		c := copyState(state)
		stored.Rule = c.Rule
		stored.RRule = c.RRule
		stored.NextAnchor = c.NextAnchor
	})
}

func (m *memRecurrences) AdvanceRecurrence(_ context.Context, _ database.Queryable, state *model.RecurrenceState) error {
	return m.swap(state, func(stored *model.RecurrenceState) {
		stored.NextAnchor = state.NextAnchor
		stored.Count = state.Count
	})
}

func (m *memRecurrences) DeleteRecurrence(_ context.Context, _ database.Queryable, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, id)
	return nil
}

func (m *memRecurrences) get(id int64) (*model.RecurrenceState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[id]
	if !ok {
		return nil, false
	}
	return copyState(s), true
}

type fakeLocker struct {
	mu     sync.Mutex
	held   map[string]bool
	locked map[string]bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}, locked: map[string]bool{}}
}

func (l *fakeLocker) Lock(_ context.Context, key string) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[key] || l.locked[key] {
		return nil, model.ErrLocked
	}
	l.held[key] = true

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, nil
}
