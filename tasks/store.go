// Package tasks is the task store as seen by the reminder subsystem and the
// HTTP API.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lifeos/types"
	"lifeos/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	taskColsArr = utils.GetCols(types.Task{})
	taskCols    = strings.Join(taskColsArr, ", ")
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// Store is the task store.
//
// FindCandidates and MarkNotified are the two operations the reminder
// scheduler depends on; the rest serve the HTTP API. MarkNotified is
// idempotent: marking an already-notified task is a no-op, never an error.
type Store interface {
	// FindCandidates returns every task eligible for a reminder check:
	// incomplete, not yet notified and with reminders enabled.
	FindCandidates(ctx context.Context) ([]types.Task, error)

	// MarkNotified records that a reminder dispatch was attempted for the
	// task. The flag is never reset by this subsystem.
	MarkNotified(ctx context.Context, id string) error

	Create(ctx context.Context, req types.CreateTask) (*types.Task, error)
	List(ctx context.Context) ([]types.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
}

// PgStore is the Postgres-backed Store used in production.
type PgStore struct {
	Pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{Pool: pool}
}

func (s *PgStore) FindCandidates(ctx context.Context) ([]types.Task, error) {
	rows, err := s.Pool.Query(
		ctx,
		"SELECT "+taskCols+" FROM tasks WHERE completed = false AND notified = false AND (reminder_offset IS NULL OR reminder_offset != $1)",
		types.ReminderDisabled,
	)

	if err != nil {
		return nil, fmt.Errorf("error querying candidate tasks: %w", err)
	}

	var candidates []types.Task

	err = pgxscan.ScanAll(&candidates, rows)

	if err != nil {
		return nil, fmt.Errorf("error scanning candidate tasks: %w", err)
	}

	return candidates, nil
}

func (s *PgStore) MarkNotified(ctx context.Context, id string) error {
	_, err := s.Pool.Exec(ctx, "UPDATE tasks SET notified = true WHERE task_id = $1", id)

	if err != nil {
		return fmt.Errorf("error marking task %s notified: %w", id, err)
	}

	return nil
}

func (s *PgStore) Create(ctx context.Context, req types.CreateTask) (*types.Task, error) {
	id := uuid.New().String()

	var task types.Task

	err := pgxscan.Get(
		ctx,
		s.Pool,
		&task,
		"INSERT INTO tasks (task_id, title, date, start_time, reminder_offset) VALUES ($1, $2, $3, $4, $5) RETURNING "+taskCols,
		id,
		req.Title,
		req.Date,
		req.StartTime,
		req.ReminderOffset,
	)

	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return &task, nil
}

func (s *PgStore) List(ctx context.Context) ([]types.Task, error) {
	rows, err := s.Pool.Query(ctx, "SELECT "+taskCols+" FROM tasks ORDER BY date ASC, start_time ASC")

	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}

	var list []types.Task

	err = pgxscan.ScanAll(&list, rows)

	if err != nil {
		return nil, fmt.Errorf("error scanning tasks: %w", err)
	}

	return list, nil
}

func (s *PgStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	tag, err := s.Pool.Exec(ctx, "UPDATE tasks SET completed = $1 WHERE task_id = $2", completed, id)

	if err != nil {
		return fmt.Errorf("error updating task %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
