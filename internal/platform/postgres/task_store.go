package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nollyprod/stagehand-api/internal/platform/logger"
	"github.com/nollyprod/stagehand-api/internal/store"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// TaskStore implements the task.Store interface using PostgreSQL. Payloads
// and results are stored as JSONB; lifecycle transitions lock the row for
// the duration of the check-and-update so concurrent writers serialize and
// a poller can never observe a torn intermediate state.
type TaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a TaskStore backed by the given database.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// CreateTask persists a new task in StatusWaiting.
func (s *TaskStore) CreateTask(ctx context.Context, t *task.Task) error {
	if t.Status != task.StatusWaiting {
		return fmt.Errorf("%w: new task must be waiting, got %q", task.ErrInvalidStatus, t.Status)
	}

	query := `
		INSERT INTO tasks (id, type, payload, status, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		string(t.Type),
		[]byte(t.Payload),
		string(t.Status),
		t.Progress,
		t.CreatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Error("failed to save task",
			"task_id", t.ID,
			"task_type", t.Type,
			"error", err)
		return fmt.Errorf("failed to save task: %w", MapError(err))
	}

	return nil
}

// GetTask returns a snapshot of the task, or task.ErrTaskNotFound.
func (s *TaskStore) GetTask(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	query := `
		SELECT id, type, payload, status, progress, result, error_message,
		       created_at, started_at, completed_at
		FROM tasks
		WHERE id = $1
	`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", MapError(err))
	}

	return t, nil
}

// MarkActive transitions the task from waiting to active, recording the
// start time and resetting progress to zero.
func (s *TaskStore) MarkActive(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, func(t *task.Task, tx *sql.Tx) error {
		if !t.Status.CanTransitionTo(task.StatusActive) {
			return fmt.Errorf("%w: cannot activate task in status %q", task.ErrInvalidStatus, t.Status)
		}

		query := `
			UPDATE tasks
			SET status = $1, started_at = $2, progress = 0, updated_at = $2
			WHERE id = $3
		`
		_, err := tx.ExecContext(ctx, query, string(task.StatusActive), time.Now().UTC(), id)
		return err
	})
}

// SetProgress updates progress on an active task, clamped to [0,100] and
// never decreasing.
func (s *TaskStore) SetProgress(ctx context.Context, id uuid.UUID, progress int) error {
	return s.transition(ctx, id, func(t *task.Task, tx *sql.Tx) error {
		if t.Status != task.StatusActive {
			return fmt.Errorf("%w: progress updates require an active task, got %q", task.ErrInvalidStatus, t.Status)
		}

		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		if progress <= t.Progress {
			return nil
		}

		query := `UPDATE tasks SET progress = $1, updated_at = $2 WHERE id = $3`
		_, err := tx.ExecContext(ctx, query, progress, time.Now().UTC(), id)
		return err
	})
}

// CompleteTask transitions an active task to completed with a result. The
// status, result, progress, and completion time change in one statement
// inside the row lock, so a concurrent reader sees either none or all of
// them.
func (s *TaskStore) CompleteTask(ctx context.Context, id uuid.UUID, result json.RawMessage) error {
	return s.transition(ctx, id, func(t *task.Task, tx *sql.Tx) error {
		if !t.Status.CanTransitionTo(task.StatusCompleted) {
			return fmt.Errorf("%w: cannot complete task in status %q", task.ErrInvalidStatus, t.Status)
		}

		query := `
			UPDATE tasks
			SET status = $1, result = $2, error_message = '', progress = 100,
			    completed_at = $3, updated_at = $3
			WHERE id = $4
		`
		_, err := tx.ExecContext(ctx, query, string(task.StatusCompleted), []byte(result), time.Now().UTC(), id)
		return err
	})
}

// FailTask transitions an active task to failed with an error message.
func (s *TaskStore) FailTask(ctx context.Context, id uuid.UUID, errMsg string) error {
	return s.transition(ctx, id, func(t *task.Task, tx *sql.Tx) error {
		if !t.Status.CanTransitionTo(task.StatusFailed) {
			return fmt.Errorf("%w: cannot fail task in status %q", task.ErrInvalidStatus, t.Status)
		}

		query := `
			UPDATE tasks
			SET status = $1, result = NULL, error_message = $2,
			    completed_at = $3, updated_at = $3
			WHERE id = $4
		`
		_, err := tx.ExecContext(ctx, query, string(task.StatusFailed), errMsg, time.Now().UTC(), id)
		return err
	})
}

// transition loads the task under a row lock, rejects writes to terminal
// tasks, and applies fn within the same transaction.
func (s *TaskStore) transition(ctx context.Context, id uuid.UUID, fn func(t *task.Task, tx *sql.Tx) error) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			SELECT id, type, payload, status, progress, result, error_message,
			       created_at, started_at, completed_at
			FROM tasks
			WHERE id = $1
			FOR UPDATE
		`

		t, err := scanTask(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return task.ErrTaskNotFound
			}
			return fmt.Errorf("failed to load task for update: %w", MapError(err))
		}

		if t.Terminal() {
			return task.ErrTaskTerminal
		}

		return fn(t, tx)
	})
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t        task.Task
		taskType string
		status   string
		payload  []byte
		result   []byte
		errMsg   sql.NullString
	)

	err := row.Scan(
		&t.ID,
		&taskType,
		&payload,
		&status,
		&t.Progress,
		&result,
		&errMsg,
		&t.CreatedAt,
		&t.StartedAt,
		&t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Type = task.Type(taskType)
	t.Status = task.Status(status)
	t.Payload = payload
	t.Result = result
	t.Error = errMsg.String

	return &t, nil
}
