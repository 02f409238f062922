package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

// taskRepository is the PostgreSQL-backed implementation of
// [TaskRepository]. Every statement carries owner_id in its WHERE clause.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] over the "tasks" table.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.Description, &task.Completed, &task.OwnerID, &task.CreatedAt, &task.UpdatedAt)
	return task, err
}

func (r *taskRepository) taskError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
}

func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	created, err := scanTask(r.db.QueryRowContext(ctx, createTask, task.ID, task.Description, task.Completed, task.OwnerID))
	if err != nil {
		log.Err(err).
			Str("func", "*taskRepository.CreateTask").
			Str("owner_id", task.OwnerID.String()).
			Msg("error inserting task")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Task{}, ErrUserNotFound
		}
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return created, nil
}

// ListTasks returns the tasks of query.OwnerID that match its filter, in
// the requested order and page. An empty page is an empty slice.
func (r *taskRepository) ListTasks(ctx context.Context, query models.TaskListQuery) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildListTasksQuery(query)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*taskRepository.ListTasks").
			Str("owner_id", query.OwnerID.String()).
			Msg("failed to execute query for listing tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, 16)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*taskRepository.ListTasks").
				Str("owner_id", query.OwnerID.String()).
				Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		tasks = append(tasks, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*taskRepository.ListTasks").
			Str("owner_id", query.OwnerID.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.classify(rowsErr))
	}

	return tasks, nil
}

func (r *taskRepository) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, getTask, taskID, ownerID))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).
				Str("func", "*taskRepository.GetTask").
				Str("task_id", taskID.String()).
				Msg("error reading task")
		}
		return models.Task{}, r.taskError(err)
	}

	return task, nil
}

// UpdateTask applies update in one statement and returns the updated row.
func (r *taskRepository) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTaskQuery(ownerID, taskID, update)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("failed to create query")
		return models.Task{}, err
	}

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).
				Str("func", "*taskRepository.UpdateTask").
				Str("task_id", taskID.String()).
				Msg("error updating task")
		}
		return models.Task{}, r.taskError(err)
	}

	return task, nil
}

func (r *taskRepository) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx, deleteTask, taskID, ownerID))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).
				Str("func", "*taskRepository.DeleteTask").
				Str("task_id", taskID.String()).
				Msg("error deleting task")
		}
		return models.Task{}, r.taskError(err)
	}

	return task, nil
}
