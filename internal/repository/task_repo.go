package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"projectboard/internal/model"
)

// NewTask carries the creatable task fields. ProjectID must reference an
// existing project or the insert fails with ErrForeignKey.
type NewTask struct {
	Title     string
	Status    string
	Desc      string
	ProjectID int
}

func (t NewTask) withDefaults() NewTask {
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	return t
}

// TaskPatch carries a partial update; nil fields are left untouched.
// ProjectID is immutable after creation and deliberately absent.
type TaskPatch struct {
	Title  *string
	Status *string
	Desc   *string
}

func buildTaskUpdate(p TaskPatch) (string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Desc != nil {
		add(`"desc"`, *p.Desc)
	}
	return strings.Join(sets, ", "), args
}

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

// Create persists a task under an existing project.
func (r *TaskRepository) Create(ctx context.Context, in NewTask) (*model.Task, error) {
	defer observe("insert", "tasks", time.Now())

	in = in.withDefaults()

	r.logger.Debug("Inserting task",
		zap.Int("project_id", in.ProjectID),
		zap.String("title", in.Title),
		zap.String("status", in.Status),
	)

	query := `
        INSERT INTO tasks (title, status, "desc", project_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	t := &model.Task{
		Title:     in.Title,
		Status:    in.Status,
		Desc:      in.Desc,
		ProjectID: in.ProjectID,
	}
	err := r.db.QueryRow(ctx, query,
		in.Title,
		in.Status,
		in.Desc,
		in.ProjectID,
	).Scan(&t.ID)
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("project_id", in.ProjectID),
		)
		return nil, translateError(err)
	}

	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", t.ID),
		zap.Int("project_id", t.ProjectID),
	)
	return t, nil
}

// Update overwrites only the supplied fields and returns the refreshed
// record.
func (r *TaskRepository) Update(ctx context.Context, id int, patch TaskPatch) (*model.Task, error) {
	defer observe("update", "tasks", time.Now())

	setClause, args := buildTaskUpdate(patch)
	if setClause == "" {
		// Nothing to write; behave like a read.
		return r.get(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d", setClause, len(args))

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Error(err), zap.Int("id", id))
		return nil, translateError(err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Debug("Task not found for update", zap.Int("id", id))
		return nil, ErrNotFound
	}

	r.logger.Info("Task updated successfully", zap.Int("id", id))
	return r.get(ctx, id)
}

// Delete removes a single task.
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	defer observe("delete", "tasks", time.Now())

	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete task", zap.Error(err), zap.Int("id", id))
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Debug("Task not found for delete", zap.Int("id", id))
		return ErrNotFound
	}

	r.logger.Info("Task deleted successfully", zap.Int("id", id))
	return nil
}

func (r *TaskRepository) get(ctx context.Context, id int) (*model.Task, error) {
	query := `
        SELECT id, title, status, "desc", project_id
        FROM tasks
        WHERE id = $1
    `
	var t model.Task
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Title, &t.Status, &t.Desc, &t.ProjectID)
	if err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}
