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

// NewProject carries the creatable project fields. Zero values stand in
// for omitted fields; withDefaults fills them the way the API always has.
type NewProject struct {
	Name        string
	Description string
	Status      string
	StartDate   string
	EndDate     string
	Progress    int
	Budget      string
}

func (p NewProject) withDefaults(now time.Time) NewProject {
	if p.Status == "" {
		p.Status = model.StatusPending
	}
	if p.StartDate == "" {
		p.StartDate = now.Format("2006-01-02")
	}
	if p.Budget == "" {
		p.Budget = "$0"
	}
	return p
}

// ProjectPatch carries a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
	StartDate   *string
	EndDate     *string
	Progress    *int
	Budget      *string
}

func buildProjectUpdate(p ProjectPatch) (string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.StartDate != nil {
		add("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		add("end_date", *p.EndDate)
	}
	if p.Progress != nil {
		add("progress", *p.Progress)
	}
	if p.Budget != nil {
		add("budget", *p.Budget)
	}
	sets = append(sets, "updated_at = NOW()")
	return strings.Join(sets, ", "), args
}

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a project and returns the full record with an empty
// task list.
func (r *ProjectRepository) Create(ctx context.Context, in NewProject) (*model.Project, error) {
	defer observe("insert", "projects", time.Now())

	in = in.withDefaults(time.Now())

	r.logger.Debug("Inserting project",
		zap.String("name", in.Name),
		zap.String("status", in.Status),
	)

	query := `
        INSERT INTO projects (name, description, status, start_date, end_date, progress, budget)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at
    `
	p := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Progress:    in.Progress,
		Budget:      in.Budget,
		Tasks:       []model.Task{},
	}
	err := r.db.QueryRow(ctx, query,
		in.Name,
		in.Description,
		in.Status,
		in.StartDate,
		in.EndDate,
		in.Progress,
		in.Budget,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return nil, translateError(err)
	}

	r.logger.Info("Project inserted successfully",
		zap.Int("id", p.ID),
		zap.String("name", p.Name),
	)
	return p, nil
}

// Get returns one project with its tasks.
func (r *ProjectRepository) Get(ctx context.Context, id int) (*model.Project, error) {
	defer observe("select", "projects", time.Now())

	query := `
        SELECT id, name, description, status, start_date, end_date, progress, budget, created_at, updated_at
        FROM projects
        WHERE id = $1
    `
	var p model.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.Progress,
		&p.Budget,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if terr := translateError(err); terr == ErrNotFound {
			r.logger.Debug("Project not found", zap.Int("id", id))
			return nil, terr
		}
		r.logger.Error("Failed to query project", zap.Error(err), zap.Int("id", id))
		return nil, translateError(err)
	}

	tasks, err := r.tasksForProject(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks
	return &p, nil
}

// List returns every project with nested tasks, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	defer observe("select", "projects", time.Now())

	query := `
        SELECT id, name, description, status, start_date, end_date, progress, budget, created_at, updated_at
        FROM projects
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query projects", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Status,
			&p.StartDate,
			&p.EndDate,
			&p.Progress,
			&p.Budget,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to scan project row", zap.Error(err))
			return nil, err
		}
		p.Tasks = []model.Task{}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTasks(ctx, projects); err != nil {
		return nil, err
	}

	r.logger.Info("Projects listed successfully", zap.Int("count", len(projects)))
	return projects, nil
}

// Update overwrites only the supplied fields and returns the refreshed
// record.
func (r *ProjectRepository) Update(ctx context.Context, id int, patch ProjectPatch) (*model.Project, error) {
	defer observe("update", "projects", time.Now())

	setClause, args := buildProjectUpdate(patch)
	args = append(args, id)
	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = $%d", setClause, len(args))

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Error(err), zap.Int("id", id))
		return nil, translateError(err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Debug("Project not found for update", zap.Int("id", id))
		return nil, ErrNotFound
	}

	r.logger.Info("Project updated successfully", zap.Int("id", id))
	return r.Get(ctx, id)
}

// Delete removes a project; its tasks go with it via the FK cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	defer observe("delete", "projects", time.Now())

	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Error(err), zap.Int("id", id))
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Debug("Project not found for delete", zap.Int("id", id))
		return ErrNotFound
	}

	r.logger.Info("Project deleted successfully", zap.Int("id", id))
	return nil
}

// CountByStatus feeds the status gauge.
func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	defer observe("select", "projects", time.Now())

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		r.logger.Error("Failed to count projects by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *ProjectRepository) tasksForProject(ctx context.Context, projectID int) ([]model.Task, error) {
	query := `
        SELECT id, title, status, "desc", project_id
        FROM tasks
        WHERE project_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query tasks", zap.Error(err), zap.Int("project_id", projectID))
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.Desc, &t.ProjectID); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// attachTasks fills in nested tasks for a listed project set with a
// single query instead of one per project.
func (r *ProjectRepository) attachTasks(ctx context.Context, projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, title, status, "desc", project_id FROM tasks ORDER BY id`)
	if err != nil {
		r.logger.Error("Failed to query tasks for listing", zap.Error(err))
		return err
	}
	defer rows.Close()

	byProject := map[int][]model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.Desc, &t.ProjectID); err != nil {
			return err
		}
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range projects {
		if tasks, ok := byProject[projects[i].ID]; ok {
			projects[i].Tasks = tasks
		}
	}
	return nil
}
