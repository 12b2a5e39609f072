package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SeedBatch is one project plus the tasks created with it.
type SeedBatch struct {
	Project NewProject
	Tasks   []NewTask
}

// DemoSeed returns the demo dataset the dashboard ships with.
func DemoSeed() []SeedBatch {
	return []SeedBatch{
		{
			Project: NewProject{
				Name:        "E-Commerce Platform",
				Description: "Build a modern e-commerce platform",
				Status:      "In Progress",
				StartDate:   "2025-01-01",
				EndDate:     "2025-06-30",
				Progress:    45,
				Budget:      "$50,000",
			},
			Tasks: []NewTask{
				{Title: "Setup Project", Status: "Completed", Desc: "Initialize project skeleton"},
				{Title: "Build Product Catalog", Status: "In Progress", Desc: "Create product pages"},
			},
		},
		{
			Project: NewProject{
				Name:        "Mobile App",
				Description: "React Native app",
				Status:      "Pending",
				StartDate:   "2025-03-01",
				EndDate:     "2025-09-30",
				Progress:    10,
				Budget:      "$75,000",
			},
			Tasks: []NewTask{
				{Title: "Setup React Native", Status: "In Progress", Desc: "Initialize project"},
			},
		},
	}
}

// Seed wipes both tables and loads the given batches. Each project and
// its tasks commit atomically, so a failure mid-batch leaves nothing
// half-seeded.
func Seed(ctx context.Context, db *pgxpool.Pool, batches []SeedBatch, logger *zap.Logger) error {
	logger.Info("Seeding database", zap.Int("batches", len(batches)))

	if _, err := db.Exec(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if _, err := db.Exec(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("clear projects: %w", err)
	}

	for _, batch := range batches {
		if err := seedBatch(ctx, db, batch); err != nil {
			logger.Error("Failed to seed project",
				zap.String("name", batch.Project.Name),
				zap.Error(err),
			)
			return err
		}
		logger.Info("Seeded project",
			zap.String("name", batch.Project.Name),
			zap.Int("tasks", len(batch.Tasks)),
		)
	}
	return nil
}

func seedBatch(ctx context.Context, db *pgxpool.Pool, batch SeedBatch) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback(ctx)

	in := batch.Project.withDefaults(time.Now())

	var projectID int
	err = tx.QueryRow(ctx, `
        INSERT INTO projects (name, description, status, start_date, end_date, progress, budget)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `,
		in.Name,
		in.Description,
		in.Status,
		in.StartDate,
		in.EndDate,
		in.Progress,
		in.Budget,
	).Scan(&projectID)
	if err != nil {
		return fmt.Errorf("seed project %q: %w", in.Name, err)
	}

	for _, task := range batch.Tasks {
		task = task.withDefaults()
		_, err = tx.Exec(ctx, `
            INSERT INTO tasks (title, status, "desc", project_id)
            VALUES ($1, $2, $3, $4)
        `,
			task.Title,
			task.Status,
			task.Desc,
			projectID,
		)
		if err != nil {
			return fmt.Errorf("seed task %q: %w", task.Title, err)
		}
	}

	return tx.Commit(ctx)
}
