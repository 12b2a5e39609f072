package handler

import (
	"context"

	"projectboard/internal/model"
	"projectboard/internal/repository"
)

// ProjectStore is the slice of the entity store the project handlers
// need. *repository.ProjectRepository satisfies it.
type ProjectStore interface {
	Create(ctx context.Context, in repository.NewProject) (*model.Project, error)
	Get(ctx context.Context, id int) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, id int, patch repository.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, id int) error
}

// TaskStore is the slice of the entity store the task handlers need.
// *repository.TaskRepository satisfies it.
type TaskStore interface {
	Create(ctx context.Context, in repository.NewTask) (*model.Task, error)
	Update(ctx context.Context, id int, patch repository.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id int) error
}

// EventPublisher publishes change events after successful mutations.
// *mq.Publisher satisfies it; a nil publisher disables events.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
