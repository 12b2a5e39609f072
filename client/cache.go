package client

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"projectboard/internal/model"
)

// Cache is the client-side mirror of the project list. Every mutation
// calls the API, eagerly patches the local copy, then refetches the
// whole list; the refetch always wins. The snapshot makes the cache
// survive restarts but it is reconciled against the server on Load.
type Cache struct {
	api    *API
	snap   Snapshotter
	logger *zap.Logger

	mu       sync.Mutex
	projects []model.Project
}

func NewCache(api *API, snap Snapshotter, logger *zap.Logger) *Cache {
	return &Cache{
		api:    api,
		snap:   snap,
		logger: logger,
	}
}

// Load restores the last snapshot, then reconciles against the server.
// A fetch failure leaves the stale snapshot in place and is returned to
// the caller.
func (c *Cache) Load(ctx context.Context) error {
	if c.snap != nil {
		if projects, ok, err := c.snap.Load(); err != nil {
			c.logger.Warn("Failed to load snapshot", zap.Error(err))
		} else if ok {
			c.mu.Lock()
			c.projects = projects
			c.mu.Unlock()
			c.logger.Info("Snapshot restored", zap.Int("project_count", len(projects)))
		}
	}
	return c.Refresh(ctx)
}

// Refresh discards the local copy and rebuilds it from the server.
func (c *Cache) Refresh(ctx context.Context) error {
	projects, err := c.api.FetchProjects(ctx)
	if err != nil {
		c.logger.Error("Failed to fetch projects", zap.Error(err))
		return err
	}
	c.setProjects(projects)
	return nil
}

// Projects returns a copy of the cached list.
func (c *Cache) Projects() []model.Project {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.Project, len(c.projects))
	copy(out, c.projects)
	for i := range out {
		tasks := make([]model.Task, len(out[i].Tasks))
		copy(tasks, out[i].Tasks)
		out[i].Tasks = tasks
	}
	return out
}

func (c *Cache) AddProject(ctx context.Context, in ProjectInput) error {
	if err := c.api.CreateProject(ctx, in); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

func (c *Cache) UpdateProject(ctx context.Context, id int, patch ProjectPatch) error {
	if err := c.api.UpdateProject(ctx, id, patch); err != nil {
		return err
	}
	c.applyProjectPatch(id, patch)
	return c.Refresh(ctx)
}

func (c *Cache) DeleteProject(ctx context.Context, id int) error {
	if err := c.api.DeleteProject(ctx, id); err != nil {
		return err
	}
	c.removeProject(id)
	return c.Refresh(ctx)
}

func (c *Cache) AddTask(ctx context.Context, projectID int, in TaskInput) error {
	if err := c.api.CreateTask(ctx, projectID, in); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

func (c *Cache) UpdateTask(ctx context.Context, id int, patch TaskPatch) error {
	if err := c.api.UpdateTask(ctx, id, patch); err != nil {
		return err
	}
	c.applyTaskPatch(id, patch)
	return c.Refresh(ctx)
}

func (c *Cache) DeleteTask(ctx context.Context, id int) error {
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	c.removeTask(id)
	return c.Refresh(ctx)
}

// BulkUpdateTasks applies one patch to several tasks, refetching once
// at the end rather than per task.
func (c *Cache) BulkUpdateTasks(ctx context.Context, ids []int, patch TaskPatch) error {
	for _, id := range ids {
		if err := c.api.UpdateTask(ctx, id, patch); err != nil {
			return err
		}
		c.applyTaskPatch(id, patch)
	}
	return c.Refresh(ctx)
}

func (c *Cache) setProjects(projects []model.Project) {
	c.mu.Lock()
	c.projects = projects
	c.mu.Unlock()
	c.persist(projects)
}

func (c *Cache) persist(projects []model.Project) {
	if c.snap == nil {
		return
	}
	if err := c.snap.Save(projects); err != nil {
		c.logger.Warn("Failed to persist snapshot", zap.Error(err))
	}
}

// The local patch helpers below keep the cache responsive between the
// API call and the refetch; the refetch supersedes whatever they did.

func (c *Cache) applyProjectPatch(id int, patch ProjectPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.projects {
		if c.projects[i].ID != id {
			continue
		}
		p := &c.projects[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.StartDate != nil {
			p.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			p.EndDate = *patch.EndDate
		}
		if patch.Progress != nil {
			p.Progress = *patch.Progress
		}
		if patch.Budget != nil {
			p.Budget = *patch.Budget
		}
		return
	}
}

func (c *Cache) removeProject(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.projects[:0]
	for _, p := range c.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.projects = kept
}

func (c *Cache) applyTaskPatch(id int, patch TaskPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.projects {
		for j := range c.projects[i].Tasks {
			if c.projects[i].Tasks[j].ID != id {
				continue
			}
			t := &c.projects[i].Tasks[j]
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.Status != nil {
				t.Status = *patch.Status
			}
			if patch.Desc != nil {
				t.Desc = *patch.Desc
			}
			return
		}
	}
}

func (c *Cache) removeTask(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.projects {
		tasks := c.projects[i].Tasks
		for j := range tasks {
			if tasks[j].ID == id {
				c.projects[i].Tasks = append(tasks[:j], tasks[j+1:]...)
				return
			}
		}
	}
}
