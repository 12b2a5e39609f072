package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectboard/internal/repository"
	"projectboard/pkg/metrics"
)

type createTaskRequest struct {
	Title     string `json:"title"`
	Status    string `json:"status"`
	Desc      string `json:"desc"`
	ProjectID int    `json:"projectId"`
}

// Task update and delete address the record through the body, not the
// path; that is the wire contract the dashboard speaks.
type updateTaskRequest struct {
	ID     int     `json:"id"`
	Title  *string `json:"title"`
	Status *string `json:"status"`
	Desc   *string `json:"desc"`
}

type deleteTaskRequest struct {
	ID int `json:"id"`
}

type TaskHandler struct {
	store  TaskStore
	cache  *ListCache
	events EventPublisher
	logger *zap.Logger
}

func NewTaskHandler(store TaskStore, cache *ListCache, events EventPublisher, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		store:  store,
		cache:  cache,
		events: events,
		logger: logger,
	}
}

// Create handles POST /tasks. A projectId that references no project is
// a constraint violation and surfaces as a generic 500, cause logged.
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Create: failed to parse body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	task, err := h.store.Create(c.Request.Context(), repository.NewTask{
		Title:     req.Title,
		Status:    req.Status,
		Desc:      req.Desc,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			h.logger.Error("Create: task references missing project",
				zap.Int("project_id", req.ProjectID),
				zap.Error(err),
			)
		} else {
			h.logger.Error("Create: failed to create task", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	h.publish("task.created", task)
	metrics.IncrementMutation("task", "create")

	h.logger.Info("Create: success",
		zap.Int("task_id", task.ID),
		zap.Int("project_id", task.ProjectID),
	)
	c.JSON(http.StatusCreated, task)
}

// Update handles PUT /tasks.
func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Update: failed to parse body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	task, err := h.store.Update(c.Request.Context(), req.ID, repository.TaskPatch{
		Title:  req.Title,
		Status: req.Status,
		Desc:   req.Desc,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		h.logger.Error("Update: failed to update task", zap.Int("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	h.publish("task.updated", task)
	metrics.IncrementMutation("task", "update")

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks.
func (h *TaskHandler) Delete(c *gin.Context) {
	var req deleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Delete: failed to parse body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		h.logger.Error("Delete: failed to delete task", zap.Int("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	h.publish("task.deleted", gin.H{"id": req.ID})
	metrics.IncrementMutation("task", "delete")

	h.logger.Info("Delete: success", zap.Int("task_id", req.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (h *TaskHandler) publish(routingKey string, payload any) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(routingKey, payload); err != nil {
		h.logger.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
