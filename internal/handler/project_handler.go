package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectboard/internal/repository"
	"projectboard/pkg/metrics"
)

// createProjectRequest deliberately has no required-field validation:
// whatever the store accepts is persisted, zero values included.
type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Progress    int    `json:"progress"`
	Budget      string `json:"budget"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Progress    *int    `json:"progress"`
	Budget      *string `json:"budget"`
}

type ProjectHandler struct {
	store  ProjectStore
	cache  *ListCache
	events EventPublisher
	logger *zap.Logger
}

func NewProjectHandler(store ProjectStore, cache *ListCache, events EventPublisher, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		store:  store,
		cache:  cache,
		events: events,
		logger: logger,
	}
}

// List handles GET /projects.
func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if body, ok := h.cache.Get(ctx); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	projects, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("List: failed to fetch projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	body, err := json.Marshal(projects)
	if err != nil {
		h.logger.Error("List: failed to encode projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	h.cache.Set(ctx, body)

	h.logger.Info("List: success", zap.Int("project_count", len(projects)))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Create: failed to parse body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	project, err := h.store.Create(c.Request.Context(), repository.NewProject{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Progress:    req.Progress,
		Budget:      req.Budget,
	})
	if err != nil {
		h.logger.Error("Create: failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	h.publish("project.created", project)
	metrics.IncrementMutation("project", "create")

	h.logger.Info("Create: success", zap.Int("id", project.ID))
	c.JSON(http.StatusCreated, project)
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	project, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		h.logger.Error("Get: failed to fetch project", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// Update handles PUT /projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Update: failed to parse body", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	project, err := h.store.Update(c.Request.Context(), id, repository.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Progress:    req.Progress,
		Budget:      req.Budget,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		h.logger.Error("Update: failed to update project", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	h.publish("project.updated", project)
	metrics.IncrementMutation("project", "update")

	c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /projects/:id. Tasks cascade at the store layer.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		h.logger.Error("Delete: failed to delete project", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	h.cache.Invalidate(c.Request.Context())
	h.publish("project.deleted", gin.H{"id": id})
	metrics.IncrementMutation("project", "delete")

	h.logger.Info("Delete: success", zap.Int("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *ProjectHandler) projectID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		h.logger.Warn("Invalid project id", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return 0, false
	}
	return id, true
}

func (h *ProjectHandler) publish(routingKey string, payload any) {
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
