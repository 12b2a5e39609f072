package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectboard/internal/model"
	"projectboard/internal/repository"
)

type fakeTaskStore struct {
	tasks         map[int]*model.Task
	knownProjects map[int]bool
	nextID        int
}

func newFakeTaskStore(projectIDs ...int) *fakeTaskStore {
	known := map[int]bool{}
	for _, id := range projectIDs {
		known[id] = true
	}
	return &fakeTaskStore{tasks: map[int]*model.Task{}, knownProjects: known, nextID: 1}
}

func (f *fakeTaskStore) Create(_ context.Context, in repository.NewTask) (*model.Task, error) {
	if !f.knownProjects[in.ProjectID] {
		return nil, repository.ErrForeignKey
	}
	t := &model.Task{
		ID:        f.nextID,
		Title:     in.Title,
		Status:    in.Status,
		Desc:      in.Desc,
		ProjectID: in.ProjectID,
	}
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	f.tasks[t.ID] = t
	f.nextID++
	out := *t
	return &out, nil
}

func (f *fakeTaskStore) Update(_ context.Context, id int, patch repository.TaskPatch) (*model.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Desc != nil {
		t.Desc = *patch.Desc
	}
	out := *t
	return &out, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id int) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func newTaskRouter(store TaskStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(store, nil, nil, zap.NewNop())
	r := gin.New()
	r.POST("/tasks", h.Create)
	r.PUT("/tasks", h.Update)
	r.DELETE("/tasks", h.Delete)
	return r
}

func TestCreateTaskUnderExistingProject(t *testing.T) {
	store := newFakeTaskStore(1)
	r := newTaskRouter(store)

	w := doJSON(t, r, http.MethodPost, "/tasks", `{"title":"T1","projectId":1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var task model.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if task.ID == 0 || task.ProjectID != 1 {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Status != "Pending" {
		t.Fatalf("expected Pending default, got %q", task.Status)
	}
}

func TestCreateTaskDanglingProjectPersistsNothing(t *testing.T) {
	store := newFakeTaskStore() // no projects exist
	r := newTaskRouter(store)

	w := doJSON(t, r, http.MethodPost, "/tasks", `{"title":"T1","projectId":99}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to create task") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if len(store.tasks) != 0 {
		t.Fatalf("constraint violation persisted a record: %v", store.tasks)
	}
}

func TestUpdateTaskByBodyID(t *testing.T) {
	store := newFakeTaskStore(1)
	r := newTaskRouter(store)

	doJSON(t, r, http.MethodPost, "/tasks", `{"title":"T1","status":"Pending","projectId":1}`)

	w := doJSON(t, r, http.MethodPut, "/tasks", `{"id":1,"status":"Completed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var task model.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if task.Status != "Completed" {
		t.Fatalf("expected Completed, got %q", task.Status)
	}
	if task.Title != "T1" {
		t.Fatalf("unspecified field changed: %+v", task)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	r := newTaskRouter(newFakeTaskStore(1))

	w := doJSON(t, r, http.MethodPut, "/tasks", `{"id":42,"status":"Completed"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task not found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestDeleteTaskByBodyID(t *testing.T) {
	store := newFakeTaskStore(1)
	r := newTaskRouter(store)

	doJSON(t, r, http.MethodPost, "/tasks", `{"title":"T1","projectId":1}`)

	w := doJSON(t, r, http.MethodDelete, "/tasks", `{"id":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task deleted") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if len(store.tasks) != 0 {
		t.Fatalf("task still present: %v", store.tasks)
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	r := newTaskRouter(newFakeTaskStore(1))

	w := doJSON(t, r, http.MethodDelete, "/tasks", `{"id":5}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
