// Package client mirrors server state for presentation. The cache is
// disposable: it is rebuilt wholesale from the server after every
// mutation and is never the source of truth.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"projectboard/internal/model"
)

// ProjectInput carries the creatable project fields.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Progress    int    `json:"progress"`
	Budget      string `json:"budget"`
}

// ProjectPatch is a partial update; nil fields are omitted from the
// request body.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Progress    *int    `json:"progress,omitempty"`
	Budget      *string `json:"budget,omitempty"`
}

type TaskInput struct {
	Title  string `json:"title"`
	Status string `json:"status"`
	Desc   string `json:"desc"`
}

type TaskPatch struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
	Desc   *string `json:"desc,omitempty"`
}

type LoginResult struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    model.User `json:"user"`
}

// API speaks the resource API's JSON wire contract.
type API struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewAPI(baseURL string, logger *zap.Logger) *API {
	return &API{
		baseURL: baseURL,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchProjects returns the full project list with nested tasks.
func (a *API) FetchProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := a.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	a.logger.Debug("Projects fetched", zap.Int("count", len(projects)))
	return projects, nil
}

func (a *API) CreateProject(ctx context.Context, in ProjectInput) error {
	return a.do(ctx, http.MethodPost, "/projects", in, nil)
}

func (a *API) UpdateProject(ctx context.Context, id int, patch ProjectPatch) error {
	return a.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), patch, nil)
}

func (a *API) DeleteProject(ctx context.Context, id int) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

func (a *API) CreateTask(ctx context.Context, projectID int, in TaskInput) error {
	payload := struct {
		TaskInput
		ProjectID int `json:"projectId"`
	}{TaskInput: in, ProjectID: projectID}
	return a.do(ctx, http.MethodPost, "/tasks", payload, nil)
}

func (a *API) UpdateTask(ctx context.Context, id int, patch TaskPatch) error {
	payload := struct {
		ID int `json:"id"`
		TaskPatch
	}{ID: id, TaskPatch: patch}
	return a.do(ctx, http.MethodPut, "/tasks", payload, nil)
}

func (a *API) DeleteTask(ctx context.Context, id int) error {
	payload := struct {
		ID int `json:"id"`
	}{ID: id}
	return a.do(ctx, http.MethodDelete, "/tasks", payload, nil)
}

// Login authenticates against the mock login endpoint.
func (a *API) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var result LoginResult
	if err := a.do(ctx, http.MethodPost, "/login", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *API) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("HTTP %d: %s %s failed", resp.StatusCode, method, path)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
