package model

import "time"

// Project statuses. Tasks reuse the same set on the server side.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Progress    int       `json:"progress"` // intended 0-100, not enforced
	Budget      string    `json:"budget"`   // free-form text, e.g. "$10,000"
	Tasks       []Task    `json:"tasks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Desc      string `json:"desc"`
	ProjectID int    `json:"projectId"`
}
