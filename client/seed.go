package client

// LegacyTask is the standalone local task board entry that predates the
// server-backed project list. It survives for the dashboard's local
// board section.
type LegacyTask struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectName"`
	Title       string `json:"title"`
	Status      string `json:"status"`
}

// LegacySeedTasks returns the built-in local board. Note the statuses
// use the older Todo/In Progress/Done set, not the server's
// Pending/In Progress/Completed; the two sets were never unified.
func LegacySeedTasks() []LegacyTask {
	return []LegacyTask{
		{ID: "1", ProjectName: "Project A", Title: "Task 1", Status: "Todo"},
		{ID: "2", ProjectName: "Project A", Title: "Task 2", Status: "In Progress"},
		{ID: "3", ProjectName: "Project B", Title: "Task 1", Status: "Done"},
	}
}
