// Command dashboard renders the cached project list in the terminal:
// a project table, status summary, progress bars, and the legacy local
// task board. Actions are only hinted at according to the logged-in
// role's capabilities; the server itself does not enforce them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"projectboard/client"
	"projectboard/internal/model"
	"projectboard/pkg/rbac"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "resource API base URL")
	stateDir := flag.String("state", defaultStateDir(), "directory for the local snapshot")
	email := flag.String("email", "", "login email (role is derived from it)")
	password := flag.String("password", "", "login password (any value authenticates)")
	flag.Parse()

	logg := zap.NewNop()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := client.NewAPI(*serverURL, logg)

	role := rbac.RoleDeveloper
	if *email != "" {
		result, err := api.Login(ctx, *email, *password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
		role = result.User.Role
		fmt.Printf("Logged in as %s (%s)\n\n", result.User.Email, role)
	}

	cache := client.NewCache(api, client.NewFileSnapshot(*stateDir), logg)
	if err := cache.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not reach server, showing last snapshot: %v\n\n", err)
	}

	projects := cache.Projects()
	renderProjects(projects)
	renderSummary(projects)
	renderProgress(projects)
	renderLegacyBoard()
	renderCapabilities(role)
}

func renderProjects(projects []model.Project) {
	fmt.Println("Projects")
	fmt.Println(strings.Repeat("=", 8))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSTART\tEND\tPROGRESS\tBUDGET\tTASKS")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d%%\t%s\t%d\n",
			p.ID, p.Name, p.Status, p.StartDate, p.EndDate, p.Progress, p.Budget, len(p.Tasks))
	}
	w.Flush()
	fmt.Println()

	for _, p := range projects {
		if len(p.Tasks) == 0 {
			continue
		}
		fmt.Printf("Tasks for %q:\n", p.Name)
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tTITLE\tSTATUS\tDESC")
		for _, t := range p.Tasks {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Desc)
		}
		tw.Flush()
		fmt.Println()
	}
}

func renderSummary(projects []model.Project) {
	counts := map[string]int{}
	for _, p := range projects {
		counts[p.Status]++
	}

	fmt.Println("Status summary")
	fmt.Println(strings.Repeat("=", 14))
	for _, status := range []string{model.StatusPending, model.StatusInProgress, model.StatusCompleted} {
		fmt.Printf("  %-12s %d\n", status, counts[status])
	}
	fmt.Println()
}

func renderProgress(projects []model.Project) {
	if len(projects) == 0 {
		return
	}
	fmt.Println("Progress")
	fmt.Println(strings.Repeat("=", 8))
	for _, p := range projects {
		fmt.Printf("  %-24s %s %d%%\n", p.Name, progressBar(p.Progress), p.Progress)
	}
	fmt.Println()
}

func progressBar(progress int) string {
	const width = 20
	filled := progress * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func renderLegacyBoard() {
	fmt.Println("Local task board")
	fmt.Println(strings.Repeat("=", 16))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tPROJECT\tTITLE\tSTATUS")
	for _, t := range client.LegacySeedTasks() {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", t.ID, t.ProjectName, t.Title, t.Status)
	}
	w.Flush()
	fmt.Println()
}

func renderCapabilities(role string) {
	fmt.Printf("Role %s:", role)
	if rbac.CanEdit(role) {
		fmt.Print(" edit")
	}
	if rbac.CanDelete(role) {
		fmt.Print(" delete")
	}
	if !rbac.CanEdit(role) && !rbac.CanDelete(role) {
		fmt.Print(" view only")
	}
	fmt.Println()
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home + "/.projectboard"
}
