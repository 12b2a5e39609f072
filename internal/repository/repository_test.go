package repository

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestNewProjectDefaults(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	got := NewProject{Name: "P1"}.withDefaults(now)
	if got.Status != "Pending" {
		t.Fatalf("expected Pending, got %q", got.Status)
	}
	if got.StartDate != "2025-04-01" {
		t.Fatalf("expected today as start date, got %q", got.StartDate)
	}
	if got.EndDate != "" {
		t.Fatalf("expected empty end date, got %q", got.EndDate)
	}
	if got.Budget != "$0" {
		t.Fatalf("expected $0 budget, got %q", got.Budget)
	}
	if got.Progress != 0 {
		t.Fatalf("expected zero progress, got %d", got.Progress)
	}
}

func TestNewProjectDefaultsKeepSuppliedValues(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	in := NewProject{
		Name:      "P1",
		Status:    "In Progress",
		StartDate: "2025-01-01",
		Budget:    "$10,000",
		Progress:  45,
	}
	got := in.withDefaults(now)
	if got != in {
		t.Fatalf("defaults overwrote supplied fields: %+v", got)
	}
}

func TestNewTaskDefaults(t *testing.T) {
	got := NewTask{Title: "T1", ProjectID: 1}.withDefaults()
	if got.Status != "Pending" {
		t.Fatalf("expected Pending, got %q", got.Status)
	}
	if got.Desc != "" {
		t.Fatalf("expected empty desc, got %q", got.Desc)
	}
}

func TestBuildProjectUpdate_OnlySuppliedFields(t *testing.T) {
	status := "Completed"
	setClause, args := buildProjectUpdate(ProjectPatch{Status: &status})

	if setClause != "status = $1, updated_at = NOW()" {
		t.Fatalf("unexpected set clause: %q", setClause)
	}
	if len(args) != 1 || args[0] != "Completed" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildProjectUpdate_AllFields(t *testing.T) {
	name := "P"
	desc := "d"
	status := "Pending"
	start := "2025-01-01"
	end := "2025-06-30"
	progress := 45
	budget := "$1"

	setClause, args := buildProjectUpdate(ProjectPatch{
		Name:        &name,
		Description: &desc,
		Status:      &status,
		StartDate:   &start,
		EndDate:     &end,
		Progress:    &progress,
		Budget:      &budget,
	})

	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d", len(args))
	}
	for _, column := range []string{"name", "description", "status", "start_date", "end_date", "progress", "budget"} {
		if !strings.Contains(setClause, column+" = $") {
			t.Fatalf("set clause missing %s: %q", column, setClause)
		}
	}
	if !strings.HasSuffix(setClause, "updated_at = NOW()") {
		t.Fatalf("set clause must always touch updated_at: %q", setClause)
	}
}

func TestBuildTaskUpdate(t *testing.T) {
	title := "T"
	desc := "d"
	setClause, args := buildTaskUpdate(TaskPatch{Title: &title, Desc: &desc})

	if setClause != `title = $1, "desc" = $2` {
		t.Fatalf("unexpected set clause: %q", setClause)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}

	empty, emptyArgs := buildTaskUpdate(TaskPatch{})
	if empty != "" || len(emptyArgs) != 0 {
		t.Fatalf("empty patch should build nothing, got %q %v", empty, emptyArgs)
	}
}

func TestTranslateError(t *testing.T) {
	if translateError(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	if translateError(pgx.ErrNoRows) != ErrNotFound {
		t.Fatalf("no rows should map to ErrNotFound")
	}
	fk := &pgconn.PgError{Code: fkViolationCode}
	if translateError(fk) != ErrForeignKey {
		t.Fatalf("23503 should map to ErrForeignKey")
	}

	other := errors.New("connection reset")
	if translateError(other) != other {
		t.Fatalf("unknown errors must pass through")
	}
}
