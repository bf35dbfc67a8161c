package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/tacto/internal/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "tasks.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_CreateFillsDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, Task{Name: "  buy milk ", Tags: []string{"home", "", "home", " errand "}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("Create() did not assign an id")
	}
	if created.Name != "buy milk" || created.Status != StatusNew || created.Priority != PriorityMedium {
		t.Errorf("Create() = %+v", created)
	}
	if len(created.Tags) != 2 || created.Tags[1] != "errand" {
		t.Errorf("tags = %v, want [home errand]", created.Tags)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != created.Name || len(got.Tags) != 2 {
		t.Errorf("Get() = %+v, want %+v", got, created)
	}
}

func TestStore_CreateValidates(t *testing.T) {
	s := openTestStore(t)
	start := time.Now()
	before := start.Add(-time.Hour)

	tests := []struct {
		name string
		task Task
	}{
		{name: "blank name", task: Task{Name: "   "}},
		{name: "bad status", task: Task{Name: "x", Status: "Later"}},
		{name: "bad priority", task: Task{Name: "x", Priority: "Urgent"}},
		{name: "deadline before start", task: Task{Name: "x", StartDate: &start, Deadline: &before}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Create(context.Background(), tt.task); !errors.Is(err, ErrInvalidTask) {
				t.Errorf("Create() error = %v, want ErrInvalidTask", err)
			}
		})
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, Task{Name: "write report"})
	if err != nil {
		t.Fatal(err)
	}

	created.Status = StatusDone
	created.Priority = PriorityHigh
	if _, err := s.Update(ctx, created); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := s.Get(ctx, created.ID)
	if got.Status != StatusDone || got.Priority != PriorityHigh {
		t.Errorf("after Update = %+v", got)
	}

	if _, err := s.Update(ctx, Task{ID: uuid.New(), Name: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_List(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, task := range []Task{
		{Name: "a", Tags: []string{"work"}},
		{Name: "b", Status: StatusInProgress, Tags: []string{"Work", "go"}},
		{Name: "c", Status: StatusDone},
	} {
		if _, err := s.Create(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "all", filter: Filter{}, want: 3},
		{name: "by status", filter: Filter{Status: StatusInProgress}, want: 1},
		{name: "by tag ignoring case", filter: Filter{Tag: "work"}, want: 2},
		{name: "status and tag", filter: Filter{Status: StatusDone, Tag: "work"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("List(%+v) = %d tasks, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}
