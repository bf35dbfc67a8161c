package appdirs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/tacto/internal/logger"
)

func mkdir(t *testing.T, parts ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(parts...), 0o755); err != nil {
		t.Fatal(err)
	}
}

func touch(t *testing.T, parts ...string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(parts...), []byte("[Desktop Entry]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "Safari.app", "Contents", "Nested.app")
	mkdir(t, root, "Utilities", "Terminal.app")
	mkdir(t, root, "a", "b", "Deep.app")
	touch(t, root, "firefox.desktop")
	touch(t, root, "readme.txt")

	s := NewScanner([]string{root, filepath.Join(root, "missing")}, logger.NewNop())
	apps, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := map[string]bool{"Safari": true, "Terminal": true, "firefox": true}
	if len(apps) != len(want) {
		names := make([]string, 0, len(apps))
		for _, a := range apps {
			names = append(names, a.Name)
		}
		t.Fatalf("Scan() found %v, want %d apps", names, len(want))
	}
	for _, a := range apps {
		if !want[a.Name] {
			t.Errorf("unexpected app %q", a.Name)
		}
		if a.ID != a.Path || !a.HasSource(SourceName) {
			t.Errorf("app %+v has wrong identity or source", a)
		}
	}
}

func TestScanner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewScanner([]string{t.TempDir()}, logger.NewNop()).Scan(ctx); err == nil {
		t.Error("Scan() with a cancelled context should fail")
	}
}
