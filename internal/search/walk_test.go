package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

func layout(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"docs", ".hidden", "Tools/Report Builder.app/Contents"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"docs/Report-2024.pdf", "docs/notes.txt", ".hidden/report.txt", "Tools/Report Builder.app/Contents/report.plist"} {
		if err := os.WriteFile(filepath.Join(root, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestWalk_Search(t *testing.T) {
	root := layout(t)
	w := NewWalk([]string{root, filepath.Join(root, "missing")}, logger.NewNop())

	tests := []struct {
		name  string
		term  string
		scope domain.Scope
		want  int
	}{
		{name: "all scope skips hidden and bundle contents", term: "REPORT", scope: domain.ScopeAll, want: 2},
		{name: "applications only", term: "report", scope: domain.ScopeApplications, want: 1},
		{name: "no match", term: "zzz", scope: domain.ScopeAll, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b batches
			if err := w.Search(context.Background(), tt.term, tt.scope, 10, b.emit); err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if got := b.last(); len(got) != tt.want {
				t.Errorf("hits = %+v, want %d", got, tt.want)
			}
		})
	}
}

func TestWalk_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := NewWalk([]string{layout(t)}, logger.NewNop())
	if err := w.Search(ctx, "report", domain.ScopeAll, 10, func([]domain.Hit) {}); err == nil {
		t.Error("Search() with a cancelled context should fail")
	}
}

func TestSelect(t *testing.T) {
	idx := newCatalogIndex()
	if b := Select("catalog", idx, nil, logger.NewNop()); b.Name != "catalog" {
		t.Errorf("Select(catalog) = %s", b.Name)
	}
	if b := Select("spotlight", idx, nil, logger.NewNop()); b.Name != "spotlight" {
		t.Errorf("Select(spotlight) = %s", b.Name)
	}
}
