package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/store"
	redisstore "github.com/MrSnakeDoc/tacto/internal/store/redis"
)

func TestCatalogSyncer_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backends := map[string]store.Blob{
		"memory": store.NewMemory(),
		"redis":  redisstore.NewStore(client),
	}

	for name, blob := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			src := index.NewMemoryIndex()
			src.UpdateApps([]*domain.App{{ID: "/A/Safari.app", Path: "/A/Safari.app", Name: "Safari", Counter: 3}})

			if err := NewCatalogSyncer(blob, src, logger.NewNop()).Save(ctx); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			dst := index.NewMemoryIndex()
			if err := NewCatalogSyncer(blob, dst, logger.NewNop()).Restore(ctx); err != nil {
				t.Fatalf("Restore() error = %v", err)
			}
			app, ok := dst.GetApp("/A/Safari.app")
			if !ok || app.Counter != 3 {
				t.Errorf("restored app = %+v, %v", app, ok)
			}
		})
	}
}

func TestCatalogSyncer_RestoreEmpty(t *testing.T) {
	idx := index.NewMemoryIndex()
	if err := NewCatalogSyncer(store.NewMemory(), idx, logger.NewNop()).Restore(context.Background()); err != nil {
		t.Errorf("Restore() with nothing saved error = %v", err)
	}
	if idx.Count() != 0 {
		t.Error("index should stay empty")
	}
}
