package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/clipboard"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/launcher"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/observe"
	"github.com/MrSnakeDoc/tacto/internal/pomodoro"
	"github.com/MrSnakeDoc/tacto/internal/tasks"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AllowedHosts []string // Host headers allowed on the control API
	AllowedCIDRS []string // client IPs allowed on the control API
	TrustProxy   bool
	ReloadBurst  int // rate limit on /reload and paste
	ReloadPerMin int

	Catalog       *index.MemoryIndex
	SearchBackend string                          // name of the selected search backend
	StoreBackend  string                          // "file" | "redis"
	StorePing     func(ctx context.Context) error // nil when the backend has nothing to ping
	Ready         func() bool                     // true once startup loading finished

	Panel     *launcher.Panel
	Pipeline  *launcher.Pipeline
	View      *observe.Cell[launcher.View]
	Clipboard *clipboard.Service // nil when clipboard history is disabled
	Pomodoro  *pomodoro.Timer
	Sessions  *pomodoro.Stats
	Tasks     *tasks.Store

	CatalogReloadTrigger  chan struct{} // manual application rescan
	BookmarkReloadTrigger chan struct{} // nil if bookmarks are disabled
}
