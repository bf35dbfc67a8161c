package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/tacto/internal/clipboard"
	"github.com/MrSnakeDoc/tacto/internal/config"
	"github.com/MrSnakeDoc/tacto/internal/httpserver"
	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/launcher"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/observe"
	"github.com/MrSnakeDoc/tacto/internal/opener"
	"github.com/MrSnakeDoc/tacto/internal/platform/sysclip"
	"github.com/MrSnakeDoc/tacto/internal/pomodoro"
	"github.com/MrSnakeDoc/tacto/internal/redis"
	"github.com/MrSnakeDoc/tacto/internal/scheduler"
	"github.com/MrSnakeDoc/tacto/internal/search"
	"github.com/MrSnakeDoc/tacto/internal/sources/appdirs"
	"github.com/MrSnakeDoc/tacto/internal/store"
	redisstore "github.com/MrSnakeDoc/tacto/internal/store/redis"
	"github.com/MrSnakeDoc/tacto/internal/tasks"
	"github.com/MrSnakeDoc/tacto/internal/uiloop"
	"github.com/MrSnakeDoc/tacto/internal/utils"
	"github.com/MrSnakeDoc/tacto/internal/version"
	"github.com/MrSnakeDoc/tacto/internal/websearch"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger

	// ctx lives until shutdown has flushed everything.
	ctx    context.Context
	cancel context.CancelFunc
	ready  atomic.Bool

	loop        *uiloop.Loop
	server      *httpserver.Server
	redisClient *goredis.Client
	catalog     *index.MemoryIndex
	syncer      *scheduler.CatalogSyncer

	reloader         *scheduler.CatalogReloader
	bookmarkReloader *scheduler.BookmarkReloader
	sweeper          *scheduler.Sweeper

	pipeline  *launcher.Pipeline
	clipboard *clipboard.Service
	stats     *pomodoro.Stats
	timer     *pomodoro.Timer
	tasks     *tasks.Store
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loggerClient := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{cfg: cfg, logger: loggerClient, ctx: ctx, cancel: cancel}

	blob, ping, err := a.openStore()
	if err != nil {
		cancel()
		return nil, err
	}

	taskStore, err := tasks.Open(cfg.Tasks.DBPath, loggerClient.Named("tasks"))
	if err != nil {
		a.closeRedis()
		cancel()
		return nil, err
	}
	a.tasks = taskStore

	a.loop = uiloop.New()
	a.catalog = index.NewMemoryIndex()
	a.syncer = scheduler.NewCatalogSyncer(blob, a.catalog, loggerClient.Named("catalog"))

	// Manual reload triggers, fed by POST /reload
	reloadTrigger := make(chan struct{}, 1)
	a.reloader = scheduler.NewCatalogReloader(
		appdirs.NewScanner(cfg.Launcher.AppDirs, loggerClient.Named("appdirs")),
		a.syncer,
		a.catalog,
		loggerClient.Named("catalog"),
		cfg.Scheduler.CatalogInterval,
		reloadTrigger,
	)

	var bookmarkReloadTrigger chan struct{}
	if cfg.Launcher.BookmarkFile != "" {
		loggerClient.Info("bookmark file configured",
			logger.String("file", cfg.Launcher.BookmarkFile))
		bookmarkReloadTrigger = make(chan struct{}, 1)
		a.bookmarkReloader = scheduler.NewBookmarkReloader(
			cfg.Launcher.BookmarkFile,
			a.catalog,
			loggerClient.Named("bookmarks"),
			cfg.Scheduler.CatalogInterval,
			bookmarkReloadTrigger,
		)
	} else {
		loggerClient.Info("bookmark file not configured, bookmark commands disabled")
	}

	engine, err := websearch.ParseEngine(cfg.Launcher.WebEngine)
	if err != nil {
		loggerClient.Warn("unknown web engine, using google", logger.Error(err))
		engine = websearch.Google
	}
	desk := opener.New()

	a.stats = pomodoro.NewStats(blob, cfg.Pomodoro.Retention, loggerClient.Named("pomodoro"))
	a.timer = pomodoro.NewTimer(a.stats, cfg.Pomodoro.DefaultMinutes, cfg.Pomodoro.Tick, loggerClient.Named("pomodoro"))

	view := observe.NewCell(launcher.View{})
	acts := &actions{
		log:     loggerClient.Named("actions"),
		desktop: desk,
		web:     websearch.NewSearcher(engine, desk),
		timer:   a.timer,
		catalog: a.catalog,
		syncer:  a.syncer,
		view:    view,
		now:     time.Now,
	}

	backends := search.Select(cfg.Launcher.Backend, a.catalog, cfg.Launcher.SearchRoots, loggerClient.Named("search"))
	loggerClient.Info("search backend selected", logger.String("backend", backends.Name))

	a.pipeline = launcher.NewPipeline(
		a.loop,
		launcher.NewCommands(acts, a.catalog),
		acts,
		backends.Apps,
		backends.Files,
		launcher.Options{
			Debounce:  cfg.Launcher.Debounce,
			AppLimit:  cfg.Launcher.AppLimit,
			FileLimit: cfg.Launcher.FileLimit,
		},
		loggerClient.Named("launcher"),
	)
	panel := launcher.NewPanel(a.pipeline, loggerClient.Named("panel"))

	sweeps := []scheduler.SweepTask{{
		Name: "pomodoro",
		Run:  a.stats.Cleanup,
	}}
	if cfg.Clipboard.Enabled {
		a.clipboard = a.openClipboard(blob)
	}
	if a.clipboard != nil {
		sweeps = append(sweeps, scheduler.SweepTask{
			Name: "clipboard",
			Run:  func(context.Context) int { return a.clipboard.Prune() },
		})
	}
	a.sweeper = scheduler.NewSweeper(
		a.catalog,
		a.syncer,
		loggerClient.Named("sweep"),
		cfg.Scheduler.SweepInterval,
		cfg.Scheduler.GCThreshold,
		sweeps...,
	)

	d := deps.Deps{
		Logger:                loggerClient.Named("http"),
		StartTime:             time.Now(),
		Version:               version.Version,
		Commit:                version.Commit,
		BuildDate:             version.BuildDate,
		GoVersion:             version.GoVersion,
		AllowedHosts:          cfg.Access.AllowedHosts,
		AllowedCIDRS:          cfg.Access.AllowedCIDRS,
		TrustProxy:            cfg.Access.TrustProxy,
		ReloadBurst:           cfg.Access.ReloadBurst,
		ReloadPerMin:          cfg.Access.ReloadPerMin,
		Catalog:               a.catalog,
		SearchBackend:         backends.Name,
		StoreBackend:          cfg.Store.Backend,
		StorePing:             ping,
		Ready:                 a.ready.Load,
		Panel:                 panel,
		Pipeline:              a.pipeline,
		View:                  view,
		Clipboard:             a.clipboard,
		Pomodoro:              a.timer,
		Sessions:              a.stats,
		Tasks:                 a.tasks,
		CatalogReloadTrigger:  reloadTrigger,
		BookmarkReloadTrigger: bookmarkReloadTrigger,
	}
	a.server = httpserver.New(cfg, loggerClient, d)

	return a, nil
}

// openStore builds the blob backend. Only redis has something to ping.
func (a *App) openStore() (store.Blob, func(context.Context) error, error) {
	switch a.cfg.Store.Backend {
	case "redis":
		a.logger.Infof("Connecting to Redis at %s", a.cfg.Store.Redis.Addr)
		client, err := redis.New(a.ctx, redis.OptionsFromConfig(a.cfg.Store.Redis), a.logger.Named("redis"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client
		rs := redisstore.NewStore(client)
		return rs, rs.Ping, nil
	default:
		a.logger.Info("using file store", logger.String("dir", a.cfg.Store.Dir))
		return store.NewFile(a.cfg.Store.Dir), nil, nil
	}
}

// openClipboard binds the history to the system clipboard. A clipboard that
// cannot be opened disables the feature instead of failing startup.
func (a *App) openClipboard(blob store.Blob) *clipboard.Service {
	log := a.logger.Named("clipboard")
	board, err := sysclip.New(a.ctx, log)
	if err != nil {
		log.Warn("system clipboard unavailable, history disabled", logger.Error(err))
		return nil
	}

	c := a.cfg.Clipboard
	return clipboard.NewService(a.loop, board, sysclip.Keys{}, blob, clipboard.Options{
		Limits: clipboard.Limits{
			MaxItems: c.MaxItems,
			MaxBytes: c.MaxBytes,
			MaxAge:   c.MaxAge,
		},
		PollInterval: c.PollInterval,
		SaveDelay:    c.SaveDelay,
		PasteDelay:   c.PasteDelay,
	}, log)
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.loop.Run(a.ctx)

	// Restore persisted state before anything can change it
	if err := a.syncer.Restore(ctx); err != nil {
		a.logger.Warn("failed to restore app catalog, starting empty", logger.Error(err))
	}
	a.stats.Load(ctx)
	if a.clipboard != nil {
		a.clipboard.Load(ctx)
		a.clipboard.Start()
		a.logger.Info("clipboard history started",
			logger.Duration("poll_interval", a.cfg.Clipboard.PollInterval))
	}

	if err := a.reloader.Start(ctx); err != nil {
		a.logger.Warn("catalog reloader started without an initial scan", logger.Error(err))
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.Scheduler.CatalogInterval))

	if a.bookmarkReloader != nil {
		if err := a.bookmarkReloader.Start(ctx); err != nil {
			a.logger.Warn("bookmark reloader started without bookmarks", logger.Error(err))
		}
	}

	a.sweeper.Start(ctx)
	a.logger.Info("sweeper started",
		logger.Duration("interval", a.cfg.Scheduler.SweepInterval))

	errCh, err := a.server.Start()
	if err != nil {
		a.shutdown()
		return fmt.Errorf("failed to start control API: %w", err)
	}
	a.ready.Store(true)

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.shutdown()
		if err != nil {
			return fmt.Errorf("control API error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.logger.Warn("failed to stop control API", logger.Error(err))
	}
	a.shutdown()

	a.logger.Info("✅ tacto stopped cleanly")
	return nil
}

// shutdown stops the background work, flushes pending state and releases the
// stores. The clipboard is flushed before the loop drains and again after it,
// while the stores are still open.
func (a *App) shutdown() {
	a.ready.Store(false)

	a.reloader.Stop()
	if a.bookmarkReloader != nil {
		a.bookmarkReloader.Stop()
	}
	a.sweeper.Stop()
	a.timer.Stop()
	a.pipeline.Close()

	flushCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if a.clipboard != nil {
		if err := a.clipboard.Close(flushCtx); err != nil {
			a.logger.Warn("failed to flush clipboard history", logger.Error(err))
		}
	}

	a.loop.Stop()
	<-a.loop.Done()

	// the drain may have scheduled one more snapshot
	if a.clipboard != nil {
		if err := a.clipboard.Flush(flushCtx); err != nil {
			a.logger.Warn("failed to flush clipboard history", logger.Error(err))
		}
	}

	utils.MustClose(a.tasks, "tasks database", a.logger)
	a.closeRedis()
	a.cancel()
	_ = a.logger.Sync()
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warnf("failed to close redis: %v", err)
	} else {
		a.logger.Info("✅ Redis closed cleanly")
	}
}
