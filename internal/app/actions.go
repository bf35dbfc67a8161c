package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/launcher"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/observe"
)

const counterSaveTimeout = 5 * time.Second

type desktop interface {
	OpenURL(u string) error
	OpenFile(path string) error
	LaunchApp(path string) error
}

type webSearcher interface {
	Open(query string) error
}

type timerStarter interface {
	Start(minutes int) error
}

type catalogSaver interface {
	Save(ctx context.Context) error
}

// actions carries out what a submitted suggestion asks for. Windows are not
// opened here: the request is published on view and the shell presents it.
type actions struct {
	log     logger.Logger
	desktop desktop
	web     webSearcher
	timer   timerStarter
	catalog *index.MemoryIndex
	syncer  catalogSaver
	view    *observe.Cell[launcher.View]
	seq     atomic.Uint64
	now     func() time.Time
}

var _ launcher.Actions = (*actions)(nil)

func (a *actions) present(name launcher.ViewName, arg string) {
	v := launcher.View{Name: name, Argument: arg, Seq: a.seq.Add(1)}
	a.view.Set(v)
	a.log.Debug("view requested", logger.String("view", string(name)), logger.Uint64("seq", v.Seq))
}

func (a *actions) OpenTasks() { a.present(launcher.ViewTasks, "") }

func (a *actions) NewTask(name string) { a.present(launcher.ViewNewTask, name) }

func (a *actions) OpenClipboard(filter string) { a.present(launcher.ViewClipboard, filter) }

func (a *actions) StartPomodoro(minutes int) {
	if err := a.timer.Start(minutes); err != nil {
		a.log.Warn("failed to start pomodoro", logger.Error(err))
	}
}

func (a *actions) SearchWeb(query string) {
	if err := a.web.Open(query); err != nil {
		a.log.Warn("web search failed", logger.Error(err))
	}
}

func (a *actions) OpenURL(u string) {
	if err := a.desktop.OpenURL(u); err != nil {
		a.log.Warn("failed to open url", logger.Error(err))
	}
}

func (a *actions) OpenFile(path string) {
	if err := a.desktop.OpenFile(path); err != nil {
		a.log.Warn("failed to open file", logger.Error(err))
	}
}

// LaunchApp starts the application and, when the catalog knows it, counts the
// launch so later rankings prefer it.
func (a *actions) LaunchApp(path string) {
	if err := a.desktop.LaunchApp(path); err != nil {
		a.log.Warn("failed to launch app", logger.String("path", path), logger.Error(err))
		return
	}
	if !a.catalog.IncrementCounter(path, a.now()) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), counterSaveTimeout)
	defer cancel()
	if err := a.syncer.Save(ctx); err != nil {
		a.log.Warn("failed to save app catalog", logger.Error(err))
	}
}
