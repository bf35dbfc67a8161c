package launcher

import (
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/observe"
)

// Panel is the launcher window as seen by the shell: visible or not, with the
// pipeline behind it.
type Panel struct {
	pipeline *Pipeline
	visible  *observe.Cell[bool]
	logger   logger.Logger
}

func NewPanel(p *Pipeline, log logger.Logger) *Panel {
	return &Panel{
		pipeline: p,
		visible:  observe.NewCell(false),
		logger:   log,
	}
}

// Show opens the panel on a fresh, empty query.
func (pn *Panel) Show() {
	pn.pipeline.Reset()
	pn.visible.Set(true)
}

func (pn *Panel) Hide() {
	pn.visible.Set(false)
}

func (pn *Panel) Toggle() {
	if pn.visible.Get() {
		pn.Hide()
		return
	}
	pn.Show()
}

func (pn *Panel) Visible() bool {
	return pn.visible.Get()
}

// OnVisibility registers fn for visibility changes.
func (pn *Panel) OnVisibility(fn func(bool)) (cancel func()) {
	return pn.visible.Subscribe(fn)
}

// Submit runs the selected suggestion and hides the panel. It reports false,
// and leaves the panel open, when nothing is selected.
func (pn *Panel) Submit() (Suggestion, bool) {
	s, ok := pn.pipeline.Selection()
	if !ok {
		return Suggestion{}, false
	}
	pn.logger.Info("suggestion submitted",
		logger.String("id", s.ID),
		logger.String("kind", string(s.Kind)))
	go s.Run()
	pn.Hide()
	return s, true
}

// Cancel hides the panel without running anything.
func (pn *Panel) Cancel() {
	pn.Hide()
}
