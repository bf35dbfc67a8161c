package launcher

// ViewName names a window the shell can present outside the launcher panel.
type ViewName string

const (
	ViewNone      ViewName = ""
	ViewTasks     ViewName = "tasks"
	ViewNewTask   ViewName = "new-task"
	ViewClipboard ViewName = "clipboard"
)

// View is a request for the shell to present a window. Seq grows with every
// request so a repeated request for the same window is still observable.
type View struct {
	Name     ViewName `json:"name"`
	Argument string   `json:"argument,omitempty"`
	Seq      uint64   `json:"seq"`
}
