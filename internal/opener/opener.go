// Package opener hands URLs, files and applications to the desktop.
package opener

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/pkg/browser"
)

// Opener launches things with the platform default handler.
type Opener struct{}

func New() *Opener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Opener{}
}

func (*Opener) OpenURL(u string) error {
	if err := browser.OpenURL(u); err != nil {
		return fmt.Errorf("failed to open %s: %w", u, err)
	}
	return nil
}

func (*Opener) OpenFile(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// LaunchApp starts an application bundle or desktop entry.
func (o *Opener) LaunchApp(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-a", path)
	case "linux":
		cmd = exec.Command("gio", "launch", path)
	default:
		return o.OpenFile(path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
