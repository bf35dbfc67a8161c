// Package sysclip binds the clipboard engine to the operating system clipboard.
package sysclip

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-vgo/robotgo"
)

// Keys sends synthetic keystrokes to the frontmost application.
type Keys struct{}

// Paste taps the platform paste shortcut.
func (Keys) Paste() error {
	modifier := "ctrl"
	if runtime.GOOS == "darwin" {
		modifier = "cmd"
	}
	if err := robotgo.KeyTap("v", modifier); err != nil {
		return fmt.Errorf("failed to send paste shortcut: %w", err)
	}
	return nil
}

func joinLines(paths []string) string {
	return strings.Join(paths, "\n")
}
