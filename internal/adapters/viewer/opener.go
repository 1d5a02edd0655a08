package viewer

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/kamal-hamza/specplot/internal/core/ports"
)

// SystemOpener opens files with a configured viewer or the OS default application
type SystemOpener struct {
	viewer string
	goos   string
	start  func(cmd *exec.Cmd) error
}

// NewSystemOpener creates an opener. An empty viewer selects the OS default.
func NewSystemOpener(viewer string) *SystemOpener {
	return &SystemOpener{
		viewer: viewer,
		goos:   runtime.GOOS,
		start:  func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// Ensure it implements the interface
var _ ports.FileOpener = (*SystemOpener)(nil)

// Open launches the viewer without waiting for it, so the chart stays open after exit
func (o *SystemOpener) Open(ctx context.Context, path string) error {
	cmd := o.command(path)

	if err := o.start(cmd); err != nil {
		if o.viewer != "" {
			return fmt.Errorf("failed to open '%s' with '%s': %w", path, o.viewer, err)
		}
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}

	return nil
}

// command builds the viewer invocation for path
func (o *SystemOpener) command(path string) *exec.Cmd {
	if o.viewer != "" {
		// e.g. firefox, chromium
		return exec.Command(o.viewer, path)
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("cmd", "/c", "start", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
