package cmd

import (
	"github.com/kamal-hamza/specplot/pkg/ui"
)

// Version information - these can be set during build with ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// versionTemplate renders the output of --version
func versionTemplate() string {
	return ui.StyleTitle.Render("specplot") + " - Reflectance Plotter\n\n" +
		ui.RenderKeyValue("Version", "{{.Version}}") + "\n" +
		ui.RenderKeyValue("Commit", GitCommit) + "\n" +
		ui.RenderKeyValue("Build Date", BuildDate) + "\n"
}
