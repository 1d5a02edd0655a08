package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/specplot/internal/adapters/chart"
	"github.com/kamal-hamza/specplot/internal/adapters/locator"
	"github.com/kamal-hamza/specplot/internal/adapters/peascii"
	"github.com/kamal-hamza/specplot/internal/adapters/viewer"
	"github.com/kamal-hamza/specplot/internal/core/services"
	"github.com/kamal-hamza/specplot/pkg/appdir"
	"github.com/kamal-hamza/specplot/pkg/config"
	"github.com/kamal-hamza/specplot/pkg/ui"
)

var (
	// Global state
	appDirs   *appdir.Dirs
	appConfig *config.Config
	logger    *slog.Logger

	// Services
	loadService *services.LoadService
	plotService *services.PlotService
)

// Flags
var (
	filePattern string
	configPath  string
	wlMin       float64
	wlMax       float64
	outputPath  string
	noOpen      bool
	pickFiles   bool
	copySummary bool
	cleanCharts bool
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "specplot",
	Short: "Plot reflectance spectra from spectrophotometer exports",
	Long: ui.StyleTitle.Render("specplot") + " - Reflectance Plotter\n\n" +
		"Reads PerkinElmer ASCII exports (absorbance per wavelength), converts them to\n" +
		"reflectance and opens an interactive chart with the 400-700 nm average of each file.",
	Example: `  specplot -f sample.sp
  specplot -f "data/*.sp"
  specplot -f "data/*.sp" --pick --no-open -o grey-cards.html
  specplot -f "data/*.sp" --wl-min 400 --wl-max 700 --copy`,
	Version:           Version,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
	RunE:              runPlot,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(versionTemplate())

	flags := rootCmd.Flags()
	flags.StringVarP(&filePattern, "file", "f", "", "Export file or quoted glob pattern (e.g. \"data/*.sp\")")
	flags.StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/specplot/config.yaml)")
	flags.Float64Var(&wlMin, "wl-min", 0, "Lower wavelength axis limit in nm (overrides config)")
	flags.Float64Var(&wlMax, "wl-max", 0, "Upper wavelength axis limit in nm (overrides config)")
	flags.StringVarP(&outputPath, "output", "o", "", "Write the chart to this file instead of the cache directory")
	flags.BoolVar(&noOpen, "no-open", false, "Do not open the chart in a viewer")
	flags.BoolVar(&pickFiles, "pick", false, "Interactively choose among the matched files")
	flags.BoolVar(&copySummary, "copy", false, "Copy the summary table to the clipboard as TSV")
	flags.BoolVar(&cleanCharts, "clean", false, "Remove previously rendered charts from the cache first")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	_ = rootCmd.MarkFlagRequired("file")
}

// initializeApp loads configuration and wires the services
func initializeApp(cmd *cobra.Command, args []string) error {
	dirs, err := appdir.New()
	if err != nil {
		return fmt.Errorf("failed to resolve directories: %w", err)
	}
	appDirs = dirs

	path := configPath
	if path == "" {
		path = appDirs.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	// Command line overrides win over file and environment
	if cmd.Flags().Changed("wl-min") {
		cfg.WavelengthMin = wlMin
	}
	if cmd.Flags().Changed("wl-max") {
		cfg.WavelengthMax = wlMax
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)
	logger = newLogger(cmd, verbose)

	renderer := chart.NewEChartsRenderer(chart.Options{
		Width:  appConfig.ChartWidth,
		Height: appConfig.ChartHeight,
		Theme:  appConfig.ChartTheme,
	})

	loadService = services.NewLoadService(locator.NewGlobLocator(), peascii.NewReader(logger), logger)
	plotService = services.NewPlotService(renderer, viewer.NewSystemOpener(appConfig.Viewer), logger)

	logger.Debug("initialized",
		slog.String("config", path),
		slog.String("charts", appDirs.ChartsPath))

	return nil
}

// newLogger returns a text logger on stderr, Warn by default and Debug when verbose
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
