package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/specplot/internal/core/domain"
	"github.com/kamal-hamza/specplot/internal/core/services"
	"github.com/kamal-hamza/specplot/pkg/ui"
)

// previewLines is the number of header lines shown by --pick
const previewLines = 12

func runPlot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if cleanCharts {
		if err := appDirs.CleanCharts(); err != nil {
			return err
		}
		logger.Debug("cleaned chart cache")
	}

	req := services.LoadRequest{Pattern: filePattern}
	if pickFiles {
		req.Select = selectFiles
	}

	loaded, err := loadService.Execute(ctx, req)
	if err != nil {
		return err
	}

	rows := services.Summarize(loaded.Records)
	if len(rows) > 0 {
		printSummary(out, rows)
	}

	if copySummary && len(rows) > 0 {
		if err := clipboard.WriteAll(services.FormatTSV(rows, appConfig.DisplayDateFormat)); err != nil {
			fmt.Fprintln(out, ui.FormatWarning(fmt.Sprintf("Failed to copy summary: %v", err)))
		} else {
			fmt.Fprintln(out, ui.FormatSuccess("Summary copied to clipboard"))
		}
	}

	outputDir := appConfig.OutputDir
	if outputDir == "" {
		outputDir = appDirs.ChartsPath
	}

	resp, err := plotService.Plot(ctx, services.PlotRequest{
		Records: loaded.Records,
		Options: services.PlotOptions{
			Title:           appConfig.ChartTitle,
			Wavelength:      domain.Range{Min: appConfig.WavelengthMin, Max: appConfig.WavelengthMax},
			Reflectance:     domain.Range{Min: appConfig.ReflectanceMin, Max: appConfig.ReflectanceMax},
			AnnotationStart: appConfig.AnnotationStart,
			AnnotationStep:  appConfig.AnnotationStep,
		},
		Output:    outputPath,
		OutputDir: outputDir,
		Open:      appConfig.OpenChart && !noOpen,
	})
	if errors.Is(err, services.ErrNoRecords) {
		fmt.Fprintln(out, ui.FormatWarning(fmt.Sprintf("No files to plot for %q", filePattern)))
		return nil
	}
	if resp != nil {
		fmt.Fprintln(out, ui.FormatChart(fmt.Sprintf("Chart written to %s (%d traces)", resp.Output, len(resp.Chart.Traces))))
	}
	if err != nil {
		return err
	}

	if resp.Opened {
		fmt.Fprintln(out, ui.FormatInfo("Opened in viewer"))
	}
	return nil
}

// printSummary prints one table row per measurement
func printSummary(w io.Writer, rows []services.SummaryRow) {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "FILE"},
		{Header: "TIMESTAMP"},
		{Header: "OPERATOR"},
		{Header: "DESCRIPTION"},
		{Header: "SAMPLES", Align: ui.AlignRight},
		{Header: "AVG_VIS", Align: ui.AlignRight},
	})

	for _, r := range rows {
		table.AddRow(
			r.Label,
			r.Timestamp.Format(appConfig.DisplayDateFormat),
			r.Operator,
			r.Description,
			strconv.Itoa(r.Samples),
			r.AverageText(),
		)
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, table.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.FormatMuted(fmt.Sprintf("%d file(s)", len(rows))))
}

// selectFiles lets the user narrow the matches with a fuzzy finder.
// Selection keeps the original match order; aborting selects nothing.
func selectFiles(paths []string) ([]string, error) {
	idxs, err := fuzzyfinder.FindMulti(
		paths,
		func(i int) string {
			return paths[i]
		},
		fuzzyfinder.WithPromptString("Files > "),
		fuzzyfinder.WithHeader("Tab to select, Enter to plot"),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return previewHeader(paths[i], previewLines)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, err
	}

	slices.Sort(idxs)
	selected := make([]string, 0, len(idxs))
	for _, i := range idxs {
		selected = append(selected, paths[i])
	}
	return selected, nil
}

// previewHeader returns the first n lines of an export file
func previewHeader(path string, n int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Cannot read %s: %v", filepath.Base(path), err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
