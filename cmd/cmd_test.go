package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/kamal-hamza/specplot/internal/adapters/peascii"
)

// writeExport writes an export file described as desc with a descending 900-300 nm grid
func writeExport(t *testing.T, dir, name, desc string, absorbance float64) string {
	t.Helper()

	lines := []string{
		"PE UV       SUBTECH     SPECTRUM    ASCII       PEDS        4.00        -1",
		"",
		name,
		"23/05/09",
		"14:22:05.00",
		"",
		"",
		"jdoe",
		desc,
		"",
		peascii.DataSentinel,
	}
	for wl := 900; wl >= 300; wl -= 50 {
		lines = append(lines, fmt.Sprintf("%d.00\t%.4f", wl, absorbance))
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// isolateHome points config and cache lookups at a temporary directory
func isolateHome(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
}

// runRoot executes the root command with fresh flag state
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("Root command is nil")
	}

	if rootCmd.Use != "specplot" {
		t.Errorf("Expected root command Use to be 'specplot', got '%s'", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}

	if rootCmd.Version == "" {
		t.Error("Root command has no Version")
	}

	if rootCmd.HasSubCommands() {
		t.Error("Root command should not have subcommands")
	}
}

// TestFlagsRegistered verifies every flag and shorthand is available
func TestFlagsRegistered(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"file", "f"},
		{"config", ""},
		{"wl-min", ""},
		{"wl-max", ""},
		{"output", "o"},
		{"no-open", ""},
		{"pick", ""},
		{"copy", ""},
		{"clean", ""},
		{"verbose", "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := rootCmd.Flags().Lookup(tt.name)
			if f == nil {
				t.Fatalf("Flag '%s' not registered", tt.name)
			}
			if f.Shorthand != tt.shorthand {
				t.Errorf("Flag '%s' shorthand = %q, want %q", tt.name, f.Shorthand, tt.shorthand)
			}
			if f.Usage == "" {
				t.Errorf("Flag '%s' has no usage text", tt.name)
			}
		})
	}
}

func TestRun_FileRequired(t *testing.T) {
	isolateHome(t)
	_, err := runRoot(t)
	if err == nil {
		t.Fatal("expected error without --file")
	}
	if !strings.Contains(err.Error(), "file") {
		t.Errorf("expected error to mention the file flag, got %v", err)
	}
}

func TestRun_RendersChart(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	writeExport(t, dir, "a.sp", "Sample A", 0.82)
	writeExport(t, dir, "b.sp", "Sample B", 0.81)
	output := filepath.Join(dir, "out", "chart.html")

	out, err := runRoot(t, "-f", filepath.Join(dir, "*.sp"), "--no-open", "-o", output)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	for _, want := range []string{"Sample A", "Sample B", "18.0%", "19.0%", "2 file(s)", output} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Opened in viewer") {
		t.Error("chart should not be opened with --no-open")
	}

	html, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	page := string(html)
	if got := strings.Count(page, `"name":"Avg_VIS=`); got != 2 {
		t.Errorf("expected 2 annotations, got %d", got)
	}
	for _, want := range []string{"Sample A", "Sample B"} {
		if !strings.Contains(page, want) {
			t.Errorf("expected chart to contain trace %q", want)
		}
	}
}

func TestRun_DefaultOutputInCache(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	writeExport(t, dir, "a.sp", "Sample A", 0.8)

	out, err := runRoot(t, "-f", filepath.Join(dir, "a.sp"), "--no-open")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	matches, err := filepath.Glob(filepath.Join(appDirs.ChartsPath, "spectra-*.html"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one chart in %s, got %v", appDirs.ChartsPath, matches)
	}

	// A second run with --clean leaves only the new chart behind
	if _, err := runRoot(t, "-f", filepath.Join(dir, "a.sp"), "--no-open", "--clean"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	matches, _ = filepath.Glob(filepath.Join(appDirs.ChartsPath, "spectra-*.html"))
	if len(matches) != 1 {
		t.Errorf("expected one chart after --clean, got %v", matches)
	}
}

func TestRun_NoMatchesWarns(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()

	out, err := runRoot(t, "-f", filepath.Join(dir, "*.sp"), "--no-open")
	if err != nil {
		t.Fatalf("expected no error for an empty match, got %v", err)
	}
	if !strings.Contains(out, "No files to plot") {
		t.Errorf("expected warning, got:\n%s", out)
	}
}

func TestRun_ParseFailure(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	writeExport(t, dir, "a.sp", "Sample A", 0.8)
	bad := filepath.Join(dir, "b.sp")
	if err := os.WriteFile(bad, []byte("too\nshort\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runRoot(t, "-f", filepath.Join(dir, "*.sp"), "--no-open", "-o", filepath.Join(dir, "chart.html"))
	if !errors.Is(err, peascii.ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
	if !strings.Contains(err.Error(), bad) {
		t.Errorf("expected error to name %s, got %v", bad, err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "chart.html")); !os.IsNotExist(statErr) {
		t.Error("no chart should be written after a parse failure")
	}
}

func TestRun_WavelengthOverrides(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	path := writeExport(t, dir, "a.sp", "Sample A", 0.8)

	t.Run("applied", func(t *testing.T) {
		if _, err := runRoot(t, "-f", path, "--no-open", "-o", filepath.Join(dir, "c.html"), "--wl-min", "400", "--wl-max", "700"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if appConfig.WavelengthMin != 400 || appConfig.WavelengthMax != 700 {
			t.Errorf("expected range 400-700, got %v-%v", appConfig.WavelengthMin, appConfig.WavelengthMax)
		}
	})

	t.Run("inverted", func(t *testing.T) {
		_, err := runRoot(t, "-f", path, "--no-open", "--wl-min", "800", "--wl-max", "500")
		if err == nil {
			t.Fatal("expected validation error for an inverted range")
		}
		if !strings.Contains(err.Error(), "wavelength_max") {
			t.Errorf("expected error to name wavelength_max, got %v", err)
		}
	})
}

func TestRun_ConfigFromEnvironment(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	path := writeExport(t, dir, "a.sp", "Sample A", 0.8)
	t.Setenv("SPECPLOT_CHART_TITLE", "Batch 7")

	if _, err := runRoot(t, "-f", path, "--no-open", "-o", filepath.Join(dir, "c.html")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appConfig.ChartTitle != "Batch 7" {
		t.Errorf("expected title from environment, got %q", appConfig.ChartTitle)
	}
}

func TestPreviewHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "a.sp", "Sample A", 0.8)

	preview := previewHeader(path, 3)
	if got := strings.Count(preview, "\n"); got != 2 {
		t.Errorf("expected 3 lines, got %d newlines in %q", got, preview)
	}
	if !strings.HasSuffix(preview, "a.sp") {
		t.Errorf("expected preview to end with the filename line, got %q", preview)
	}

	if missing := previewHeader(filepath.Join(dir, "missing.sp"), 3); !strings.Contains(missing, "Cannot read") {
		t.Errorf("expected read failure message, got %q", missing)
	}
}
