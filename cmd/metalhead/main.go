// MetalHeadCAM: 2D cut planning for CNC plasma, laser and router tables.
//
// Reads a DXF drawing or a CSV/XLSX coordinate table, chains and nests the
// geometry into parts, applies kerf compensation and leads, orders the
// travel between cuts and writes the plan as JSON, a PDF drawing, QR part
// labels and a spreadsheet report.
//
// Build:
//
//	go build -o metalhead ./cmd/metalhead
//
// Usage:
//
//	metalhead [flags] drawing.dxf
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/config"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/export"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/importer"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/plan"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/project"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "metalhead: %v\n", err)
		}
		os.Exit(1)
	}
}

// options are the command line flags. Flags left unset keep the value from
// the config file and environment.
type options struct {
	configPath string
	outDir     string
	logLevel   string
	tolerance  float64
	precision  int
	kerfWidth  float64
	kerfMode   string
	leadType   string
	leadLength float64
	origin     string
	seed       int64
	writeJSON  bool
	writePDF   bool
	writeLabel bool
	writeXLSX  bool
	saveConfig bool
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("metalhead", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "config file (default ~/.metalhead/config.json)")
	fs.StringVar(&opts.outDir, "out", "", "output directory (default next to the input)")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	fs.Float64Var(&opts.tolerance, "tolerance", 0, "coincidence tolerance in mm")
	fs.IntVar(&opts.precision, "precision", 0, "decimal places for exported coordinates")
	fs.Float64Var(&opts.kerfWidth, "kerf", 0, "kerf width in mm")
	fs.StringVar(&opts.kerfMode, "kerf-mode", "", "none, inside, outside, centered or auto")
	fs.StringVar(&opts.leadType, "lead", "", "none, line or arc")
	fs.Float64Var(&opts.leadLength, "lead-length", 0, "lead length in mm")
	fs.StringVar(&opts.origin, "origin", "", "machine origin as x,y")
	fs.Int64Var(&opts.seed, "seed", 0, "tour solver random seed")
	fs.BoolVar(&opts.writeJSON, "json", true, "write the plan as JSON")
	fs.BoolVar(&opts.writePDF, "pdf", true, "write a PDF drawing and summary")
	fs.BoolVar(&opts.writeLabel, "labels", false, "write QR part labels")
	fs.BoolVar(&opts.writeXLSX, "report", false, "write an XLSX cut report")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "store the given settings as defaults")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: metalhead [flags] <drawing.dxf|table.csv|table.xlsx>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one input file")
	}
	input := fs.Arg(0)

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	env, err := config.Load()
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = env.ConfigPath
	}
	if configPath == "" {
		configPath = project.DefaultConfigPath()
	}
	app, err := project.LoadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := env.Apply(&app); err != nil {
		return err
	}
	if err := opts.apply(&app, set); err != nil {
		return err
	}

	setupLogging(stderr, app.LogLevel)

	settings := model.DefaultSettings()
	app.ApplyToSettings(&settings)
	env.ApplyTour(&settings.Tour)
	if set["seed"] {
		settings.Tour.Seed = opts.seed
	}
	if opts.origin != "" {
		o, err := parsePoint(opts.origin)
		if err != nil {
			return fmt.Errorf("-origin: %w", err)
		}
		settings.Origin = o
	}

	result := importer.Import(input)
	for _, w := range result.Warnings {
		slog.Warn("import", "file", input, "warning", w)
	}
	for _, e := range result.Errors {
		slog.Error("import", "file", input, "error", e)
	}
	if result.Drawing.ShapeCount() == 0 {
		return fmt.Errorf("import %s: no usable shapes", input)
	}
	slog.Info("imported drawing", "file", input, "layers", len(result.Drawing.Layers), "shapes", result.Drawing.ShapeCount())

	p, err := plan.Build(result.Drawing, settings)
	if err != nil {
		return fmt.Errorf("plan %s: %w", input, err)
	}
	slog.Info("planned", "parts", len(p.Parts), "cuts", len(p.Cuts()),
		"cut_length", p.CutLength(), "rapid_length", p.RapidLength())

	outDir := app.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	base := filepath.Join(outDir, p.Name)

	outputs := []struct {
		enabled bool
		path    string
		write   func(string) error
	}{
		{opts.writeJSON, base + ".plan.json", func(path string) error { return project.SavePlan(path, p, settings) }},
		{opts.writePDF, base + ".pdf", func(path string) error { return export.ExportPDF(path, p, settings) }},
		{opts.writeLabel, base + "-labels.pdf", func(path string) error { return export.ExportLabels(path, p) }},
		{opts.writeXLSX, base + ".xlsx", func(path string) error { return export.ExportReport(path, p, settings) }},
	}
	for _, out := range outputs {
		if !out.enabled {
			continue
		}
		if err := out.write(out.path); err != nil {
			return fmt.Errorf("write %s: %w", out.path, err)
		}
		slog.Info("wrote", "path", out.path)
	}

	if abs, err := filepath.Abs(input); err == nil {
		app.AddRecentFile(abs)
	}
	if opts.saveConfig {
		if err := project.SaveAppConfig(configPath, app); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		slog.Info("saved config", "path", configPath)
	}
	return nil
}

// apply copies explicitly set flags over the loaded defaults.
func (o options) apply(app *model.AppConfig, set map[string]bool) error {
	if set["out"] {
		app.OutputDir = o.outDir
	}
	if set["log-level"] {
		app.LogLevel = o.logLevel
	}
	if set["tolerance"] {
		app.DefaultTolerance = o.tolerance
	}
	if set["precision"] {
		app.DefaultPrecision = o.precision
	}
	if set["kerf"] {
		app.DefaultKerfWidth = o.kerfWidth
	}
	if set["kerf-mode"] {
		m, err := model.ParseKerfMode(o.kerfMode)
		if err != nil {
			return fmt.Errorf("-kerf-mode: %w", err)
		}
		app.DefaultKerfMode = m
	}
	if set["lead"] {
		t, err := model.ParseLeadType(o.leadType)
		if err != nil {
			return fmt.Errorf("-lead: %w", err)
		}
		app.DefaultLeadType = t
	}
	if set["lead-length"] {
		app.DefaultLeadLength = o.leadLength
	}
	return nil
}

func setupLogging(w io.Writer, level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})))
}

func parsePoint(s string) (geom.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geom.Point{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{X: x, Y: y}, nil
}
