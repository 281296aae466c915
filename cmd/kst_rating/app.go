package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/user/kst_rating_go/internal/analysis"
	"github.com/user/kst_rating_go/internal/parser"
	"github.com/user/kst_rating_go/internal/report"
)

// RunConfig carries the command-line choices for one run.
type RunConfig struct {
	Workers     int    // 0 defers to the document's options.workers
	PDFPath     string // empty skips the PDF
	PlotsDir    string // empty skips writing PNGs
	MotionsPath string // CSV of specified motions, overrides the document's list
}

// App runs the parse, analyze and report pipeline, logging one status line
// per stage.
type App struct {
	log logrus.FieldLogger
	out io.Writer
}

// NewApp creates an App that prints summaries to out.
func NewApp(log logrus.FieldLogger, out io.Writer) *App {
	return &App{log: log, out: out}
}

func (a *App) sendStatus(message string) {
	a.log.Info(message)
}

func (a *App) reportFindings(stage string, findings []string) {
	for _, f := range findings {
		a.log.WithField("stage", stage).Warn(f)
	}
}

func (a *App) loadAssembly(path string) (*parser.ParsedAssembly, string, error) {
	a.sendStatus(fmt.Sprintf("Parsing: %s", path))
	parsed, err := parser.ParseConstraintFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("error parsing constraints: %w", err)
	}
	a.sendStatus(fmt.Sprintf("Parsed %d constraints.", parsed.Set.Total()))
	a.reportFindings("parse", parsed.ParseErrors)

	name := parsed.Name
	if name == "" {
		name = filepath.Base(path)
	}
	return parsed, name, nil
}

// RunAnalysis enumerates and rates the constraint document at path.
func (a *App) RunAnalysis(path string, cfg RunConfig) error {
	parsed, name, err := a.loadAssembly(path)
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = parsed.Workers
	}
	a.sendStatus(fmt.Sprintf("Analyzing %d constraints with %d workers...", parsed.Set.Total(), max(1, workers)))
	d, err := analysis.AnalyzeDetailed(parsed.Set, analysis.Options{Workers: workers, Logger: a.log})
	if err != nil {
		return fmt.Errorf("error analyzing constraints: %w", err)
	}
	a.sendStatus(fmt.Sprintf("Analysis complete. %d combinations, %d unique motions.", len(d.Combinations), len(d.UniqueMotions)))

	return a.publish(report.Summarize(name, d), cfg)
}

// RunSpecifiedMotions rates the constraint document at path against given
// motions instead of enumerating combinations.
func (a *App) RunSpecifiedMotions(path string, cfg RunConfig) error {
	parsed, name, err := a.loadAssembly(path)
	if err != nil {
		return err
	}

	motions := parsed.Motions
	if cfg.MotionsPath != "" {
		a.sendStatus(fmt.Sprintf("Parsing motions: %s", cfg.MotionsPath))
		pm, err := parser.ParseMotionFile(cfg.MotionsPath)
		if err != nil {
			return fmt.Errorf("error parsing motions: %w", err)
		}
		a.reportFindings("motions", pm.ParseErrors)
		motions = pm.Rows
	}
	if len(motions) == 0 {
		a.log.Warn("No motions specified; nothing to rate.")
	}

	a.sendStatus(fmt.Sprintf("Rating %d specified motions...", len(motions)))
	res, err := analysis.AnalyzeSpecifiedMotions(parsed.Set, motions)
	if err != nil {
		return fmt.Errorf("error rating motions: %w", err)
	}
	a.sendStatus("Rating complete.")

	return a.publish(report.SummarizeSpecified(name, parsed.Set, res), cfg)
}

func (a *App) publish(s *report.Summary, cfg RunConfig) error {
	if err := report.WriteSummary(a.out, s); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}
	if cfg.PlotsDir == "" && cfg.PDFPath == "" {
		return nil
	}

	plotImages := a.renderPlots(s)
	if cfg.PlotsDir != "" {
		if err := writePlots(cfg.PlotsDir, plotImages); err != nil {
			return err
		}
		a.sendStatus(fmt.Sprintf("Wrote %d plots to %s", len(plotImages), cfg.PlotsDir))
	}
	if cfg.PDFPath != "" {
		a.sendStatus(fmt.Sprintf("Generating PDF: %s...", cfg.PDFPath))
		if err := report.BuildPDFReport(cfg.PDFPath, s, plotImages); err != nil {
			return fmt.Errorf("error generating PDF report: %w", err)
		}
		a.sendStatus(fmt.Sprintf("PDF report successfully generated: %s", cfg.PDFPath))
	}
	return nil
}

// renderPlots draws every plot that applies to s. A plot that cannot be
// drawn is reported and left out.
func (a *App) renderPlots(s *report.Summary) map[string][]byte {
	plotConfigs := []struct {
		Name   string
		Render func() ([]byte, error)
	}{
		{report.PlotResistanceHeatmap, func() ([]byte, error) {
			return report.CreateResistanceHeatmap(s.Rating.Ri, "Reciprocal Resistance per Motion and Constraint")
		}},
		{report.PlotResistanceHistogram, func() ([]byte, error) {
			return report.CreateResistanceHistogram(s.Rating.RowSums, s.Rating.WTR)
		}},
	}

	plotImages := make(map[string][]byte)
	for _, pc := range plotConfigs {
		a.sendStatus(fmt.Sprintf("Plot: %s", pc.Name))
		imgBytes, err := pc.Render()
		if err != nil {
			a.log.WithError(err).Warnf("Skipping plot %s", pc.Name)
			continue
		}
		plotImages[pc.Name] = imgBytes
	}
	return plotImages
}

func writePlots(dir string, plotImages map[string][]byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating plots directory: %w", err)
	}
	for name, img := range plotImages {
		if err := os.WriteFile(filepath.Join(dir, name+".png"), img, 0o644); err != nil {
			return fmt.Errorf("error writing plot %s: %w", name, err)
		}
	}
	return nil
}
