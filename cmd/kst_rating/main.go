package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	workers     int
	logLevel    string
	pdfPath     string
	plotsDir    string
	motionsPath string
}

func (o *cliOptions) runConfig() RunConfig {
	return RunConfig{
		Workers:     o.workers,
		PDFPath:     o.pdfPath,
		PlotsDir:    o.plotsDir,
		MotionsPath: o.motionsPath,
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}
	logger := logrus.New()

	rootCmd := &cobra.Command{
		Use:   "kst_rating",
		Short: "Rate how well a set of contact constraints holds a rigid body",
		Long: `kst_rating reads points, pins, lines and planes from a YAML document,
finds the screw motions the constraints leave to each locking combination and
reports the WTR, MRR, MTR and TOR ratings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configureLogger(logger, opts.logLevel, cmd.ErrOrStderr())
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&opts.workers, "workers", "w", 0, "parallel workers (0 uses the document's options.workers)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to this path")
	pf.StringVar(&opts.plotsDir, "plots-dir", "", "write plot PNGs into this directory")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <constraints.yaml>",
		Short: "Enumerate locking combinations and rate the assembly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewApp(logger, cmd.OutOrStdout()).RunAnalysis(args[0], opts.runConfig())
		},
	}

	specmotCmd := &cobra.Command{
		Use:   "specmot <constraints.yaml>",
		Short: "Rate the assembly against given motions",
		Long: `specmot rates the constraints against motions given as
[axis_x, axis_y, axis_z, ref_x, ref_y, ref_z, pitch] rows, either from the
document's motions list or from a CSV file. A pitch of inf is a translation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewApp(logger, cmd.OutOrStdout()).RunSpecifiedMotions(args[0], opts.runConfig())
		},
	}
	specmotCmd.Flags().StringVar(&opts.motionsPath, "motions", "", "CSV file of motions, overrides the document's list")

	rootCmd.AddCommand(analyzeCmd, specmotCmd)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd
}

// configureLogger sets the level and picks colored text for terminals and
// JSON lines otherwise.
func configureLogger(logger *logrus.Logger, level string, w io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(lvl)
	logger.SetOutput(w)
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
