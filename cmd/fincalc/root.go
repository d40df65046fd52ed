package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meenmo/fincalc/config"
	"github.com/meenmo/fincalc/engine"
)

// errFailed reports that failures were already written to stdout.
var errFailed = errors.New("one or more tasks failed")

var errNoInput = errors.New("no input: pass --input or pipe JSON on stdin")

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfgFile   string
	envFile   string
	inputPath string
	verbose   bool

	engine *engine.Engine
	log    *slog.Logger
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fincalc",
		Short: "Financial calculator engine",
		Long: `fincalc solves time-value-of-money problems and evaluates cash flows,
loans, bonds, depreciation, break-even and capital accumulation plans.

Input is JSON, one object or an array of objects, read from --input or stdin.
Amounts may be given as JSON numbers or strings; results are strings rounded
to the configured display places.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (.toml or .yaml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file with FINCALC_* overrides")
	flags.StringVarP(&a.inputPath, "input", "i", "", "JSON input path (reads stdin if omitted)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log each failed task to stderr")

	root.AddCommand(
		a.tvmCmd(),
		a.npvCmd(),
		a.nfvCmd(),
		a.irrCmd(),
		a.amortCmd(),
		a.bondPriceCmd(),
		a.bondYieldCmd(),
		a.depreciationCmd(),
		a.convertCmd(),
		a.breakevenCmd(),
		a.capitalCmd(),
	)
	return root
}

// setup loads configuration and builds the engine before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	if err := config.LoadDotEnv(a.envFile); err != nil {
		return a.fail(err.Error())
	}
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return a.fail(err.Error())
	}
	e, err := engine.New(cfg)
	if err != nil {
		return a.fail(err.Error())
	}
	a.engine = e
	a.log.Debug("configured", "config", a.cfgFile, "precision", cfg.Precision, "display_places", cfg.DisplayPlaces)
	return nil
}

// fail writes a single error object and returns errFailed.
func (a *app) fail(msg string) error {
	a.writeJSON(envelope{Error: msg})
	return errFailed
}

func (a *app) readInput() ([]byte, error) {
	if a.inputPath != "" {
		return os.ReadFile(a.inputPath)
	}
	if f, ok := a.stdin.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return nil, errNoInput
		}
	}
	return io.ReadAll(a.stdin)
}

func (a *app) writeJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(a.stderr, "fincalc: encode output: %v\n", err)
		return
	}
	fmt.Fprintln(a.stdout, string(b))
}
