package main

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"propertyfinder/internal/config"
	"propertyfinder/internal/logger"
	"propertyfinder/internal/metrics"
	"propertyfinder/internal/tui"
)

type rootOptions struct {
	configPath  string
	metricsAddr string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "propertyfinder",
		Short:         "Search homes in plain language",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flags.StringVar(&opts.logLevel, "log-level", "", "override log.level")

	root.AddCommand(
		newSearchCmd(opts),
		newShortlistCmd(opts),
		newServeFixtureCmd(opts),
	)
	return root
}

// loadConfig applies flag overrides on top of config.Load.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if o.metricsAddr != "" {
		cfg.Metrics.Addr = o.metricsAddr
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// startMetrics serves /metrics in the background when configured.
func startMetrics(ctx context.Context, cfg *config.Config, log zerolog.Logger) {
	if cfg.Metrics.Addr == "" {
		return
	}
	go metrics.Serve(ctx, cfg.Metrics.Addr, log)
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	var w io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := logger.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	log := logger.New(w, cfg.Log.Level)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	startMetrics(ctx, cfg, log)

	a, err := newApp(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	m := tui.New(tui.Config{
		Session:   a.session,
		Searcher:  a.client,
		Shortlist: a.store,
		Enrichers: a.enrichers,
		Logger:    log,
		Context:   ctx,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(err, "run tui")
	}
	return nil
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	errorColor.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
