package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/config"
	"github.com/lixenwraith/vi-compositor/core"
	"github.com/lixenwraith/vi-compositor/engine"
	"github.com/lixenwraith/vi-compositor/logutil"
	"github.com/lixenwraith/vi-compositor/status"
	"github.com/lixenwraith/vi-compositor/terminal"
)

// options holds the command line; flags override file values only when set
type options struct {
	configPath  string
	runFor      time.Duration
	logFile     string
	logLevel    string
	border      string
	metricsAddr string
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the compositor crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:          "vi-compositor",
		Short:        "Actor-driven layered terminal compositor",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "path of the TOML config file")
	f.DurationVar(&o.runFor, "run-for", 0, "stop after this long; 0 runs until the quit key")
	f.StringVar(&o.logFile, "log-file", "", "diagnostic log file, truncated at start")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&o.border, "border", "", "border glyphs: ascii or box")
	f.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

// resolve loads the config file and applies explicitly set flags
func (o *options) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("run-for") {
		cfg.RunFor = config.Duration{Duration: o.runFor}
	}
	if f.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if f.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if f.Changed("border") {
		cfg.Border = o.border
	}
	if f.Changed("metrics-addr") {
		cfg.MetricsAddr = o.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Annotate(err, "flags")
	}
	return cfg, nil
}

func run(parent context.Context, cfg *config.Config) (err error) {
	level, _ := cfg.Level()
	logger, logCloser, err := logutil.New(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, logCloser.Close()) }()

	reg := status.NewRegistry()
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			err = multierr.Append(err, errors.Trace(srv.Shutdown(ctx)))
		}()
	}

	console, err := terminal.NewConsole(logger.Named("console"))
	if err != nil {
		return err
	}
	tty, ttyErr := terminal.SaveTTY()
	if ttyErr != nil {
		logger.Warn("tty state not saved", zap.Error(ttyErr))
	}
	core.SetCrashTerminal(console, tty)
	core.SetCrashLogger(logger)
	console.OnPumpPanic = core.HandleCrash

	rt, err := engine.NewRuntime(cfg, console, engine.Deps{Logger: logger, Status: reg})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info("compositor starting",
		zap.Int("ticks_per_second", cfg.TicksPerSecond),
		zap.Duration("run_for", cfg.RunFor.Duration),
		zap.String("border", cfg.Border))
	// A signal cancels ctx, which Run turns into a Stop broadcast
	runErr := rt.Run(ctx)
	// Fini is idempotent; it matters when Stop could not be delivered
	console.Fini()
	logger.Info("compositor stopped", zap.Any("counters", reg.Snapshot()))
	return runErr
}

// serveMetrics exposes the status registry on /metrics
func serveMetrics(addr string, reg *status.Registry, logger *zap.Logger) *http.Server {
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(status.NewCollector(reg))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	core.Go(func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", zap.Error(err))
		}
	})
	logger.Info("serving metrics", zap.String("addr", addr))
	return srv
}
