package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/riskflow/internal/server"
	"github.com/matzehuels/riskflow/pkg/observability"
	"github.com/matzehuels/riskflow/pkg/observability/prom"
	"github.com/matzehuels/riskflow/pkg/pipeline"
)

const (
	cleanupInterval = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags       diagramFlags
		addr        string
		corsOrigins []string
		sessionTTL  time.Duration
		noMetrics   bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve the diagram and interactive sessions over HTTP",
		Long: `Serve the diagram and interactive sessions over HTTP.

The layout is computed once at startup. Clients fetch the scene or SVG for
any hover and selection through query parameters, or open a session and
post viewer events to it (enter_node, leave_node, click, select,
enter_link, leave_link, reset).

Sessions live in memory unless server.sessions is "redis" in the config
file. Prometheus metrics are exposed at /metrics.`,
		Example: `  riskflow serve --sample
  riskflow serve animals.yaml --addr :9000 --cors-origin https://example.org`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(args)
			if err != nil {
				return err
			}
			cfg := c.settings()
			opts := flags.options(cmd, cfg)
			opts.Path = input
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			srvCfg := server.Config{
				Addr:        cfg.Server.Addr,
				CORSOrigins: cfg.Server.CORSOrigins,
				SessionTTL:  cfg.Server.SessionTTL,
			}
			if cmd.Flags().Changed("addr") {
				srvCfg.Addr = addr
			}
			if cmd.Flags().Changed("cors-origin") {
				srvCfg.CORSOrigins = corsOrigins
			}
			if cmd.Flags().Changed("session-ttl") {
				srvCfg.SessionTTL = sessionTTL
			}
			if cfg.Server.Metrics && !noMetrics {
				m := prom.New()
				m.Register()
				defer observability.Reset()
				srvCfg.Metrics = m.Handler()
			}
			return c.runServe(cmd.Context(), srvCfg, opts)
		},
	}

	flags.addDatasetFlags(cmd.Flags())
	flags.addLayoutFlags(cmd.Flags())
	flags.addStyleFlags(cmd.Flags())
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: localhost:8080)")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", 0, "idle session lifetime")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, srvCfg server.Config, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	for _, w := range ds.Warnings() {
		c.Logger.Warn("dataset", "warning", w.Message)
	}

	// A Redis artifact cache lends its connection to the session store.
	store, err := c.settings().OpenSessions(ctx, runner.Cache)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	srv, err := server.New(srvCfg, ds, opts, store, c.Logger)
	if err != nil {
		return err
	}

	printServeSummary(srvCfg, opts, c.settings().Server.Sessions)
	go srv.RunCleanup(ctx, cleanupInterval)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	}
}

func printServeSummary(srvCfg server.Config, opts pipeline.Options, sessions string) {
	source := opts.Path
	if source == "" {
		source = "sample"
	}
	metrics := "off"
	if srvCfg.Metrics != nil {
		metrics = "/metrics"
	}
	host := srvCfg.Addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	printSuccess("Serving %s", source)
	printKeyValue("Diagram", StyleLink.Render("http://"+host+"/diagram.svg?interactive=1"))
	printKeyValue("Sessions", sessions)
	printKeyValue("Metrics", metrics)
	printNewline()
}
