package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"country-data/internal/config"
	"country-data/internal/httpclient"
	"country-data/internal/logger"
	"country-data/internal/metrics"
	"country-data/internal/server"
	"country-data/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: web failed: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, loads the country list once and serves the page until
// ctx is canceled.
func run(ctx context.Context, args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "web",
		Short:         "Serve a searchable, filterable page of countries from the gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&configFile, "config", "", "config file (default: ./config.yaml or ./configs/config.yaml)")
	fs.String("web-addr", ":3000", "listen address")
	fs.String("gateway-url", "http://localhost:3001", "gateway base URL")
	fs.Duration("web-timeout", 10*time.Second, "timeout for the gateway request")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "json", "log format (json or console)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	m := metrics.New("web")
	getter := httpclient.New(&http.Client{Timeout: cfg.Web.Timeout})
	gateway := web.NewGatewayClient(getter, cfg.Web.GatewayURL, m)
	store := web.NewStore(gateway, log)

	log.Info("web configured",
		zap.String("addr", cfg.Web.Addr),
		zap.String("gateway", cfg.Web.GatewayURL),
	)
	return server.Run(ctx, server.New(cfg.Web.Addr, web.NewServer(store, log, m)), log, store.Load)
}
