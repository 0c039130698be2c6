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

	"country-data/internal/api"
	"country-data/internal/client"
	"country-data/internal/config"
	"country-data/internal/httpclient"
	"country-data/internal/logger"
	"country-data/internal/metrics"
	"country-data/internal/server"
	"country-data/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: gateway failed: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and serves the gateway until ctx is canceled.
func run(ctx context.Context, args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "gateway",
		Short:         "Serve country data from REST Countries as a reduced JSON API",
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
	fs.String("gateway-addr", ":3001", "listen address")
	fs.String("upstream-url", client.DefaultBaseURL, "REST Countries base URL")
	fs.Duration("upstream-timeout", 10*time.Second, "timeout for each upstream request")
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

	m := metrics.New("gateway")
	getter := httpclient.New(&http.Client{Timeout: cfg.Upstream.Timeout})
	restCountries := client.NewRestCountriesClient(getter, cfg.Upstream.BaseURL, m)
	countryService := service.NewCountryService(restCountries, log)
	handler := api.NewCountryHandler(countryService, log)
	router := api.NewRouter(handler, log, m)

	log.Info("gateway configured",
		zap.String("addr", cfg.Gateway.Addr),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.Duration("upstream_timeout", cfg.Upstream.Timeout),
	)
	return server.Run(ctx, server.New(cfg.Gateway.Addr, router), log)
}
