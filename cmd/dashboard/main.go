package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/paperdesk/internal/api"
	"github.com/dgallion1/paperdesk/internal/config"
	"github.com/dgallion1/paperdesk/internal/logging"
	"github.com/dgallion1/paperdesk/internal/marketdata"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "dashboard",
	Short:         "Serve the stock indicator dashboard",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}

	// Initialize the market data client.
	yahoo := marketdata.NewYahooClient(marketdata.ClientConfig{
		BaseURL:       cfg.Market.BaseURL,
		Timeout:       cfg.Market.Timeout,
		RatePerSecond: cfg.Market.RatePerSecond,
		Burst:         cfg.Market.Burst,
		MaxRetries:    cfg.Market.MaxRetries,
		RetryBase:     cfg.Market.RetryBase,
		StatsWindow:   cfg.Market.StatsWindow,
	}, log.With("component", "yahoo"))
	defer yahoo.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize HTTP server.
	srv := api.NewServer(yahoo, yahoo.Stats, reg, log, cfg.Server)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown.
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting dashboard", "port", cfg.Server.Port, "auth", cfg.Server.APIKey != "")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
