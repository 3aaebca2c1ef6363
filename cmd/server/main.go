package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rl1809/ops-console/internal/adapter/gateway"
	"github.com/rl1809/ops-console/internal/adapter/handler"
	"github.com/rl1809/ops-console/internal/adapter/metrics"
	"github.com/rl1809/ops-console/internal/config"
	"github.com/rl1809/ops-console/internal/core/panel"
	"github.com/rl1809/ops-console/internal/core/shell"
)

const startupProbeTimeout = 3 * time.Second

func main() {
	envFile := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Initialize gateway client
	client := gateway.New(gateway.Config{
		BaseURL: cfg.GatewayURL,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
		Metrics: m,
	})

	probeCtx, cancelProbe := context.WithTimeout(context.Background(), startupProbeTimeout)
	if err := client.Health(probeCtx); err != nil {
		log.WithError(err).WithField("gateway", cfg.GatewayURL).Warn("gateway not reachable yet")
	} else {
		log.WithField("gateway", cfg.GatewayURL).Info("connected to gateway")
	}
	cancelProbe()

	// Initialize panels
	sh := shell.New(
		panel.NewOrdersController(client, log),
		panel.NewInventoryController(client, log),
		panel.NewPaymentsController(client, log),
		log,
	)

	mountCtx, cancelMount := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := sh.Mount(mountCtx); err != nil {
		log.WithError(err).Warn("initial order list failed")
	}
	cancelMount()

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(sh, client, m, log)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpHandler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown")
	}
	log.Info("HTTP server stopped")
}
