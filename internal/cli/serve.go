// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muthuishere/dual-crypt/internal/config"
	"github.com/muthuishere/dual-crypt/internal/rest"
	"github.com/muthuishere/dual-crypt/pkg/adapters/logger"
	cryptorand "github.com/muthuishere/dual-crypt/pkg/crypto/rand"
	"github.com/muthuishere/dual-crypt/pkg/health"
)

var (
	serveHost string
	servePort int
)

// serveCmd starts the REST API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dual-crypt REST API server",
	Long: `Start the HTTP server exposing the symmetric, asymmetric, and
token endpoints under /api, plus health probes and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if serveHost != "" {
			cfg.Server.Host = serveHost
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		return RunServer(cfg, Version)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "interface to bind to (overrides config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
}

// RunServer starts the REST server and blocks until a shutdown signal
// or a server error.
func RunServer(cfg *config.Config, version string) error {
	log := logger.NewSlogAdapter(&logger.SlogConfig{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})

	srv, err := rest.NewServer(&rest.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        version,
		CORS:           &cfg.CORS,
		TokenLifetime:  cfg.TokenLifetime(),
		MetricsEnabled: cfg.Metrics.Enabled,
		Logger:         log,
		ReadTimeout:    cfg.Server.ReadTimeout(),
		WriteTimeout:   cfg.Server.WriteTimeout(),
		IdleTimeout:    cfg.Server.IdleTimeout(),
	})
	if err != nil {
		return err
	}

	checker := health.NewChecker()
	checker.RegisterCheck(cryptorand.CheckName, cryptorand.ReadCheck(cryptorand.Default()))
	srv.SetHealthChecker(checker)

	shutdownCtx := setupSignalHandler(log)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	// No async initialization beyond the listener itself
	checker.MarkStarted()

	select {
	case <-shutdownCtx.Done():
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error", logger.Error(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Stop(stopCtx)
}

// setupSignalHandler sets up signal handling for graceful shutdown
func setupSignalHandler(log logger.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalCh
		cancel()
	}()

	return ctx
}
