// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/muthuishere/dual-crypt/internal/cli"
	"github.com/muthuishere/dual-crypt/internal/config"
)

var (
	// Version information (set during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("dual-crypt REST server\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Git Commit: %s\n", commit)
		fmt.Printf("  Built:      %s\n", date)
		os.Exit(0)
	}

	// Config file override via environment
	if envConfig := os.Getenv("DUALCRYPT_CONFIG"); envConfig != "" {
		*configPath = envConfig
	}

	slog.Info("Starting REST server",
		"config", *configPath,
		"version", version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Configuration loaded successfully",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"metrics", cfg.Metrics.Enabled)

	if err := cli.RunServer(cfg, version); err != nil {
		slog.Error("Server error", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("REST server stopped successfully")
}
