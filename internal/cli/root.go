// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package cli implements the dualcrypt command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile   string
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dualcrypt",
	Short: "dual-crypt CLI - symmetric and asymmetric encryption tool",
	Long: `dual-crypt provides AES-256-GCM symmetric encryption, RSA-2048-OAEP
asymmetric encryption, and RS256 token signing, interoperable with the
dual-crypt browser client.

Key material and ciphertexts travel as base64 strings, so command output
can be pasted directly into the REST API or the web client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is ./dualcrypt.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"output format (text, json)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(symmetricCmd)
	rootCmd.AddCommand(asymmetricCmd)
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(outputFormat, os.Stderr)
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
	os.Exit(1)
}
