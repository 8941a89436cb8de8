// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muthuishere/dual-crypt/pkg/crypto/symmetric"
)

var (
	symSecretB64 string
	symSaltB64   string
	symFast      bool
	symIVB64     string
)

// symmetricCmd groups the AES-256-GCM operations
var symmetricCmd = &cobra.Command{
	Use:   "symmetric",
	Short: "AES-256-GCM encryption operations",
	Long: `Symmetric AES-256-GCM operations.

The default mode derives the AES key from secret+salt via HKDF-SHA256
and packs IV and ciphertext into a single base64 value. The --fast mode
uses the secret directly as the key and keeps IV separate, matching the
split-field browser code path.`,
}

var symmetricGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random secret and salt",
	Run: func(cmd *cobra.Command, args []string) {
		codec := symmetric.NewCodec(nil)
		bundle, err := codec.GenerateBundle()
		if err != nil {
			handleError(err)
		}
		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintFields([][2]string{
			{"secretB64", bundle.SecretB64},
			{"saltB64", bundle.SaltB64},
		}); err != nil {
			handleError(err)
		}
	},
}

var symmetricEncryptCmd = &cobra.Command{
	Use:   "encrypt PLAINTEXT",
	Short: "Encrypt plaintext with AES-256-GCM",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(outputFormat, os.Stdout)
		if symFast {
			codec := symmetric.NewFastCodec(nil)
			pack, err := codec.Encrypt(args[0], symSecretB64, symSaltB64)
			if err != nil {
				handleError(err)
			}
			if err := printer.PrintFields([][2]string{
				{"ivB64", pack.IVB64},
				{"cipherB64", pack.CipherB64},
			}); err != nil {
				handleError(err)
			}
			return
		}

		codec := symmetric.NewCodec(nil)
		dataB64, err := codec.Encrypt(args[0], symSecretB64, symSaltB64)
		if err != nil {
			handleError(err)
		}
		if err := printer.PrintValue("dataB64", dataB64); err != nil {
			handleError(err)
		}
	},
}

var symmetricDecryptCmd = &cobra.Command{
	Use:   "decrypt DATA_B64",
	Short: "Decrypt an AES-256-GCM ciphertext",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(outputFormat, os.Stdout)
		var (
			text string
			err  error
		)
		if symFast {
			if symIVB64 == "" {
				handleError(fmt.Errorf("--iv is required with --fast"))
			}
			codec := symmetric.NewFastCodec(nil)
			text, err = codec.Decrypt(&symmetric.CipherPack{
				IVB64:     symIVB64,
				CipherB64: args[0],
			}, symSecretB64, symSaltB64)
		} else {
			codec := symmetric.NewCodec(nil)
			text, err = codec.Decrypt(args[0], symSecretB64, symSaltB64)
		}
		if err != nil {
			handleError(err)
		}
		if err := printer.PrintValue("text", text); err != nil {
			handleError(err)
		}
	},
}

func init() {
	for _, cmd := range []*cobra.Command{symmetricEncryptCmd, symmetricDecryptCmd} {
		cmd.Flags().StringVar(&symSecretB64, "secret", "", "base64 32-byte secret (required)")
		cmd.Flags().StringVar(&symSaltB64, "salt", "", "base64 16-byte salt (required)")
		cmd.Flags().BoolVar(&symFast, "fast", false, "raw-key mode with split IV and ciphertext")
		_ = cmd.MarkFlagRequired("secret")
		_ = cmd.MarkFlagRequired("salt")
	}
	symmetricDecryptCmd.Flags().StringVar(&symIVB64, "iv", "", "base64 12-byte IV (required with --fast)")

	symmetricCmd.AddCommand(symmetricGenerateCmd)
	symmetricCmd.AddCommand(symmetricEncryptCmd)
	symmetricCmd.AddCommand(symmetricDecryptCmd)
}
