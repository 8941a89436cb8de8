// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muthuishere/dual-crypt/pkg/crypto/asymmetric"
	"github.com/muthuishere/dual-crypt/pkg/crypto/token"
)

var (
	asymPublicKeyB64  string
	asymPrivateKeyB64 string
	tokenLifetimeSecs int
)

// asymmetricCmd groups the RSA-2048 operations
var asymmetricCmd = &cobra.Command{
	Use:   "asymmetric",
	Short: "RSA-2048 encryption and signing operations",
	Long: `Asymmetric RSA-2048 operations: OAEP(SHA-256) encryption and
RS256 token signing. Keys are base64-encoded DER (SPKI public,
PKCS#8 private), interchangeable with Web Crypto exports.`,
}

var asymmetricGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an RSA-2048 key pair",
	Run: func(cmd *cobra.Command, args []string) {
		codec := asymmetric.NewCodec(nil)
		bundle, err := codec.GenerateBundle()
		if err != nil {
			handleError(err)
		}
		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintFields([][2]string{
			{"publicKeyB64", bundle.PublicKeyB64},
			{"privateKeyB64", bundle.PrivateKeyB64},
			{"saltB64", bundle.SaltB64},
		}); err != nil {
			handleError(err)
		}
	},
}

var asymmetricEncryptCmd = &cobra.Command{
	Use:   "encrypt PLAINTEXT",
	Short: "Encrypt plaintext with RSA-OAEP(SHA-256)",
	Long: `Encrypt plaintext with RSA-OAEP using SHA-256. The UTF-8 encoded
plaintext must not exceed 190 bytes for a 2048-bit key.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		codec := asymmetric.NewCodec(nil)
		cipherB64, err := codec.Encrypt(args[0], asymPublicKeyB64)
		if err != nil {
			handleError(err)
		}
		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintValue("cipherB64", cipherB64); err != nil {
			handleError(err)
		}
	},
}

var asymmetricDecryptCmd = &cobra.Command{
	Use:   "decrypt CIPHER_B64",
	Short: "Decrypt an RSA-OAEP ciphertext",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		codec := asymmetric.NewCodec(nil)
		text, err := codec.Decrypt(args[0], asymPrivateKeyB64)
		if err != nil {
			handleError(err)
		}
		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintValue("text", text); err != nil {
			handleError(err)
		}
	},
}

var asymmetricSignCmd = &cobra.Command{
	Use:   "sign DATA",
	Short: "Sign data as an RS256 token",
	Long: `Sign data as an RS256 token. A JSON object becomes the claim set;
any other input is wrapped under a "data" claim. iat and exp are
injected unless the input already carries them.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		codec := token.NewCodec(&token.Config{
			Lifetime: time.Duration(tokenLifetimeSecs) * time.Second,
		})
		signed, err := codec.Sign(args[0], asymPrivateKeyB64)
		if err != nil {
			handleError(err)
		}
		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintValue("token", signed); err != nil {
			handleError(err)
		}
	},
}

var asymmetricVerifyCmd = &cobra.Command{
	Use:   "verify TOKEN",
	Short: "Verify an RS256 token and print the signed data",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		codec := token.NewCodec(nil)
		data, err := codec.Verify(args[0], asymPublicKeyB64)
		if err != nil {
			handleError(err)
		}
		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintValue("data", data); err != nil {
			handleError(err)
		}
	},
}

func init() {
	for _, cmd := range []*cobra.Command{asymmetricEncryptCmd, asymmetricVerifyCmd} {
		cmd.Flags().StringVar(&asymPublicKeyB64, "public-key", "", "base64 SPKI public key (required)")
		_ = cmd.MarkFlagRequired("public-key")
	}
	for _, cmd := range []*cobra.Command{asymmetricDecryptCmd, asymmetricSignCmd} {
		cmd.Flags().StringVar(&asymPrivateKeyB64, "private-key", "", "base64 PKCS#8 private key (required)")
		_ = cmd.MarkFlagRequired("private-key")
	}
	asymmetricSignCmd.Flags().IntVar(&tokenLifetimeSecs, "lifetime", 3600,
		"token lifetime in seconds when exp is not supplied")

	asymmetricCmd.AddCommand(asymmetricGenerateCmd)
	asymmetricCmd.AddCommand(asymmetricEncryptCmd)
	asymmetricCmd.AddCommand(asymmetricDecryptCmd)
	asymmetricCmd.AddCommand(asymmetricSignCmd)
	asymmetricCmd.AddCommand(asymmetricVerifyCmd)
}
