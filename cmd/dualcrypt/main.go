// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package main

import (
	"os"

	"github.com/muthuishere/dual-crypt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
