// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_Live(t *testing.T) {
	c := NewChecker()
	result := c.Live(context.Background())
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, "liveness", result.Name)
}

func TestChecker_ReadyBeforeStartup(t *testing.T) {
	c := NewChecker()

	results := c.Ready(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, StatusUnhealthy, results[0].Status)
	assert.Equal(t, "startup", results[0].Name)
}

func TestChecker_ReadyNoChecks(t *testing.T) {
	c := NewChecker()
	c.MarkStarted()

	results := c.Ready(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, StatusHealthy, results[0].Status)
}

func TestChecker_ReadyWithChecks(t *testing.T) {
	c := NewChecker()
	c.MarkStarted()

	c.RegisterCheck("rng", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})
	c.RegisterCheck("broken", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusUnhealthy, Error: errors.New("down").Error()}
	})

	results := c.Ready(context.Background())
	require.Len(t, results, 2)

	byName := map[string]CheckResult{}
	for _, r := range results {
		byName[r.Name] = r
	}
	assert.Equal(t, StatusHealthy, byName["rng"].Status)
	assert.Equal(t, StatusUnhealthy, byName["broken"].Status)
	assert.Equal(t, "down", byName["broken"].Error)
}

func TestChecker_Startup(t *testing.T) {
	c := NewChecker()

	result := c.Startup(context.Background())
	assert.Equal(t, StatusUnhealthy, result.Status)

	c.MarkStarted()
	result = c.Startup(context.Background())
	assert.Equal(t, StatusHealthy, result.Status)
}

func TestChecker_RegisterNilCheck(t *testing.T) {
	c := NewChecker()
	c.MarkStarted()
	c.RegisterCheck("nil", nil)

	results := c.Ready(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, "default", results[0].Name)
}
