// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package health implements liveness, readiness, and startup checks
// following Kubernetes probe semantics.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Status represents the health status of a component.
type Status string

const (
	// StatusHealthy indicates the component is operating normally.
	StatusHealthy Status = "healthy"
	// StatusUnhealthy indicates the component is not functioning.
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of a single health check.
type CheckResult struct {
	// Name is the identifier for this health check.
	Name string `json:"name"`
	// Status is the health status of the component.
	Status Status `json:"status"`
	// Message provides additional context about the status.
	Message string `json:"message,omitempty"`
	// Latency is how long the check took to execute.
	Latency time.Duration `json:"latency"`
	// Error contains error details if the check failed.
	Error string `json:"error,omitempty"`
}

// AggregateStatus reduces a set of check results to a single status.
// Any failing check makes the aggregate unhealthy.
func AggregateStatus(results []CheckResult) Status {
	for _, r := range results {
		if r.Status == StatusUnhealthy {
			return StatusUnhealthy
		}
	}
	return StatusHealthy
}

// CheckFunc is a function that performs a health check.
// It should return quickly (ideally < 1 second).
type CheckFunc func(ctx context.Context) CheckResult

// Checker manages health checks with three probe types:
//   - Liveness: is the service alive? (should it be restarted?)
//   - Readiness: can the service accept requests?
//   - Startup: has initialization completed?
type Checker struct {
	mu        sync.RWMutex
	started   bool
	startTime time.Time
	checks    map[string]CheckFunc
}

// NewChecker creates a new health checker.
func NewChecker() *Checker {
	return &Checker{
		checks:    make(map[string]CheckFunc),
		startTime: time.Now(),
	}
}

// RegisterCheck adds a health check with the given name.
// A check registered under an existing name replaces it.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	if check == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// MarkStarted marks the service as fully started and ready.
// Call after all initialization is complete.
func (c *Checker) MarkStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
}

// Live performs a liveness check. The service is alive as long as the
// process can respond; this only fails in unrecoverable states.
func (c *Checker) Live(ctx context.Context) CheckResult {
	start := time.Now()
	return CheckResult{
		Name:    "liveness",
		Status:  StatusHealthy,
		Message: fmt.Sprintf("up %s", time.Since(c.startTimeSnapshot()).Round(time.Second)),
		Latency: time.Since(start),
	}
}

// Ready runs all registered checks and reports each result.
// The service is ready only if every check passes.
func (c *Checker) Ready(ctx context.Context) []CheckResult {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		checks[name] = fn
	}
	started := c.started
	c.mu.RUnlock()

	results := make([]CheckResult, 0, len(checks)+1)

	if !started {
		results = append(results, CheckResult{
			Name:    "startup",
			Status:  StatusUnhealthy,
			Message: "service has not completed startup",
		})
		return results
	}

	for name, fn := range checks {
		start := time.Now()
		result := fn(ctx)
		if result.Name == "" {
			result.Name = name
		}
		if result.Latency == 0 {
			result.Latency = time.Since(start)
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		results = append(results, CheckResult{
			Name:   "default",
			Status: StatusHealthy,
		})
	}
	return results
}

// Startup reports whether initialization has completed.
func (c *Checker) Startup(ctx context.Context) CheckResult {
	start := time.Now()
	c.mu.RLock()
	started := c.started
	c.mu.RUnlock()

	if !started {
		return CheckResult{
			Name:    "startup",
			Status:  StatusUnhealthy,
			Message: "service is starting",
			Latency: time.Since(start),
		}
	}
	return CheckResult{
		Name:    "startup",
		Status:  StatusHealthy,
		Message: "startup complete",
		Latency: time.Since(start),
	}
}

func (c *Checker) startTimeSnapshot() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startTime
}
