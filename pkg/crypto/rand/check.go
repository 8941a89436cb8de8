// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

package rand

import (
	"context"
	"time"

	"github.com/muthuishere/dual-crypt/pkg/health"
)

// CheckName is the health check name for the CSPRNG readiness check.
const CheckName = "csprng"

// ReadCheck returns a readiness check that draws one byte from the
// resolver. Every operation in the service depends on the RNG, so a
// resolver that cannot produce bytes makes the service unready.
func ReadCheck(r Resolver) health.CheckFunc {
	return func(ctx context.Context) health.CheckResult {
		start := time.Now()
		result := health.CheckResult{
			Name:   CheckName,
			Status: health.StatusHealthy,
		}
		if !r.Available() {
			result.Status = health.StatusUnhealthy
			result.Message = "rng source unavailable"
		} else if _, err := r.Rand(1); err != nil {
			result.Status = health.StatusUnhealthy
			result.Error = err.Error()
		}
		result.Latency = time.Since(start)
		return result
	}
}
