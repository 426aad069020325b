//go:build !linux

package diagnostics

import (
	"time"

	"github.com/opsbox/opsbox/internal/check"
)

func captureSteps(int, time.Duration) []check.Step {
	return nil
}
