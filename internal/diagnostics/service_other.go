//go:build !linux

package diagnostics

import "github.com/opsbox/opsbox/internal/check"

// serviceSteps has no service-manager checks to offer off Linux; callers
// simply compose fewer steps.
func serviceSteps(...string) []check.Step {
	return nil
}
