//go:build !linux

package diagnostics

import "github.com/opsbox/opsbox/internal/check"

func resolverConfigSteps() []check.Step {
	return nil
}
