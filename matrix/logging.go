// SPDX-License-Identifier: MIT

package matrix

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// pkgLogger holds the diagnostics sink. The zero state is a no-op logger.
var pkgLogger atomic.Pointer[zap.Logger]

func init() {
	pkgLogger.Store(zap.NewNop())
}

// SetLogger routes package diagnostics (inverse fallbacks at Debug,
// non-convergence at Warn) to l. A nil l restores the no-op logger.
// Safe for concurrent use.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	pkgLogger.Store(l.Named("matrix"))
}

// logger returns the current package logger.
func logger() *zap.Logger { return pkgLogger.Load() }

// reportNonConvergence logs a Warn entry for an iterative kernel that hit its
// bound and returns ErrNotConverged when strict mode is on.
func reportNonConvergence(op string, o Options, iterations int, residual float64) error {
	logger().Warn("iteration limit reached",
		zap.String("op", op),
		zap.Int("iterations", iterations),
		zap.Int("max_iterations", o.maxIter),
		zap.Float64("residual", residual),
	)
	if o.strict {
		return matrixErrorf(op, ErrNotConverged)
	}

	return nil
}
