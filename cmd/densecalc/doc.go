// Package main is the densecalc command: it runs a YAML job of matrix
// operations and prints the results.
//
// Configuration:
//   - Environment variables (see internal/config): DENSECALC_TOLERANCE,
//     DENSECALC_MAX_ITERATIONS, DENSECALC_CONDITION_THRESHOLD,
//     DENSECALC_STRASSEN_THRESHOLD, DENSECALC_STRICT, DENSECALC_PRECISION,
//     LOG_LEVEL, LOG_DEV.
//   - CLI flags override the environment.
//
// Usage:
//
//	# Text output
//	densecalc -job solve.yaml
//
//	# YAML output, debug logs on stderr
//	LOG_LEVEL=debug densecalc -job solve.yaml -format yaml
//
//	# Reproducible digits and a deadline
//	densecalc -job big.yaml -precision 10 -timeout 30s
//
// Exit status is 0 on success, 1 when the job fails and 2 on a usage or
// configuration error.
package main
