// Package lvmat is a dense numeric matrix engine over complex128.
//
// What is inside:
//
//   - scalar/  tolerance equality, simplification, safe division, parsing
//   - matrix/  Dense storage, arithmetic (naive and Strassen products),
//     LU / QR / LQ / Cholesky / Hessenberg / Schur / Eigen / SVD,
//     linear solves, the fallback inverse chain, norms, statistics,
//     predicates and a seeded random factory
//   - cmd/densecalc  runs YAML job files against the matrix package
//
// Real matrices are complex matrices whose imaginary parts are zero, so every
// kernel serves both. Kernels are synchronous and deterministic: the same
// input and options always give the same bits.
//
// Quick start:
//
//	a, _ := matrix.Parse("2 1; 1 2", ";", " ")
//	eig, _ := matrix.Eigen(a)
//	vals, _ := eig.RealValues(1e-9) // ascending: ≈ [1 3]
//
// Installation:
//
//	go get github.com/katalvlaran/lvmat/matrix
package lvmat
