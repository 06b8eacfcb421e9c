// Package matrix is a dense complex matrix engine.
//
// The package provides:
//
//   - Dense, a row-major r×c store of complex128 with bounds-checked At/Set,
//     views, slicing, induced submatrices, reshaping and row/column operations.
//   - Arithmetic with broadcasting (Add, Sub, Hadamard), scalar operations,
//     Kronecker and outer products, and Mul, which dispatches between the
//     naive kernel and Strassen (zero-padded to a power of two) at a
//     configurable crossover.
//   - Factorizations returning result types with Reconstruct and
//     CheckMatrix: LU (partial, none or complete pivoting), Householder QR,
//     modified Gram–Schmidt QR, LQ, Cholesky, Hessenberg, Schur (shifted QR),
//     Eigen (general and Hermitian), EigenSym (Jacobi) and SVD (one-sided Jacobi).
//   - Solve with an explicit method or SolveAuto, Determinant, Minor/Cofactor/
//     Adjugate, Pow (integer and fractional), and Inverse, which walks a
//     configurable chain LU → SVD pseudo-inverse → Moore–Penrose and reports
//     every strategy that failed.
//   - Norms, rank, echelon forms, sums, statistics (gonum/stat on the real and
//     imaginary parts), structural predicates and a seeded random factory.
//
// Numeric policy:
//
//   - One tolerance (WithTolerance, DefaultTolerance = 1e-10) decides pivots,
//     deflation, rank and every approximate comparison.
//   - Iterative kernels stop after WithMaxIterations; non-convergence is
//     logged at Warn through SetLogger and is an error only under
//     WithStrictConvergence.
//   - Errors are package sentinels wrapped with the operation name; match
//     them with errors.Is.
//
// Kernels are synchronous and never share mutable state, so distinct
// matrices may be processed from different goroutines. A single *Dense is
// not safe for concurrent mutation.
package matrix
