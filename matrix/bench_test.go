// Package matrix_test provides benchmarks for the core kernels, using
// deterministic random complex fill.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvmat/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkC complex128
	sinkF float64
	sinkI int
)

func BenchmarkAdd(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := RandDense(b, n, n, 1337, true)
			y := RandDense(b, n, n, 4242, true)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Add(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

// BenchmarkMul compares the naive kernel against Strassen at each size.
func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		x := RandDense(b, n, n, 11, true)
		y := RandDense(b, n, n, 22, true)
		b.Run(fmt.Sprintf("naive/n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m, err := matrix.MulNaive(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
		b.Run(fmt.Sprintf("strassen/n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m, err := matrix.MulStrassen(x, y, matrix.WithStrassenLeaf(32))
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkLU(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandDense(b, n, n, 7, true)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := matrix.LU(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkC = f.Determinant()
			}
		})
	}
}

func BenchmarkQR(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandDense(b, n, n, 8, true)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := matrix.QR(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = f.R()
			}
		})
	}
}

func BenchmarkCholesky(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandKind(b, n, matrix.RandomPositiveDefinite, 9, true)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := matrix.Cholesky(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = f.L()
			}
		})
	}
}

// BenchmarkEigen stays small: shifted QR is the most expensive kernel.
func BenchmarkEigen(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{16, 32, 64} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandDense(b, n, n, 10, true)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e, err := matrix.Eigen(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkI = e.Iterations()
			}
		})
	}
}

func BenchmarkSVD(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{16, 32, 64} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandDense(b, n, n, 12, true)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s, err := matrix.SVD(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = s.Cond()
			}
		})
	}
}

func BenchmarkInverse(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{16, 64} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := RandKind(b, n, matrix.RandomPositiveDefinite, 13, true)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Inverse(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}
