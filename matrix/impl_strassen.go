// SPDX-License-Identifier: MIT

// Package matrix - Strassen multiplication over a padded arena.
//
// Purpose:
//   - Multiply with seven half-size products per level instead of eight.
//   - Keep every temporary inside ONE slab: the padded operands, the padded
//     result and the per-level scratch are all carved from it, and scratch is
//     returned by resetting a bump pointer when a level finishes.
//
// Layout:
//   - slab = [ A_pad | B_pad | C_pad | scratch ], each pad p×p, scratch p².
//   - A level of size n takes three (n/2)² blocks (two operand sums and one
//     product) and the next level reuses the space after them, so total
//     scratch is 3/4·p²·(1 + 1/4 + ...) = p².
//   - Quadrants are index-remapped views (offset + stride), never copies.
//
// AI-Hints:
//   - The leaf size bounds recursion depth at log2(p/leaf); the default leaf of
//     1 recurses to scalars and is slow for p ≥ 256. WithStrassenLeaf(32) is a
//     practical production value.

package matrix

// strassenBlock is a square window into an arena slab.
type strassenBlock struct {
	data   []complex128 // backing slab
	off    int          // index of element (0,0)
	stride int          // distance between consecutive rows
	n      int          // block side
}

// quad returns quadrant (qi, qj) ∈ {0,1}² as a view of half the side.
func (b strassenBlock) quad(qi, qj int) strassenBlock {
	h := b.n / 2

	return strassenBlock{data: b.data, off: b.off + qi*h*b.stride + qj*h, stride: b.stride, n: h}
}

// row returns the slice holding row i of the block.
func (b strassenBlock) row(i int) []complex128 {
	start := b.off + i*b.stride

	return b.data[start : start+b.n]
}

// strassenArena is a bump allocator over one slab.
type strassenArena struct {
	slab []complex128
	top  int
}

// alloc carves an n×n zeroed block.
func (a *strassenArena) alloc(n int) strassenBlock {
	blk := strassenBlock{data: a.slab, off: a.top, stride: n, n: n}
	clear(a.slab[a.top : a.top+n*n])
	a.top += n * n

	return blk
}

// mark returns the current bump position; release rewinds to it.
func (a *strassenArena) mark() int        { return a.top }
func (a *strassenArena) release(mark int) { a.top = mark }

// nextPow2 returns the smallest power of two >= n (1 for n <= 1).
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// mulStrassen pads a (r×n) and b (n×c) into p×p blocks, runs the recursion
// and crops the r×c result.
// Complexity:
//   - Time O(p^2.807), Space 4p² in a single allocation.
func mulStrassen(a, b *Dense, leaf int) *Dense {
	res := newDense(a.r, b.c)
	if a.r == 0 || b.c == 0 {
		return res
	}
	p := nextPow2(max(a.r, a.c, b.c))
	arena := &strassenArena{slab: make([]complex128, 4*p*p)}
	pa, pb, pc := arena.alloc(p), arena.alloc(p), arena.alloc(p)

	var i int
	for i = 0; i < a.r; i++ {
		copy(pa.row(i), a.data[i*a.c:(i+1)*a.c])
	}
	for i = 0; i < b.r; i++ {
		copy(pb.row(i), b.data[i*b.c:(i+1)*b.c])
	}

	strassenRec(pc, pa, pb, arena, max(leaf, 1))

	for i = 0; i < res.r; i++ {
		copy(res.data[i*res.c:(i+1)*res.c], pc.row(i)[:res.c])
	}

	return res
}

// strassenRec overwrites c with a·b.
// Combination (accumulated straight into C's quadrants):
//
//	M1 = (A11+A22)(B11+B22)  → C11 +=, C22 +=
//	M2 = (A21+A22)B11        → C21 +=, C22 −=
//	M3 = A11(B12−B22)        → C12 +=, C22 +=
//	M4 = A22(B21−B11)        → C11 +=, C21 +=
//	M5 = (A11+A12)B22        → C11 −=, C12 +=
//	M6 = (A21−A11)(B11+B12)  → C22 +=
//	M7 = (A12−A22)(B21+B22)  → C11 +=
func strassenRec(c, a, b strassenBlock, arena *strassenArena, leaf int) {
	if c.n <= leaf {
		blockMulNaive(c, a, b)

		return
	}

	a11, a12, a21, a22 := a.quad(0, 0), a.quad(0, 1), a.quad(1, 0), a.quad(1, 1)
	b11, b12, b21, b22 := b.quad(0, 0), b.quad(0, 1), b.quad(1, 0), b.quad(1, 1)
	c11, c12, c21, c22 := c.quad(0, 0), c.quad(0, 1), c.quad(1, 0), c.quad(1, 1)

	h := c.n / 2
	mark := arena.mark()
	defer arena.release(mark)
	t1, t2, m := arena.alloc(h), arena.alloc(h), arena.alloc(h)
	blockFill(c, 0)

	blockCombine(t1, a11, a22, 1)
	blockCombine(t2, b11, b22, 1)
	strassenRec(m, t1, t2, arena, leaf)
	blockAccumulate(c11, m, 1)
	blockAccumulate(c22, m, 1)

	blockCombine(t1, a21, a22, 1)
	strassenRec(m, t1, b11, arena, leaf)
	blockAccumulate(c21, m, 1)
	blockAccumulate(c22, m, -1)

	blockCombine(t2, b12, b22, -1)
	strassenRec(m, a11, t2, arena, leaf)
	blockAccumulate(c12, m, 1)
	blockAccumulate(c22, m, 1)

	blockCombine(t2, b21, b11, -1)
	strassenRec(m, a22, t2, arena, leaf)
	blockAccumulate(c11, m, 1)
	blockAccumulate(c21, m, 1)

	blockCombine(t1, a11, a12, 1)
	strassenRec(m, t1, b22, arena, leaf)
	blockAccumulate(c11, m, -1)
	blockAccumulate(c12, m, 1)

	blockCombine(t1, a21, a11, -1)
	blockCombine(t2, b11, b12, 1)
	strassenRec(m, t1, t2, arena, leaf)
	blockAccumulate(c22, m, 1)

	blockCombine(t1, a12, a22, -1)
	blockCombine(t2, b21, b22, 1)
	strassenRec(m, t1, t2, arena, leaf)
	blockAccumulate(c11, m, 1)
}

// blockMulNaive overwrites c with a·b using the i-k-j loop.
func blockMulNaive(c, a, b strassenBlock) {
	if c.n == 1 {
		c.data[c.off] = a.data[a.off] * b.data[b.off]

		return
	}
	blockFill(c, 0)
	var i, k int
	for i = 0; i < c.n; i++ {
		cr, ar := c.row(i), a.row(i)
		for k = 0; k < c.n; k++ {
			av := ar[k]
			if av == 0 {
				continue
			}
			for j, bv := range b.row(k) {
				cr[j] += av * bv
			}
		}
	}
}

// blockCombine writes dst = x + sign·y.
func blockCombine(dst, x, y strassenBlock, sign complex128) {
	for i := 0; i < dst.n; i++ {
		dr, xr, yr := dst.row(i), x.row(i), y.row(i)
		for j := range dr {
			dr[j] = xr[j] + sign*yr[j]
		}
	}
}

// blockAccumulate performs dst += sign·src.
func blockAccumulate(dst, src strassenBlock, sign complex128) {
	for i := 0; i < dst.n; i++ {
		dr, sr := dst.row(i), src.row(i)
		for j := range dr {
			dr[j] += sign * sr[j]
		}
	}
}

// blockFill sets every element of dst to v.
func blockFill(dst strassenBlock, v complex128) {
	for i := 0; i < dst.n; i++ {
		dr := dst.row(i)
		for j := range dr {
			dr[j] = v
		}
	}
}
