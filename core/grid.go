// Package core implements a parallel Gauss-Seidel relaxation kernel over a
// fixed-size square grid. Work is split into contiguous column ranges, one
// per worker, and a wavefront of per-row progress counters keeps the parallel
// sweep byte-for-byte equivalent to a sequential top-to-bottom, left-to-right
// sweep.
package core

import "fmt"

// Grid is a square field of float64 values stored as a flat row-major
// buffer. Rows and columns 0 and Size-1 are the fixed boundary; only the
// interior cells are updated by the solver.
type Grid struct {
	size int
	data []float64
}

// Boundary holds the constant values applied to the four grid edges.
type Boundary struct {
	Top, Bottom, Left, Right float64
}

// NewGrid allocates a zeroed size x size grid. The smallest usable grid is
// 3x3 (one interior cell).
func NewGrid(size int) (*Grid, error) {
	if size < 3 {
		return nil, fmt.Errorf("grid size must be at least 3, got %d", size)
	}
	return &Grid{
		size: size,
		data: make([]float64, size*size),
	}, nil
}

// Size returns the grid dimension.
func (g *Grid) Size() int { return g.size }

// Index maps (row, col) to the flat buffer offset.
func (g *Grid) Index(row, col int) int { return row*g.size + col }

// At reads the value at (row, col).
func (g *Grid) At(row, col int) float64 { return g.data[g.Index(row, col)] }

// Set writes the value at (row, col).
func (g *Grid) Set(row, col int, v float64) { g.data[g.Index(row, col)] = v }

// FillInterior overwrites every interior cell with v, leaving the boundary
// untouched.
func (g *Grid) FillInterior(v float64) {
	for row := 1; row < g.size-1; row++ {
		for col := 1; col < g.size-1; col++ {
			g.data[g.Index(row, col)] = v
		}
	}
}

// ApplyBoundary writes the edge values. The left and right columns are
// written after the top and bottom rows, so they own the four corners.
func (g *Grid) ApplyBoundary(b Boundary) {
	last := g.size - 1
	for col := 0; col <= last; col++ {
		g.data[g.Index(0, col)] = b.Top
		g.data[g.Index(last, col)] = b.Bottom
	}
	for row := 0; row <= last; row++ {
		g.data[g.Index(row, 0)] = b.Left
		g.data[g.Index(row, last)] = b.Right
	}
}

// Clone returns an independent deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.data))
	copy(data, g.data)
	return &Grid{size: g.size, data: data}
}

// Values returns a copy of the flat row-major buffer.
func (g *Grid) Values() []float64 {
	out := make([]float64, len(g.data))
	copy(out, g.data)
	return out
}
