package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridRejectsSmallSizes(t *testing.T) {
	t.Parallel()

	for _, size := range []int{-1, 0, 1, 2} {
		_, err := NewGrid(size)
		assert.Error(t, err, "size %d", size)
	}

	g, err := NewGrid(3)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())
}

func TestGridIndexIsRowMajor(t *testing.T) {
	t.Parallel()

	g, err := NewGrid(5)
	require.NoError(t, err)

	assert.Equal(t, 0, g.Index(0, 0))
	assert.Equal(t, 4, g.Index(0, 4))
	assert.Equal(t, 5, g.Index(1, 0))
	assert.Equal(t, 24, g.Index(4, 4))

	g.Set(2, 3, 7.5)
	assert.Equal(t, 7.5, g.At(2, 3))
	assert.Equal(t, 7.5, g.Values()[g.Index(2, 3)])
}

func TestApplyBoundary(t *testing.T) {
	t.Parallel()

	g, err := NewGrid(4)
	require.NoError(t, err)
	g.ApplyBoundary(Boundary{Top: 100, Bottom: 1, Left: 2, Right: 3})

	// Interior rows keep the edges, corners belong to left/right.
	assert.Equal(t, 100.0, g.At(0, 1))
	assert.Equal(t, 100.0, g.At(0, 2))
	assert.Equal(t, 1.0, g.At(3, 1))
	assert.Equal(t, 2.0, g.At(1, 0))
	assert.Equal(t, 3.0, g.At(2, 3))
	assert.Equal(t, 2.0, g.At(0, 0))
	assert.Equal(t, 3.0, g.At(3, 3))

	// Interior untouched.
	assert.Equal(t, 0.0, g.At(1, 1))
	assert.Equal(t, 0.0, g.At(2, 2))
}

func TestFillInteriorLeavesBoundary(t *testing.T) {
	t.Parallel()

	g, err := NewGrid(5)
	require.NoError(t, err)
	g.ApplyBoundary(Boundary{Top: 9, Bottom: 9, Left: 9, Right: 9})
	g.FillInterior(4)

	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if row == 0 || row == 4 || col == 0 || col == 4 {
				assert.Equal(t, 9.0, g.At(row, col), "boundary (%d,%d)", row, col)
			} else {
				assert.Equal(t, 4.0, g.At(row, col), "interior (%d,%d)", row, col)
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	g, err := NewGrid(3)
	require.NoError(t, err)
	g.Set(1, 1, 5)

	c := g.Clone()
	require.Equal(t, 5.0, c.At(1, 1))

	c.Set(1, 1, 6)
	assert.Equal(t, 5.0, g.At(1, 1))
	assert.Equal(t, 6.0, c.At(1, 1))
}
