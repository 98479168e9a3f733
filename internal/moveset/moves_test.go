package moveset

import (
	"testing"

	"github.com/foldlab/hplattice/internal/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uShape(t *testing.T) *lattice.Chain {
	t.Helper()
	c, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{0, 0}},
		{Kind: lattice.H, Pos: lattice.Point{1, 0}},
		{Kind: lattice.H, Pos: lattice.Point{1, 1}},
		{Kind: lattice.H, Pos: lattice.Point{0, 1}},
	})
	require.NoError(t, err)
	return c
}

func TestKinkJumpOnLShape(t *testing.T) {
	// 0:(0,0) 1:(1,0) 2:(1,1) -- bead 1 has prev at (0,0)=(-1,0 rel) and
	// next at (1,1)=(0,1 rel): an L corner, fourth corner is (0,1).
	c, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{0, 0}},
		{Kind: lattice.P, Pos: lattice.Point{1, 0}},
		{Kind: lattice.H, Pos: lattice.Point{1, 1}},
	})
	require.NoError(t, err)

	ok := KinkJump(c, 1)
	require.True(t, ok)
	assert.True(t, c.Has(lattice.Point{0, 1}))
	assert.False(t, c.Has(lattice.Point{1, 0}))
	assert.NoError(t, c.CheckInvariants())
}

func TestKinkJumpFailsOnStraightChain(t *testing.T) {
	c, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{0, 0}},
		{Kind: lattice.P, Pos: lattice.Point{1, 0}},
		{Kind: lattice.H, Pos: lattice.Point{2, 0}},
	})
	require.NoError(t, err)

	ok := KinkJump(c, 1)
	assert.False(t, ok)
	assert.False(t, c.HasPendingUndo())
}

func TestKinkJumpFailsWhenDestinationOccupied(t *testing.T) {
	c := uShape(t)
	// index 1 is (1,0) with prev=0 at (0,0) and next=2 at (1,1): an L
	// corner whose fourth corner (0,1) is already occupied by index 3.
	ok := KinkJump(c, 1)
	assert.False(t, ok)
}

func TestEndpointRotation(t *testing.T) {
	// N=4 straight H-P-P-H scenario from spec.md end-to-end scenario 1.
	c, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{0, 0}},
		{Kind: lattice.P, Pos: lattice.Point{1, 0}},
		{Kind: lattice.P, Pos: lattice.Point{2, 0}},
		{Kind: lattice.H, Pos: lattice.Point{3, 0}},
	})
	require.NoError(t, err)

	ok := EndpointRotation(c, 0)
	require.True(t, ok)
	assert.True(t, c.Has(lattice.Point{1, 1}))
	assert.NoError(t, c.CheckInvariants())
}

func TestEndpointRotationTakesSecondCandidateWhenFirstOccupied(t *testing.T) {
	c := uShape(t)
	// index 0 at (0,0), neighbour index 1 at (1,0); candidates (1,1) and (1,-1).
	// (1,1) is occupied by index 2.
	ok := EndpointRotation(c, 0)
	// (1,-1) is free, so this should succeed by taking the second candidate.
	require.True(t, ok)
	assert.True(t, c.Has(lattice.Point{1, -1}))
}

func TestPivotRotatesRightPart(t *testing.T) {
	c, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{0, 0}},
		{Kind: lattice.P, Pos: lattice.Point{1, 0}},
		{Kind: lattice.P, Pos: lattice.Point{2, 0}},
		{Kind: lattice.H, Pos: lattice.Point{3, 0}},
	})
	require.NoError(t, err)

	ok := Pivot(c, 1, CounterClockwise, Right)
	require.True(t, ok)
	assert.NoError(t, c.CheckInvariants())
}

func TestPivotEmptyPartFails(t *testing.T) {
	c, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{0, 0}},
		{Kind: lattice.P, Pos: lattice.Point{1, 0}},
	})
	require.NoError(t, err)

	// r=0, Left part is empty.
	ok := Pivot(c, 0, Clockwise, Left)
	assert.False(t, ok)
}

// TestPivotForwardThenBackwardIsIdentity verifies M3: a +90 pivot
// followed by a -90 pivot about the same point and part restores the
// original chain.
func TestPivotForwardThenBackwardIsIdentity(t *testing.T) {
	c, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{0, 0}},
		{Kind: lattice.P, Pos: lattice.Point{1, 0}},
		{Kind: lattice.P, Pos: lattice.Point{2, 0}},
		{Kind: lattice.H, Pos: lattice.Point{3, 0}},
		{Kind: lattice.H, Pos: lattice.Point{4, 0}},
	})
	require.NoError(t, err)
	before := c.Monomers()

	require.True(t, Pivot(c, 1, CounterClockwise, Right))
	require.True(t, Pivot(c, 1, Clockwise, Right))

	assert.Equal(t, before, c.Monomers())
}

func TestPivotRejectsCollisionOutsideBatch(t *testing.T) {
	// Construct a chain where rotating Right around r=1 would collide
	// with a monomer that is part of Left (outside the rotated batch).
	c, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{0, 1}},
		{Kind: lattice.P, Pos: lattice.Point{0, 0}},
		{Kind: lattice.P, Pos: lattice.Point{1, 0}},
	})
	require.NoError(t, err)

	// Rotating {2} (Right of r=1) clockwise about (0,0): (1,0)->(0,-1)... not colliding.
	// Instead force an explicit collision scenario:
	c2, err := lattice.NewChain([]lattice.Monomer{
		{Kind: lattice.H, Pos: lattice.Point{-1, 0}},
		{Kind: lattice.P, Pos: lattice.Point{0, 0}},
		{Kind: lattice.P, Pos: lattice.Point{0, 1}},
	})
	require.NoError(t, err)
	// Rotating Right={2} CCW about r=1 (0,0): dx=0,dy=1 -> nx=0-1=-1,ny=0+0=0 -> (-1,0), collides with index 0.
	ok := Pivot(c2, 1, CounterClockwise, Right)
	assert.False(t, ok)
	assert.False(t, c2.HasPendingUndo())
	_ = c
}
