// Package moveset implements the three HP-lattice move generators —
// kink jump, endpoint rotation, and pivot — each operating in place on
// a *lattice.Chain and producing exactly one undo record on success.
//
// Grounded in original_source/computation.py (perform_kink_jump,
// perform_pivot): this package keeps the same fixed candidate order
// the Python lookup tables encode, rather than randomizing among
// admissible candidates, so detailed-balance behaviour matches the
// source (see SPEC_FULL.md open-question resolutions).
package moveset

import (
	"math"

	"github.com/foldlab/hplattice/internal/lattice"
)

// Direction is a pivot's rotation sense.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// Part selects which side of a pivot point rotates.
type Part int

const (
	Left  Part = iota // monomers [0, r)
	Right             // monomers (r, N-1]
)

// endpointOffsets maps the direction from a terminal bead to its sole
// bonded neighbour onto the two axis-perpendicular candidate offsets
// for the endpoint, in a fixed try-order. Grounded in
// endpoints_rotate_lookup_table.
var endpointOffsets = map[lattice.Point][2]lattice.Point{
	{0, 1}:  {{1, 0}, {-1, 0}},
	{0, -1}: {{1, 0}, {-1, 0}},
	{1, 0}:  {{0, 1}, {0, -1}},
	{-1, 0}: {{0, 1}, {0, -1}},
}

// kinkOffsets maps (prev-relative, next-relative) offset pairs around
// an interior bead onto the single "fourth corner" candidate site, for
// the eight L-shaped configurations a bead can form. Grounded in
// kink_jump_lookup_table.
var kinkOffsets = map[[2]lattice.Point]lattice.Point{
	{{0, 1}, {1, 0}}:   {1, 1},
	{{1, 0}, {0, -1}}:  {1, -1},
	{{0, -1}, {-1, 0}}: {-1, -1},
	{{-1, 0}, {0, 1}}:  {-1, 1},

	{{0, 1}, {-1, 0}}:  {-1, 1},
	{{-1, 0}, {0, -1}}: {-1, -1},
	{{0, -1}, {1, 0}}:  {1, -1},
	{{1, 0}, {0, 1}}:   {1, 1},
}

// KinkJump attempts a kink jump at the interior bead i (0 < i < N-1).
// Succeeds iff the bead's two bonded neighbours form an "L" and the
// fourth corner of that unit square is unoccupied. Returns false and
// leaves the chain unchanged otherwise.
func KinkJump(c *lattice.Chain, i int) bool {
	n := c.Len()
	if i <= 0 || i >= n-1 {
		return false
	}

	mon := c.At(i)
	prev := c.At(i - 1)
	next := c.At(i + 1)

	key := [2]lattice.Point{prev.Pos.Sub(mon.Pos), next.Pos.Sub(mon.Pos)}
	offset, ok := kinkOffsets[key]
	if !ok {
		return false
	}

	dest := mon.Pos.Add(offset)
	if c.Has(dest) {
		return false
	}
	c.MoveMonomer(i, dest)
	return true
}

// EndpointRotation attempts a rotation of the terminal bead i (must be
// 0 or N-1) about its sole bonded neighbour. Tries the two admissible
// candidate sites in the fixed order endpointOffsets encodes, taking
// the first unoccupied one.
func EndpointRotation(c *lattice.Chain, i int) bool {
	n := c.Len()
	if i != 0 && i != n-1 {
		return false
	}

	var neighbourIdx int
	if i == 0 {
		neighbourIdx = 1
	} else {
		neighbourIdx = n - 2
	}

	mon := c.At(i)
	neighbour := c.At(neighbourIdx)

	key := neighbour.Pos.Sub(mon.Pos)
	candidates, ok := endpointOffsets[key]
	if !ok {
		return false
	}

	for _, off := range candidates {
		dest := neighbour.Pos.Add(off)
		if !c.Has(dest) {
			c.MoveMonomer(i, dest)
			return true
		}
	}
	return false
}

// rotationTrig holds (R,S) per spec.md §4.2's pivot geometry:
// (0,-1) for clockwise, (0,1) for counter-clockwise.
func rotationTrig(dir Direction) (r, s int) {
	if dir == Clockwise {
		return 0, -1
	}
	return 0, 1
}

// Pivot rigidly rotates the chosen part of the chain by +/-90 degrees
// about the bead at index r. Succeeds iff no new position collides
// with a monomer outside the rotated batch; positions inside the
// batch's own old set do not count as collisions, since
// lattice.MoveMonomers clears all old sites before inserting new ones.
func Pivot(c *lattice.Chain, r int, dir Direction, part Part) bool {
	n := c.Len()
	indices := partIndices(n, r, part)
	if len(indices) == 0 {
		return false
	}

	pivot := c.At(r)
	R, S := rotationTrig(dir)

	moves := make([]lattice.Move, len(indices))
	batch := make(map[int]bool, len(indices))
	for _, idx := range indices {
		batch[idx] = true
	}

	for j, idx := range indices {
		m := c.At(idx)
		dx := m.Pos.X - pivot.Pos.X
		dy := m.Pos.Y - pivot.Pos.Y
		nx := pivot.Pos.X + R*dx - S*dy
		ny := pivot.Pos.Y + S*dx + R*dy
		moves[j] = lattice.Move{Index: idx, Dest: lattice.Point{X: nx, Y: ny}}
	}

	for _, mv := range moves {
		if idx, _, ok := c.Get(mv.Dest); ok && !batch[idx] {
			return false
		}
	}

	c.MoveMonomers(moves)
	return true
}

// partIndices returns the chain indices belonging to Part, excluding r.
func partIndices(n, r int, part Part) []int {
	var out []int
	if part == Left {
		for i := 0; i < r; i++ {
			out = append(out, i)
		}
	} else {
		for i := r + 1; i < n; i++ {
			out = append(out, i)
		}
	}
	return out
}

// PivotAngle returns the rotation angle in radians a Direction implies,
// matching the source's 3*pi/2 (clockwise) and pi/2 (counter-clockwise)
// convention; exposed for callers that need it for diagnostics (e.g.
// rendering), since the integer (R,S) form above is what actually
// drives the move.
func PivotAngle(dir Direction) float64 {
	if dir == Clockwise {
		return 3 * math.Pi / 2
	}
	return math.Pi / 2
}
