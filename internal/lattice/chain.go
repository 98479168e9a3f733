// Package lattice implements the 2D HP-model lattice chain: an ordered
// sequence of bonded monomers backed by an O(1) coordinate-to-index map.
//
// MATHEMATICIAN: the chain is a self-avoiding walk on Z^2; the occupancy
// map is the inverse of the walk's coordinate function, so membership
// and neighbour queries are O(1) instead of O(N).
package lattice

import "fmt"

// Kind is the HP-model monomer type: hydrophobic (H) or polar (P).
type Kind uint8

const (
	H Kind = iota
	P
)

func (k Kind) String() string {
	if k == H {
		return "H"
	}
	return "P"
}

// MarshalJSON renders a Kind as "H" or "P" rather than its numeric
// value, so report dumps are human-readable.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON accepts "H" or "P".
func (k *Kind) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"H"`:
		*k = H
	case `"P"`:
		*k = P
	default:
		return fmt.Errorf("lattice: invalid Kind %s", data)
	}
	return nil
}

// Point is an integer lattice coordinate.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// ManhattanDist returns the L1 distance between p and q.
func (p Point) ManhattanDist(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Monomer is one bead of the chain: an HP kind and its current site.
// Kind is immutable after construction; Pos is mutated only through the
// Chain's move operations.
type Monomer struct {
	Kind Kind
	Pos  Point
}

// moveRecord is a single-monomer entry in the last accepted change set.
type moveRecord struct {
	index    int
	old, new Point
}

// Chain owns a fixed-length sequence of monomers plus the occupancy
// index that makes Get/Has/Neighbours O(1). It is the LatticeChain of
// the design: bond connectivity is implicit in slice order (monomer i
// is bonded to i-1 and i+1), never stored explicitly.
//
// Chain keeps only the single most recent accepted change as an undo
// set, not a history stack: every mutating call overwrites it, and
// UndoLastChange clears it. This matches the source's "last change"
// semantics (see design notes) rather than a general undo log.
type Chain struct {
	chain     []Monomer
	occupancy map[Point]int
	undo      []moveRecord
}

// NewChain builds a Chain from an initial self-avoiding walk. It fails
// if any two monomers share a site or if sequence-adjacent monomers are
// not Manhattan-adjacent — both are programmer/generator errors, not
// conditions the simulation can recover from, so NewChain returns an
// error rather than silently accepting a broken chain.
func NewChain(initial []Monomer) (*Chain, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("lattice: chain must have at least one monomer")
	}

	occ := make(map[Point]int, len(initial))
	for i, m := range initial {
		if prev, ok := occ[m.Pos]; ok {
			return nil, fmt.Errorf("lattice: monomers %d and %d both occupy %v", prev, i, m.Pos)
		}
		occ[m.Pos] = i
	}
	for i := 0; i < len(initial)-1; i++ {
		if d := initial[i].Pos.ManhattanDist(initial[i+1].Pos); d != 1 {
			return nil, fmt.Errorf("lattice: monomers %d and %d are not bonded (Manhattan distance %d)", i, i+1, d)
		}
	}

	chain := make([]Monomer, len(initial))
	copy(chain, initial)
	return &Chain{chain: chain, occupancy: occ}, nil
}

// Len returns the number of monomers, N.
func (c *Chain) Len() int { return len(c.chain) }

// At returns the monomer at sequence index i.
func (c *Chain) At(i int) Monomer { return c.chain[i] }

// Get returns the chain index and kind of the monomer occupying (x,y),
// and whether one is present.
func (c *Chain) Get(p Point) (index int, kind Kind, ok bool) {
	idx, ok := c.occupancy[p]
	if !ok {
		return 0, 0, false
	}
	return idx, c.chain[idx].Kind, true
}

// Has reports whether any monomer occupies p.
func (c *Chain) Has(p Point) bool {
	_, ok := c.occupancy[p]
	return ok
}

var unitOffsets = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Neighbours returns the (up to four) monomers occupying the axis
// neighbours of p, in a fixed order: +x, -x, +y, -y.
func (c *Chain) Neighbours(p Point) []Monomer {
	out := make([]Monomer, 0, 4)
	for _, off := range unitOffsets {
		if idx, ok := c.occupancy[p.Add(off)]; ok {
			out = append(out, c.chain[idx])
		}
	}
	return out
}

// MoveMonomer relocates monomer i to (x,y). The caller must guarantee
// the destination is unoccupied; violating this is a programmer error
// and MoveMonomer panics rather than silently corrupting the occupancy
// index. Pushes a fresh single-record undo set, discarding whatever was
// previously recorded.
func (c *Chain) MoveMonomer(i int, dest Point) {
	if c.Has(dest) {
		panic(fmt.Sprintf("lattice: MoveMonomer: destination %v already occupied", dest))
	}
	old := c.chain[i].Pos
	c.undo = c.undo[:0]
	c.undo = append(c.undo, moveRecord{index: i, old: old, new: dest})

	delete(c.occupancy, old)
	c.occupancy[dest] = i
	c.chain[i].Pos = dest
}

// Move is one entry of a batched MoveMonomers call: move monomer Index
// to Dest.
type Move struct {
	Index int
	Dest  Point
}

// MoveMonomers atomically relocates a batch of monomers. All old sites
// are removed from the occupancy index before any new site is
// inserted, so a destination may legally reuse a site vacated by
// another monomer in the same batch — the naive per-monomer
// remove-then-insert loop is NOT equivalent to this and would corrupt
// the occupancy index whenever destinations and sources overlap.
//
// The caller must guarantee that no destination is occupied by a
// monomer outside the batch and that no two destinations coincide.
// MoveMonomers panics on such a collision; by then the batch's old
// sites have already been removed from the occupancy index, so the
// chain is not left in a consistent state.
func (c *Chain) MoveMonomers(moves []Move) {
	if len(moves) == 0 {
		return
	}

	c.undo = c.undo[:0]
	for _, mv := range moves {
		old := c.chain[mv.Index].Pos
		c.undo = append(c.undo, moveRecord{index: mv.Index, old: old, new: mv.Dest})
	}

	for _, mv := range moves {
		delete(c.occupancy, c.chain[mv.Index].Pos)
	}

	for _, mv := range moves {
		if prev, ok := c.occupancy[mv.Dest]; ok {
			panic(fmt.Sprintf("lattice: MoveMonomers: destination %v collides with monomer %d outside the batch", mv.Dest, prev))
		}
		c.occupancy[mv.Dest] = mv.Index
		c.chain[mv.Index].Pos = mv.Dest
	}
}

// UndoLastChange reverses the most recently recorded move set exactly:
// new sites are vacated, then old sites are restored, leaving the chain
// and occupancy index bit-identical to the pre-move state. Panics if no
// move is recorded — calling it twice in a row, or before any move, is
// a programmer error.
func (c *Chain) UndoLastChange() {
	if len(c.undo) == 0 {
		panic("lattice: UndoLastChange: no recorded move to undo")
	}

	for _, rec := range c.undo {
		delete(c.occupancy, rec.new)
	}
	for _, rec := range c.undo {
		c.occupancy[rec.old] = rec.index
		c.chain[rec.index].Pos = rec.old
	}
	c.undo = c.undo[:0]
}

// HasPendingUndo reports whether a move is currently recorded.
func (c *Chain) HasPendingUndo() bool { return len(c.undo) > 0 }

// Clone returns a deep, independent copy of the chain. The copy's undo
// set is empty: undo state is a property of an in-progress move
// proposal, not of the chain's durable conformation.
func (c *Chain) Clone() *Chain {
	chain := make([]Monomer, len(c.chain))
	copy(chain, c.chain)
	occ := make(map[Point]int, len(c.occupancy))
	for k, v := range c.occupancy {
		occ[k] = v
	}
	return &Chain{chain: chain, occupancy: occ}
}

// Monomers returns a defensive copy of the chain's monomers in
// sequence order.
func (c *Chain) Monomers() []Monomer {
	out := make([]Monomer, len(c.chain))
	copy(out, c.chain)
	return out
}

// BoundingBox returns the inclusive min/max corners of the chain.
func (c *Chain) BoundingBox() (min, max Point) {
	min, max = c.chain[0].Pos, c.chain[0].Pos
	for _, m := range c.chain[1:] {
		if m.Pos.X < min.X {
			min.X = m.Pos.X
		}
		if m.Pos.Y < min.Y {
			min.Y = m.Pos.Y
		}
		if m.Pos.X > max.X {
			max.X = m.Pos.X
		}
		if m.Pos.Y > max.Y {
			max.Y = m.Pos.Y
		}
	}
	return min, max
}

// CheckInvariants verifies P1-P3 hold; it is intended for tests and
// debug builds, not the hot path, since it walks the whole chain.
func (c *Chain) CheckInvariants() error {
	if len(c.occupancy) != len(c.chain) {
		return fmt.Errorf("lattice: occupancy size %d != chain length %d", len(c.occupancy), len(c.chain))
	}
	for i, m := range c.chain {
		idx, ok := c.occupancy[m.Pos]
		if !ok || idx != i {
			return fmt.Errorf("lattice: occupancy[%v] = %d, want %d", m.Pos, idx, i)
		}
	}
	for i := 0; i < len(c.chain)-1; i++ {
		if d := c.chain[i].Pos.ManhattanDist(c.chain[i+1].Pos); d != 1 {
			return fmt.Errorf("lattice: bond %d-%d has Manhattan distance %d, want 1", i, i+1, d)
		}
	}
	return nil
}
