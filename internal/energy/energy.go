// Package energy computes the HP-model contact energy and the chain's
// radius of gyration.
//
// Grounded in original_source/computation.py:calculate_energy and
// classes.py:compute_gyration_radius, adapted per SPEC_FULL.md's
// resolved open questions: bonded H-H neighbours are excluded from the
// contact count (the source counts them; this repo follows spec.md's
// normative "MUST exclude" instead), and the gyration radius keeps the
// source's extra 1/N factor relative to the textbook definition.
package energy

import (
	"math"

	"github.com/foldlab/hplattice/internal/lattice"
	"gonum.org/v1/gonum/floats"
)

// Contacts computes an O(N) energy for a chain: E = -epsilon * f, where
// f is the number of H-H pairs that are lattice-adjacent but NOT
// sequence-bonded. Each H monomer probes its four neighbours; since
// every non-bonded contact is counted from both ends, the raw count is
// halved.
func Contacts(c *lattice.Chain, epsilon float64) float64 {
	var f int
	n := c.Len()
	for i := 0; i < n; i++ {
		m := c.At(i)
		if m.Kind != lattice.H {
			continue
		}
		for _, off := range [4]lattice.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			idx, kind, ok := c.Get(m.Pos.Add(off))
			if !ok || kind != lattice.H {
				continue
			}
			if isBonded(i, idx) {
				continue
			}
			f++
		}
	}
	// Every counted contact was seen from both of its endpoints.
	f /= 2
	return -epsilon * float64(f)
}

func isBonded(i, j int) bool {
	d := i - j
	return d == 1 || d == -1
}

// GyrationRadius computes the radius of gyration from the chain's
// bounding-box centre:
//
//	R_g = sqrt( (1/N^2) * sum_i ||r_i - c||^2 )
//
// The extra 1/N factor (relative to the textbook 1/N normalization) is
// preserved from the source by design; see SPEC_FULL.md.
func GyrationRadius(c *lattice.Chain) float64 {
	n := c.Len()
	min, max := c.BoundingBox()
	cx := float64(min.X+max.X) / 2
	cy := float64(min.Y+max.Y) / 2

	sq := make([]float64, n)
	for i := 0; i < n; i++ {
		m := c.At(i)
		dx := float64(m.Pos.X) - cx
		dy := float64(m.Pos.Y) - cy
		sq[i] = dx*dx + dy*dy
	}
	sumSq := floats.Sum(sq)
	meanSq := sumSq / float64(n)
	meanSq /= float64(n)
	return math.Sqrt(meanSq)
}
