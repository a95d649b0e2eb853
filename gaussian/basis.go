// basis.go --  This file is part of the meanfield project.
//
//	meanfield is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------

// Package gaussian provides a minimal s-type Gaussian basis with the
// one- and two-electron integrals and a collocation grid, enough to
// feed the meanfield package for light elements. Distances are in
// bohr, energies in hartree.
package gaussian

import (
	"fmt"
	"math"
)

// Primitive is a single normalized s-type Gaussian with a contraction
// coefficient.
type Primitive struct {
	Alpha float64
	Coeff float64
}

// normCoeff is the normalization constant of an s-type Gaussian.
func (p Primitive) normCoeff() float64 {
	return math.Pow(2.0*p.Alpha/math.Pi, 0.75)
}

// Shell is one contracted basis function on a center.
type Shell struct {
	Center     [3]float64
	Primitives []Primitive
}

// Atom is a point charge contributing to the external potential.
type Atom struct {
	Z      int
	Center [3]float64
}

// Basis combines the contracted shells with the nuclear frame.
type Basis struct {
	Shells []Shell
	Atoms  []Atom
}

func (b *Basis) NBasis() int { return len(b.Shells) }

// sto3g holds the STO-3G s-contractions per element.
var sto3g = map[int][]Primitive{
	1: {
		{Alpha: 3.425250914, Coeff: 0.1543289673},
		{Alpha: 0.6239137298, Coeff: 0.5353281423},
		{Alpha: 0.1688554040, Coeff: 0.4446345422},
	},
	2: {
		{Alpha: 6.36242139, Coeff: 0.15432897},
		{Alpha: 1.158923, Coeff: 0.53532814},
		{Alpha: 0.31364979, Coeff: 0.44463454},
	},
}

// NewSTO3GBasis builds an STO-3G basis for the given atoms. Only
// elements with an s-only ground configuration (H, He) are available.
func NewSTO3GBasis(atoms []Atom) (*Basis, error) {
	b := &Basis{Atoms: append([]Atom(nil), atoms...)}
	for _, at := range atoms {
		prims, ok := sto3g[at.Z]
		if !ok {
			return nil, fmt.Errorf("gaussian: no STO-3G s-contraction for element %d", at.Z)
		}
		b.Shells = append(b.Shells, Shell{Center: at.Center, Primitives: prims})
	}
	return b, nil
}

// 6-31G hydrogen: an inner triple contraction plus a free outer
// primitive.
var h631gInner = []Primitive{
	{Alpha: 18.73113696, Coeff: 0.03349460434},
	{Alpha: 2.825394365, Coeff: 0.2347269535},
	{Alpha: 0.6401216923, Coeff: 0.8137573261},
}

var h631gOuter = []Primitive{
	{Alpha: 0.1612777588, Coeff: 1.0},
}

// New631GBasis builds a split-valence 6-31G basis, two shells per
// atom. Only hydrogen is available.
func New631GBasis(atoms []Atom) (*Basis, error) {
	b := &Basis{Atoms: append([]Atom(nil), atoms...)}
	for _, at := range atoms {
		if at.Z != 1 {
			return nil, fmt.Errorf("gaussian: no 6-31G s-contraction for element %d", at.Z)
		}
		b.Shells = append(b.Shells,
			Shell{Center: at.Center, Primitives: h631gInner},
			Shell{Center: at.Center, Primitives: h631gOuter},
		)
	}
	return b, nil
}

// AmplitudeAt evaluates every basis function at a point.
func (b *Basis) AmplitudeAt(point [3]float64) []float64 {
	out := make([]float64, len(b.Shells))
	for i, shell := range b.Shells {
		r2 := dist2(point, shell.Center)
		total := 0.0
		for _, p := range shell.Primitives {
			total += p.Coeff * p.normCoeff() * math.Exp(-p.Alpha*r2)
		}
		out[i] = total
	}
	return out
}

// GradientAt evaluates the gradient of every basis function at a
// point.
func (b *Basis) GradientAt(point [3]float64) [][3]float64 {
	out := make([][3]float64, len(b.Shells))
	for i, shell := range b.Shells {
		r2 := dist2(point, shell.Center)
		for _, p := range shell.Primitives {
			v := p.Coeff * p.normCoeff() * math.Exp(-p.Alpha*r2)
			for k := 0; k < 3; k++ {
				out[i][k] += -2.0 * p.Alpha * (point[k] - shell.Center[k]) * v
			}
		}
	}
	return out
}

func dist2(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}
