// grid.go --  This file is part of the meanfield project.
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
package gaussian

import (
	"fmt"

	"github.com/theochem/meanfield/linalg"
)

// CollocationGrid evaluates the basis on a fixed set of quadrature
// points once and serves grid densities and grid-potential transforms
// from the stored amplitudes. It implements meanfield.GridBasis.
type CollocationGrid struct {
	weights []float64
	values  [][]float64    // per point, per basis function
	grads   [][][3]float64 // per point, per basis function
}

// NewUniformGrid builds a midpoint-rule collocation grid on a
// rectangular box: shape[k] points along axis k starting at origin
// with the given spacing. The quadrature weight of every point is the
// cell volume.
func NewUniformGrid(b *Basis, origin, spacing [3]float64, shape [3]int) (*CollocationGrid, error) {
	npoint := shape[0] * shape[1] * shape[2]
	if npoint <= 0 {
		return nil, fmt.Errorf("gaussian: empty grid shape %v", shape)
	}
	for k := 0; k < 3; k++ {
		if spacing[k] <= 0 {
			return nil, fmt.Errorf("gaussian: nonpositive grid spacing %v", spacing)
		}
	}
	w := spacing[0] * spacing[1] * spacing[2]
	g := &CollocationGrid{
		weights: make([]float64, 0, npoint),
		values:  make([][]float64, 0, npoint),
		grads:   make([][][3]float64, 0, npoint),
	}
	for ix := 0; ix < shape[0]; ix++ {
		for iy := 0; iy < shape[1]; iy++ {
			for iz := 0; iz < shape[2]; iz++ {
				point := [3]float64{
					origin[0] + (float64(ix)+0.5)*spacing[0],
					origin[1] + (float64(iy)+0.5)*spacing[1],
					origin[2] + (float64(iz)+0.5)*spacing[2],
				}
				g.weights = append(g.weights, w)
				g.values = append(g.values, b.AmplitudeAt(point))
				g.grads = append(g.grads, b.GradientAt(point))
			}
		}
	}
	return g, nil
}

func (g *CollocationGrid) GridSize() int { return len(g.weights) }

// Integrate returns the quadrature sum of the pointwise product of the
// given grid functions.
func (g *CollocationGrid) Integrate(fns ...[]float64) float64 {
	total := 0.0
	for p, w := range g.weights {
		v := w
		for _, fn := range fns {
			v *= fn[p]
		}
		total += v
	}
	return total
}

// ComputeGridDensity returns the density of dm on the grid points.
func (g *CollocationGrid) ComputeGridDensity(dm *linalg.TwoIndex) []float64 {
	n := dm.N()
	rho := make([]float64, len(g.weights))
	for p := range g.weights {
		basis := g.values[p]
		total := 0.0
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				total += basis[a] * dm.At(a, b) * basis[b]
			}
		}
		rho[p] = total
	}
	return rho
}

// ComputeGridGradient returns the density gradient of dm on the grid
// points, using the symmetry of dm.
func (g *CollocationGrid) ComputeGridGradient(dm *linalg.TwoIndex) [][3]float64 {
	n := dm.N()
	grad := make([][3]float64, len(g.weights))
	for p := range g.weights {
		basis := g.values[p]
		gbasis := g.grads[p]
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				d := dm.At(a, b)
				for k := 0; k < 3; k++ {
					grad[p][k] += 2.0 * gbasis[a][k] * d * basis[b]
				}
			}
		}
	}
	return grad
}

// ComputeGridDensityFock accumulates the operator of a multiplicative
// grid potential into out.
func (g *CollocationGrid) ComputeGridDensityFock(pot []float64, out *linalg.TwoIndex) {
	n := out.N()
	for p, w := range g.weights {
		wp := w * pot[p]
		basis := g.values[p]
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				out.Set(a, b, out.At(a, b)+wp*basis[a]*basis[b])
			}
		}
	}
}

// ComputeGridGradientFock accumulates the operator of a potential that
// couples to the density gradient into out.
func (g *CollocationGrid) ComputeGridGradientFock(pot [][3]float64, out *linalg.TwoIndex) {
	n := out.N()
	for p, w := range g.weights {
		basis := g.values[p]
		gbasis := g.grads[p]
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				v := 0.0
				for k := 0; k < 3; k++ {
					v += pot[p][k] * (gbasis[a][k]*basis[b] + basis[a]*gbasis[b][k])
				}
				out.Set(a, b, out.At(a, b)+w*v)
			}
		}
	}
}
