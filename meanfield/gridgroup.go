// gridgroup.go --  This file is part of the meanfield project.
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
package meanfield

import (
	"github.com/theochem/meanfield/cache"
	"github.com/theochem/meanfield/linalg"
)

// GridBasis connects the orbital basis to a numerical integration
// grid. Implementations evaluate densities and their gradients on the
// grid points and transform grid potentials back into operator
// matrices. The Fock transforms accumulate into their output.
type GridBasis interface {
	GridSize() int
	// Integrate returns the quadrature sum of the pointwise product
	// of the given grid functions.
	Integrate(fns ...[]float64) float64
	ComputeGridDensity(dm *linalg.TwoIndex) []float64
	ComputeGridGradient(dm *linalg.TwoIndex) [][3]float64
	ComputeGridDensityFock(pot []float64, out *linalg.TwoIndex)
	ComputeGridGradientFock(pot [][3]float64, out *linalg.TwoIndex)
}

// DFLevel is the rung of a density functional: it decides which
// density ingredients the grid group prepares.
type DFLevel int

const (
	DFLevelLDA DFLevel = iota
	DFLevelGGA
)

// GridObservable is one density functional evaluated on a grid. It
// reads the densities the group prepared from the cache and
// accumulates its potential into the group totals; it never touches
// operator matrices itself.
type GridObservable interface {
	Label() string
	DFLevel() DFLevel
	// ComputeEnergy returns the per-spin-channel energy summed over
	// the given spins. For restricted expansions the group doubles
	// the result.
	ComputeEnergy(c *cache.Cache, grid GridBasis, spins []string) float64
	// AddPot accumulates the functional derivatives into the group
	// potential totals for the given spins.
	AddPot(c *cache.Cache, grid GridBasis, spins []string)
}

// GridGroup collects all grid functionals of a Hamiltonian behind a
// single Observable. The grid work is shared: densities are computed
// once per spin channel, the individual potentials are summed on the
// grid, and exactly one grid-to-matrix transform per potential kind
// and spin turns the total into a Fock contribution.
//
// GridGroup does not support Hessian-vector products.
type GridGroup struct {
	grid  GridBasis
	terms []GridObservable
	kind  HamKind
}

func newGridGroup(kind HamKind, grid GridBasis, terms []GridObservable) (*GridGroup, error) {
	if grid == nil {
		return nil, consistencyErrorf("grid group needs a grid")
	}
	if len(terms) == 0 {
		return nil, consistencyErrorf("grid group needs at least one functional")
	}
	return &GridGroup{grid: grid, terms: append([]GridObservable(nil), terms...), kind: kind}, nil
}

// NewRGridGroup builds a grid group for a restricted Hamiltonian.
func NewRGridGroup(grid GridBasis, terms []GridObservable) (*GridGroup, error) {
	return newGridGroup(Restricted, grid, terms)
}

// NewUGridGroup builds a grid group for an unrestricted Hamiltonian.
func NewUGridGroup(grid GridBasis, terms []GridObservable) (*GridGroup, error) {
	return newGridGroup(Unrestricted, grid, terms)
}

func (g *GridGroup) Label() string { return "grid_group" }

func (g *GridGroup) spins() []string {
	if g.kind == Restricted {
		return []string{"alpha"}
	}
	return []string{"alpha", "beta"}
}

func (g *GridGroup) needGradient() bool {
	for _, t := range g.terms {
		if t.DFLevel() >= DFLevelGGA {
			return true
		}
	}
	return false
}

// updateGridData makes sure the densities (and gradients, when a GGA
// functional is present) are available on the grid for every spin.
func (g *GridGroup) updateGridData(c *cache.Cache) {
	for _, spin := range g.spins() {
		dm := cachedDM(c, "dm_"+spin)
		if _, ok := cache.Get[[]float64](c, "rho_"+spin); !ok {
			c.Store("rho_"+spin, cache.TagDerived, g.grid.ComputeGridDensity(dm))
		}
		if g.needGradient() {
			if _, ok := cache.Get[[][3]float64](c, "grad_"+spin); !ok {
				c.Store("grad_"+spin, cache.TagDerived, g.grid.ComputeGridGradient(dm))
			}
		}
	}
}

func (g *GridGroup) ComputeEnergy(c *cache.Cache) float64 {
	g.updateGridData(c)
	factor := 1.0
	if g.kind == Restricted {
		factor = 2.0
	}
	total := 0.0
	for _, t := range g.terms {
		e := factor * t.ComputeEnergy(c, g.grid, g.spins())
		c.Store("energy_"+g.Label()+"_"+t.Label(), cache.TagDerived, e)
		total += e
	}
	return total
}

func (g *GridGroup) AddFock(c *cache.Cache, focks ...*linalg.TwoIndex) {
	npoint := g.grid.GridSize()
	for i, spin := range g.spins() {
		op, isNew := cache.LoadOrNew(c, "op_"+g.Label()+"_"+spin, cache.TagDerived, func() *linalg.TwoIndex {
			return linalg.NewTwoIndex(focks[i].N())
		})
		if isNew {
			g.updateGridData(c)
			c.Store("dpot_total_"+spin, cache.TagDerived, make([]float64, npoint))
			if g.needGradient() {
				c.Store("gpot_total_"+spin, cache.TagDerived, make([][3]float64, npoint))
			}
			for _, t := range g.terms {
				t.AddPot(c, g.grid, []string{spin})
			}
			g.grid.ComputeGridDensityFock(GridTotalDPot(c, spin), op)
			if g.needGradient() {
				g.grid.ComputeGridGradientFock(GridTotalGPot(c, spin), op)
			}
		}
		focks[i].Add(op)
	}
}

// GridRho returns the density of a spin channel on the grid. It
// panics when the grid group has not prepared it yet.
func GridRho(c *cache.Cache, spin string) []float64 {
	rho, ok := cache.Get[[]float64](c, "rho_"+spin)
	if !ok {
		panic("meanfield: rho_" + spin + " not prepared by grid group")
	}
	return rho
}

// GridGradient returns the density gradient of a spin channel on the
// grid.
func GridGradient(c *cache.Cache, spin string) [][3]float64 {
	grad, ok := cache.Get[[][3]float64](c, "grad_"+spin)
	if !ok {
		panic("meanfield: grad_" + spin + " not prepared by grid group")
	}
	return grad
}

// GridTotalDPot returns the accumulation target for density-derivative
// potentials of a spin channel.
func GridTotalDPot(c *cache.Cache, spin string) []float64 {
	pot, ok := cache.Get[[]float64](c, "dpot_total_"+spin)
	if !ok {
		panic("meanfield: dpot_total_" + spin + " not prepared by grid group")
	}
	return pot
}

// GridTotalGPot returns the accumulation target for gradient-derivative
// potentials of a spin channel.
func GridTotalGPot(c *cache.Cache, spin string) [][3]float64 {
	pot, ok := cache.Get[[][3]float64](c, "gpot_total_"+spin)
	if !ok {
		panic("meanfield: gpot_total_" + spin + " not prepared by grid group")
	}
	return pot
}
