// builtin.go --  This file is part of the meanfield project.
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
	"math"

	"github.com/theochem/meanfield/cache"
)

// DiracExchange is the local-density exchange functional of Dirac:
// per spin channel, E = -C 2^(1/3) integral rho^(4/3) with
// C = (3/4)(3/pi)^(1/3).
type DiracExchange struct {
	label string
}

func NewDiracExchange() *DiracExchange {
	return &DiracExchange{label: "x_dirac"}
}

func (t *DiracExchange) Label() string { return t.label }

func (t *DiracExchange) DFLevel() DFLevel { return DFLevelLDA }

// diracPrefac is (4/3) 2^(1/3) C, the prefactor of the potential.
var diracPrefac = (4.0 / 3.0) * math.Cbrt(2.0) * 0.75 * math.Cbrt(3.0/math.Pi)

func (t *DiracExchange) updatePot(c *cache.Cache, spin string) []float64 {
	rho := GridRho(c, spin)
	pot, isNew := cache.LoadOrNew(c, "pot_"+t.label+"_"+spin, cache.TagDerived, func() []float64 {
		return make([]float64, len(rho))
	})
	if isNew {
		for p, r := range rho {
			pot[p] = -diracPrefac * math.Cbrt(r)
		}
	}
	return pot
}

func (t *DiracExchange) ComputeEnergy(c *cache.Cache, grid GridBasis, spins []string) float64 {
	total := 0.0
	for _, spin := range spins {
		pot := t.updatePot(c, spin)
		total += 0.75 * grid.Integrate(pot, GridRho(c, spin))
	}
	return total
}

func (t *DiracExchange) AddPot(c *cache.Cache, grid GridBasis, spins []string) {
	for _, spin := range spins {
		pot := t.updatePot(c, spin)
		total := GridTotalDPot(c, spin)
		for p := range total {
			total[p] += pot[p]
		}
	}
}
