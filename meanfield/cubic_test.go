// cubic_test.go --  This file is part of the meanfield project.
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
package meanfield_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theochem/meanfield/linalg"
	"github.com/theochem/meanfield/meanfield"
)

// cubicCoeffs fits the interpolation polynomial the optimal-damping
// solver uses, from energies and directional derivatives at the ends
// of the segment dm0 -> dm1.
func cubicCoeffs(t *testing.T, ham *meanfield.EffHam, dm0, dm1 *linalg.TwoIndex) (a, b, c, d float64) {
	t.Helper()
	delta := dm1.Copy()
	delta.AddScaled(dm0, -1.0)

	f0 := energyAt(t, ham, dm0.Copy())
	fock := linalg.NewTwoIndex(dm0.N())
	require.NoError(t, ham.ComputeFock(fock))
	g0 := ham.DerivScale() * fock.Contract(delta)

	f1 := energyAt(t, ham, dm1.Copy())
	require.NoError(t, ham.ComputeFock(fock))
	g1 := ham.DerivScale() * fock.Contract(delta)

	d = f0
	c = g0
	a = g1 - 2.0*f1 + c + 2.0*d
	b = f1 - a - c - d
	return a, b, c, d
}

// The Hartree-Fock energy is quadratic in the density matrix: the
// cubic term of the fit vanishes and the curvature is the same whether
// the segment is walked from A to B or from B to A.
func TestCubicFitSymmetry(t *testing.T) {
	m := newH2Model(t)
	ham := m.rHF(t)
	dmA := m.coreGuessDM(t)
	dmB := m.symmetricDM()

	aAB, bAB, cAB, dAB := cubicCoeffs(t, ham, dmA, dmB)
	aBA, bBA, cBA, dBA := cubicCoeffs(t, ham, dmB, dmA)

	assert.InDelta(t, 0.0, aAB, 1e-9)
	assert.InDelta(t, 0.0, aBA, 1e-9)
	assert.InDelta(t, bAB, bBA, 1e-9)

	// both fits describe the same segment: equal endpoint values
	assert.InDelta(t, dAB, aBA+bBA+cBA+dBA, 1e-9)
	assert.InDelta(t, dBA, aAB+bAB+cAB+dAB, 1e-9)
}
