// utils_test.go --  This file is part of the meanfield project.
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

func identity(n int) *linalg.TwoIndex {
	out := linalg.NewTwoIndex(n)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1.0)
	}
	return out
}

func TestCheckDM(t *testing.T) {
	olp := identity(2)

	good := linalg.NewTwoIndexFrom([][]float64{{0.5, -0.3}, {-0.3, 0.4}})
	assert.NoError(t, meanfield.CheckDM(good, olp, 1e-4, 1.0))

	over := linalg.NewTwoIndexFrom([][]float64{{1.5, 0}, {0, 0}})
	assert.Error(t, meanfield.CheckDM(over, olp, 1e-4, 1.0))

	negative := linalg.NewTwoIndexFrom([][]float64{{-0.2, 0}, {0, 0.5}})
	assert.Error(t, meanfield.CheckDM(negative, olp, 1e-4, 1.0))

	// a looser occupation cap accepts doubly filled orbitals
	double := linalg.NewTwoIndexFrom([][]float64{{2.0, 0}, {0, 0}})
	assert.Error(t, meanfield.CheckDM(double, olp, 1e-4, 1.0))
	assert.NoError(t, meanfield.CheckDM(double, olp, 1e-4, 2.0))
}

func TestCheckDMNonOrthogonalMetric(t *testing.T) {
	m := newH2Model(t)
	assert.NoError(t, meanfield.CheckDM(m.symmetricDM(), m.olp, 1e-4, 1.0))

	scaled := m.symmetricDM()
	scaled.Scale(1.8)
	assert.Error(t, meanfield.CheckDM(scaled, m.olp, 1e-4, 1.0))
}

func TestCommutator(t *testing.T) {
	fock := linalg.NewTwoIndexFrom([][]float64{{-1.0, 0.2}, {0.2, 0.5}})
	olp := identity(2)

	// an idempotent projector onto a fock eigenvector commutes
	vals, coeffs, err := linalg.Diagonalize(fock, olp)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	dm := linalg.NewTwoIndex(2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			dm.Set(i, j, coeffs.At(i, 0)*coeffs.At(j, 0))
		}
	}
	assert.Less(t, meanfield.Commutator(fock, dm, olp).NormInf(), 1e-12)

	// a generic matrix does not
	bad := linalg.NewTwoIndexFrom([][]float64{{0.7, 0.1}, {0.1, 0.1}})
	assert.Greater(t, meanfield.Commutator(fock, bad, olp).NormInf(), 1e-4)
}

func TestLevelShift(t *testing.T) {
	m := newH2Model(t)
	dm := m.symmetricDM()
	ls := meanfield.LevelShift(dm, m.olp)

	// S D S is symmetric and positive semidefinite
	assert.InDelta(t, ls.At(0, 1), ls.At(1, 0), 1e-12)
	orb := meanfield.NewOrbitals(2)
	require.NoError(t, orb.DeriveNaturals(dm, m.olp))
	assert.GreaterOrEqual(t, orb.Occupations[0], -1e-12)
}

func TestHomoLumo(t *testing.T) {
	alpha := orbsWithEnergies(-1.0, -0.3, 0.4)
	alpha.Occupations[0] = 1
	alpha.Occupations[1] = 1
	beta := orbsWithEnergies(-0.9, -0.1, 0.5)
	beta.Occupations[0] = 1

	homo, lumo, hasLumo := meanfield.HomoLumo(alpha, beta)
	require.True(t, hasLumo)
	assert.InDelta(t, -0.3, homo, 1e-14)
	assert.InDelta(t, -0.1, lumo, 1e-14)

	// fully occupied: no lumo
	full := orbsWithEnergies(-1.0)
	full.Occupations[0] = 1
	_, _, hasLumo = meanfield.HomoLumo(full)
	assert.False(t, hasLumo)
}

func TestGetSpinPolarized(t *testing.T) {
	olp := identity(2)
	alpha := meanfield.NewOrbitals(2)
	beta := meanfield.NewOrbitals(2)
	alpha.Coeffs.Set(0, 0, 1)
	alpha.Coeffs.Set(1, 1, 1)
	beta.Coeffs.Set(0, 0, 1)
	beta.Coeffs.Set(1, 1, 1)

	// one unpaired alpha electron
	alpha.Occupations[0] = 1
	sz, ssq := meanfield.GetSpin(alpha, beta, olp)
	assert.InDelta(t, 0.5, sz, 1e-14)
	assert.InDelta(t, 0.75, ssq, 1e-14)

	// a closed-shell pair in identical orbitals
	beta.Occupations[0] = 1
	sz, ssq = meanfield.GetSpin(alpha, beta, olp)
	assert.InDelta(t, 0.0, sz, 1e-14)
	assert.InDelta(t, 0.0, ssq, 1e-14)
}
