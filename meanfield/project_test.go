// project_test.go --  This file is part of the meanfield project.
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

	"github.com/theochem/meanfield/gaussian"
	"github.com/theochem/meanfield/meanfield"
)

// Projecting onto the same basis must reproduce the occupied orbitals
// up to sign, hence the same density matrix.
func TestProjectOrbitalsIdentity(t *testing.T) {
	m := newH2Model(t)
	src := meanfield.NewOrbitals(2)
	require.NoError(t, meanfield.GuessCoreHamiltonian(m.olp, m.core(), src))
	src.Occupations[0] = 1.0

	dst := meanfield.NewOrbitals(2)
	require.NoError(t, meanfield.ProjectOrbitals(m.olp.Raw(), m.olp, src, dst, 0))

	assert.InDelta(t, 1.0, dst.Occupations[0], 1e-14)
	assert.InDelta(t, 0.0, dst.Occupations[1], 1e-14)
	assert.InDelta(t, 0.0, dst.DM().DistanceFrob(src.DM()), 1e-8)
}

// Projection between different bases keeps the orbitals normalized in
// the destination metric and preserves the electron count.
func TestProjectOrbitalsUpscale(t *testing.T) {
	m := newH2Model(t)
	src := meanfield.NewOrbitals(2)
	require.NoError(t, meanfield.GuessCoreHamiltonian(m.olp, m.core(), src))
	src.Occupations[0] = 1.0

	big := newH2Model631(t)
	// mixed overlap between the two bases of the same molecule
	olp21 := gaussian.MixedOverlap(big.basis, m.basis)

	dst := meanfield.NewOrbitals(4)
	require.NoError(t, meanfield.ProjectOrbitals(olp21, big.olp, src, dst, 0))
	assert.InDelta(t, 1.0, dst.Occupations[0], 1e-14)

	// normalized in the destination metric
	dm := dst.DM()
	norm := 0.0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			norm += dm.At(i, j) * big.olp.At(i, j)
		}
	}
	assert.InDelta(t, 1.0, norm, 1e-10)
}

// Linearly dependent occupied orbitals cannot be orthogonalized.
func TestProjectOrbitalsDependent(t *testing.T) {
	m := newH2Model(t)
	src := meanfield.NewOrbitals(2)
	require.NoError(t, meanfield.GuessCoreHamiltonian(m.olp, m.core(), src))
	// duplicate the first column into the second
	for i := 0; i < 2; i++ {
		src.Coeffs.Set(i, 1, src.Coeffs.At(i, 0))
	}
	src.Occupations[0] = 1.0
	src.Occupations[1] = 1.0

	dst := meanfield.NewOrbitals(2)
	err := meanfield.ProjectOrbitals(m.olp.Raw(), m.olp, src, dst, 0)
	require.Error(t, err)
	var consistency *meanfield.ConsistencyError
	assert.ErrorAs(t, err, &consistency)
}
