// common_test.go --  This file is part of the meanfield project.
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
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theochem/meanfield/gaussian"
	"github.com/theochem/meanfield/linalg"
	"github.com/theochem/meanfield/meanfield"
)

// h2Model bundles the integrals of H2 in a minimal basis at 1.4 bohr,
// the standard workhorse system of the test suite.
type h2Model struct {
	basis *gaussian.Basis
	olp   *linalg.TwoIndex
	kin   *linalg.TwoIndex
	na    *linalg.TwoIndex
	eri   *linalg.FourIndex
	enn   float64
}

func newH2Model(t *testing.T) *h2Model {
	t.Helper()
	basis, err := gaussian.NewSTO3GBasis([]gaussian.Atom{
		{Z: 1, Center: [3]float64{0, 0, 0}},
		{Z: 1, Center: [3]float64{1.4, 0, 0}},
	})
	require.NoError(t, err)
	return &h2Model{
		basis: basis,
		olp:   basis.Overlap(),
		kin:   basis.Kinetic(),
		na:    basis.NuclearAttraction(),
		eri:   basis.ElectronRepulsion(),
		enn:   basis.NuclearRepulsion(),
	}
}

func (m *h2Model) core() *linalg.TwoIndex {
	core := m.kin.Copy()
	core.Add(m.na)
	return core
}

// rHF builds the restricted Hartree-Fock Hamiltonian.
func (m *h2Model) rHF(t *testing.T) *meanfield.EffHam {
	t.Helper()
	ham, err := meanfield.NewREffHam([]meanfield.Observable{
		meanfield.NewRTwoIndexTerm(m.kin, "kin"),
		meanfield.NewRDirectTerm(m.eri, "hartree"),
		meanfield.NewRExchangeTerm(m.eri, "x_hf", 1.0),
		meanfield.NewRTwoIndexTerm(m.na, "ne"),
	}, m.enn)
	require.NoError(t, err)
	return ham
}

// uHF builds the unrestricted Hartree-Fock Hamiltonian, sharing the
// one-body operators between the spin channels.
func (m *h2Model) uHF(t *testing.T) *meanfield.EffHam {
	t.Helper()
	ham, err := meanfield.NewUEffHam([]meanfield.Observable{
		meanfield.NewUTwoIndexTerm(m.kin, m.kin, "kin"),
		meanfield.NewUDirectTerm(m.eri, "hartree"),
		meanfield.NewUExchangeTerm(m.eri, "x_hf", 1.0),
		meanfield.NewUTwoIndexTerm(m.na, m.na, "ne"),
	}, m.enn)
	require.NoError(t, err)
	return ham
}

// symmetricDM is the alpha density matrix of the doubly occupied
// bonding orbital (phi_0 + phi_1)/sqrt(2(1+S01)). By symmetry this is
// the restricted ground state of any homonuclear two-basis model, so
// it serves as an SCF-free reference.
func (m *h2Model) symmetricDM() *linalg.TwoIndex {
	c2 := 1.0 / (2.0 * (1.0 + m.olp.At(0, 1)))
	dm := linalg.NewTwoIndex(2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			dm.Set(i, j, c2)
		}
	}
	return dm
}

// coreGuessDM is the aufbau alpha density matrix of the core
// Hamiltonian guess.
func (m *h2Model) coreGuessDM(t *testing.T) *linalg.TwoIndex {
	t.Helper()
	orb := meanfield.NewOrbitals(2)
	require.NoError(t, meanfield.GuessCoreHamiltonian(m.olp, m.core(), orb))
	orb.Occupations[0] = 1.0
	return orb.DM()
}

// newH2Model631 builds the same molecule in the split-valence 6-31G
// basis, four functions instead of two.
func newH2Model631(t *testing.T) *h2Model {
	t.Helper()
	basis, err := gaussian.New631GBasis([]gaussian.Atom{
		{Z: 1, Center: [3]float64{0, 0, 0}},
		{Z: 1, Center: [3]float64{1.4, 0, 0}},
	})
	require.NoError(t, err)
	return &h2Model{
		basis: basis,
		olp:   basis.Overlap(),
		kin:   basis.Kinetic(),
		na:    basis.NuclearAttraction(),
		eri:   basis.ElectronRepulsion(),
		enn:   basis.NuclearRepulsion(),
	}
}

// hehPlusRHF builds an asymmetric two-electron system, HeH+ at
// 1.4632 bohr, and its restricted Hartree-Fock Hamiltonian.
func hehPlusRHF(t *testing.T) (*h2Model, *meanfield.EffHam) {
	t.Helper()
	basis, err := gaussian.NewSTO3GBasis([]gaussian.Atom{
		{Z: 2, Center: [3]float64{0, 0, 0}},
		{Z: 1, Center: [3]float64{1.4632, 0, 0}},
	})
	require.NoError(t, err)
	m := &h2Model{
		basis: basis,
		olp:   basis.Overlap(),
		kin:   basis.Kinetic(),
		na:    basis.NuclearAttraction(),
		eri:   basis.ElectronRepulsion(),
		enn:   basis.NuclearRepulsion(),
	}
	return m, m.rHF(t)
}

// energyAt evaluates ham at the given density matrices, respecting the
// clear-then-reset protocol.
func energyAt(t *testing.T, ham *meanfield.EffHam, dms ...*linalg.TwoIndex) float64 {
	t.Helper()
	ham.Clear()
	require.NoError(t, ham.Reset(dms...))
	e, err := ham.ComputeEnergy()
	require.NoError(t, err)
	return e
}

// mix returns (1-x) a + x b.
func mix(a, b *linalg.TwoIndex, x float64) *linalg.TwoIndex {
	out := a.Copy()
	out.Scale(1.0 - x)
	out.AddScaled(b, x)
	return out
}

func absDiff(a, b float64) float64 { return math.Abs(a - b) }
