// dot_hessian_test.go --  This file is part of the meanfield project.
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
)

// The Hartree-Fock energy is an exact quadratic in the density matrix,
// so the quadratic model built from the gradient and the
// Hessian-vector product must reproduce the energy along a line
// exactly.
func TestQuadraticModelRestricted(t *testing.T) {
	m := newH2Model(t)
	ham := m.rHF(t)
	dm0 := m.coreGuessDM(t)
	dm1 := m.symmetricDM()
	delta := dm1.Copy()
	delta.AddScaled(dm0, -1.0)

	e0 := energyAt(t, ham, dm0)
	fock := linalg.NewTwoIndex(2)
	require.NoError(t, ham.ComputeFock(fock))
	g := ham.DerivScale() * fock.Contract(delta)

	require.NoError(t, ham.ResetDelta(delta))
	dot := linalg.NewTwoIndex(2)
	require.NoError(t, ham.ComputeDotHessian(dot))
	h := ham.DerivScale() * ham.DerivScale() * dot.Contract(delta)

	for _, x := range []float64{0.25, 0.5, 1.0} {
		actual := energyAt(t, ham, mix(dm0, dm1, x))
		model := e0 + x*g + 0.5*x*x*h
		assert.InDelta(t, model, actual, 1e-10, "x=%v", x)
	}
}

func TestQuadraticModelUnrestricted(t *testing.T) {
	m := newH2Model(t)
	ham := m.uHF(t)
	dm0a := m.coreGuessDM(t)
	dm0b := m.coreGuessDM(t)
	dm1a := m.symmetricDM()
	dm1b := m.symmetricDM()
	// asymmetric perturbation so both spin channels matter
	dm1b.Scale(0.7)
	deltaA := dm1a.Copy()
	deltaA.AddScaled(dm0a, -1.0)
	deltaB := dm1b.Copy()
	deltaB.AddScaled(dm0b, -1.0)

	e0 := energyAt(t, ham, dm0a, dm0b)
	fockA := linalg.NewTwoIndex(2)
	fockB := linalg.NewTwoIndex(2)
	require.NoError(t, ham.ComputeFock(fockA, fockB))
	g := fockA.Contract(deltaA) + fockB.Contract(deltaB)

	require.NoError(t, ham.ResetDelta(deltaA, deltaB))
	dotA := linalg.NewTwoIndex(2)
	dotB := linalg.NewTwoIndex(2)
	require.NoError(t, ham.ComputeDotHessian(dotA, dotB))
	h := dotA.Contract(deltaA) + dotB.Contract(deltaB)

	for _, x := range []float64{0.25, 0.5, 1.0} {
		actual := energyAt(t, ham, mix(dm0a, dm1a, x), mix(dm0b, dm1b, x))
		model := e0 + x*g + 0.5*x*x*h
		assert.InDelta(t, model, actual, 1e-10, "x=%v", x)
	}
}

// A Hessian-vector product must not disturb the state of the cache:
// clearing the delta tag restores exactly the key set from before.
func TestDotHessianCacheHygiene(t *testing.T) {
	m := newH2Model(t)
	ham := m.rHF(t)
	dm := m.symmetricDM()

	energyAt(t, ham, dm)
	fock := linalg.NewTwoIndex(2)
	require.NoError(t, ham.ComputeFock(fock))
	before := ham.Cache().Keys()

	delta := m.coreGuessDM(t)
	delta.AddScaled(dm, -1.0)
	require.NoError(t, ham.ResetDelta(delta))
	dot := linalg.NewTwoIndex(2)
	require.NoError(t, ham.ComputeDotHessian(dot))
	assert.Greater(t, ham.Cache().Len(), len(before))

	ham.ClearTag("delta")
	assert.Equal(t, before, ham.Cache().Keys())

	// the non-delta entries survived, so the energy is still cached
	e1, err := ham.ComputeEnergy()
	require.NoError(t, err)
	e2 := energyAt(t, ham, dm)
	assert.InDelta(t, e2, e1, 1e-14)
}
