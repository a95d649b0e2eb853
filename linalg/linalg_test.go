// linalg_test.go --  This file is part of the meanfield project.
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
package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTwoIndexBasics(t *testing.T) {
	a := NewTwoIndexFrom([][]float64{{1, 2}, {3, 4}})
	b := NewTwoIndexFrom([][]float64{{1, 0}, {0, 1}})

	assert.Equal(t, 2, a.N())
	assert.InDelta(t, 5.0, a.Contract(b), 1e-14)
	assert.InDelta(t, 5.0, a.Trace(), 1e-14)
	assert.InDelta(t, 4.0, a.NormInf(), 1e-14)

	c := a.Copy()
	c.Add(b)
	assert.InDelta(t, 2.0, c.At(0, 0), 1e-14)
	assert.InDelta(t, 1.0, a.At(0, 0), 1e-14)

	c.AddScaled(b, -2.0)
	assert.InDelta(t, 0.0, c.At(0, 0), 1e-14)
	assert.InDelta(t, 2.0, c.At(0, 1), 1e-14)

	c.Zero()
	assert.InDelta(t, 0.0, c.NormInf(), 1e-14)

	d := NewTwoIndexFrom([][]float64{{0, 1}, {3, 0}})
	d.Symmetrize()
	assert.InDelta(t, 2.0, d.At(0, 1), 1e-14)
	assert.InDelta(t, 2.0, d.At(1, 0), 1e-14)

	assert.InDelta(t, 0.0, a.DistanceFrob(a), 1e-14)
	assert.Greater(t, a.DistanceFrob(b), 1.0)
}

func TestFourIndexContractions(t *testing.T) {
	f := NewFourIndex(2)
	f.Set(0, 1, 0, 1, 3.0)
	f.Set(1, 0, 1, 1, 2.0)

	dm := NewTwoIndexFrom([][]float64{{1, 2}, {3, 4}})

	// direct: out_ac = sum_bd f_abcd dm_bd
	direct := NewTwoIndex(2)
	f.ContractDirect(dm, direct)
	assert.InDelta(t, 3.0*dm.At(1, 1), direct.At(0, 0), 1e-14)
	assert.InDelta(t, 2.0*dm.At(0, 1), direct.At(1, 1), 1e-14)
	assert.InDelta(t, 0.0, direct.At(0, 1), 1e-14)

	// exchange: out_ad = sum_bc f_abcd dm_cb
	exch := NewTwoIndex(2)
	f.ContractExchange(dm, exch)
	assert.InDelta(t, 3.0*dm.At(0, 1), exch.At(0, 1), 1e-14)
	assert.InDelta(t, 2.0*dm.At(1, 0), exch.At(1, 1), 1e-14)
	assert.InDelta(t, 0.0, exch.At(0, 0), 1e-14)
}

func TestSqrtInvSym(t *testing.T) {
	s := NewTwoIndexFrom([][]float64{{1.0, 0.5}, {0.5, 1.0}})
	x, err := SqrtInvSym(s)
	require.NoError(t, err)

	// X S X must be the identity.
	var tmp, prod mat.Dense
	tmp.Mul(x.Raw(), s.Raw())
	prod.Mul(&tmp, x.Raw())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, prod.At(i, j), 1e-12)
		}
	}
}

func TestSqrtInvSymSingular(t *testing.T) {
	s := NewTwoIndexFrom([][]float64{{1.0, 1.0}, {1.0, 1.0}})
	_, err := SqrtInvSym(s)
	assert.Error(t, err)
}

func TestDiagonalize(t *testing.T) {
	f := NewTwoIndexFrom([][]float64{{-1.0, 0.2}, {0.2, 0.5}})
	s := NewTwoIndexFrom([][]float64{{1.0, 0.3}, {0.3, 1.0}})

	vals, coeffs, err := Diagonalize(f, s)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.LessOrEqual(t, vals[0], vals[1])

	// residual F C - S C diag(e) must vanish
	n := 2
	diag := mat.NewDiagDense(n, vals)
	var lhs, rhs, tmp mat.Dense
	lhs.Mul(f.Raw(), coeffs)
	tmp.Mul(s.Raw(), coeffs)
	rhs.Mul(&tmp, diag)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.InDelta(t, rhs.At(i, j), lhs.At(i, j), 1e-12)
		}
	}

	// eigenvectors are orthonormal in the S metric
	var ortho mat.Dense
	tmp.Mul(s.Raw(), coeffs)
	ortho.Mul(coeffs.T(), &tmp)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, ortho.At(i, j), 1e-12)
		}
	}
}

func TestPInv(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 0, 0, 4})
	inv, err := PInv(a, 1e-12)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, inv.At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, inv.At(1, 1), 1e-12)
	assert.InDelta(t, 0.0, inv.At(0, 1), 1e-12)
}
