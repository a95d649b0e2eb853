// two_index.go --  This file is part of the meanfield project.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

// TwoIndex is a dense real matrix over a finite orbital basis. Overlap,
// core Hamiltonian, Fock and density matrices are all stored this way.
// The type does not enforce symmetry; the callers that need it keep it
// symmetric by construction.
type TwoIndex struct {
	n    int
	data *mat.Dense
}

// NewTwoIndex returns a zeroed n by n matrix.
func NewTwoIndex(n int) *TwoIndex {
	return &TwoIndex{n: n, data: mat.NewDense(n, n, nil)}
}

// NewTwoIndexFrom copies a row-major square slice into a TwoIndex.
func NewTwoIndexFrom(rows [][]float64) *TwoIndex {
	n := len(rows)
	t := NewTwoIndex(n)
	for i := range rows {
		for j := range rows[i] {
			t.data.Set(i, j, rows[i][j])
		}
	}
	return t
}

func (t *TwoIndex) N() int { return t.n }

func (t *TwoIndex) At(i, j int) float64 { return t.data.At(i, j) }

func (t *TwoIndex) Set(i, j int, v float64) { t.data.Set(i, j, v) }

// Raw exposes the backing gonum matrix for callers that need to feed it
// into mat routines directly.
func (t *TwoIndex) Raw() *mat.Dense { return t.data }

// Zero resets every element to zero.
func (t *TwoIndex) Zero() { t.data.Zero() }

// Copy returns an independent deep copy.
func (t *TwoIndex) Copy() *TwoIndex {
	out := NewTwoIndex(t.n)
	out.data.Copy(t.data)
	return out
}

// Assign overwrites t with the contents of other.
func (t *TwoIndex) Assign(other *TwoIndex) { t.data.Copy(other.data) }

// Add accumulates other into t.
func (t *TwoIndex) Add(other *TwoIndex) { t.data.Add(t.data, other.data) }

// AddScaled accumulates s*other into t.
func (t *TwoIndex) AddScaled(other *TwoIndex, s float64) {
	var tmp mat.Dense
	tmp.Scale(s, other.data)
	t.data.Add(t.data, &tmp)
}

// Scale multiplies every element by s.
func (t *TwoIndex) Scale(s float64) { t.data.Scale(s, t.data) }

// Contract returns the elementwise contraction sum_ab t_ab other_ab.
func (t *TwoIndex) Contract(other *TwoIndex) float64 {
	total := 0.0
	for i := 0; i < t.n; i++ {
		for j := 0; j < t.n; j++ {
			total += t.data.At(i, j) * other.data.At(i, j)
		}
	}
	return total
}

// NormInf returns the largest absolute element.
func (t *TwoIndex) NormInf() float64 {
	maxAbs := 0.0
	for i := 0; i < t.n; i++ {
		for j := 0; j < t.n; j++ {
			if v := math.Abs(t.data.At(i, j)); v > maxAbs {
				maxAbs = v
			}
		}
	}
	return maxAbs
}

// NormFrob returns the Frobenius norm.
func (t *TwoIndex) NormFrob() float64 {
	return mat.Norm(t.data, 2)
}

// DistanceFrob returns the Frobenius norm of t-other.
func (t *TwoIndex) DistanceFrob(other *TwoIndex) float64 {
	var diff mat.Dense
	diff.Sub(t.data, other.data)
	return mat.Norm(&diff, 2)
}

// Symmetrize replaces t with (t + t^T)/2.
func (t *TwoIndex) Symmetrize() {
	for i := 0; i < t.n; i++ {
		for j := i + 1; j < t.n; j++ {
			v := 0.5 * (t.data.At(i, j) + t.data.At(j, i))
			t.data.Set(i, j, v)
			t.data.Set(j, i, v)
		}
	}
}

// Trace returns the sum of the diagonal elements.
func (t *TwoIndex) Trace() float64 {
	total := 0.0
	for i := 0; i < t.n; i++ {
		total += t.data.At(i, i)
	}
	return total
}
