// eigen.go --  This file is part of the meanfield project.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// minOverlapEig guards the symmetric orthogonalization against a
// numerically singular overlap matrix.
const minOverlapEig = 1e-12

func toSym(t *TwoIndex) *mat.SymDense {
	n := t.N()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(t.At(i, j)+t.At(j, i)))
		}
	}
	return s
}

// SqrtInvSym returns S^(-1/2) for a symmetric positive definite matrix,
// built from the eigendecomposition of S. An error is returned when S
// has an eigenvalue at or below the singularity guard, which happens
// for (nearly) linearly dependent basis sets.
func SqrtInvSym(s *TwoIndex) (*TwoIndex, error) {
	n := s.N()
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(toSym(s), true); !ok {
		return nil, fmt.Errorf("linalg: overlap eigendecomposition failed")
	}
	vals := eigsym.Values(nil)
	var vecs mat.Dense
	eigsym.VectorsTo(&vecs)

	invSqrt := make([]float64, n)
	for i, v := range vals {
		if v <= minOverlapEig {
			return nil, fmt.Errorf("linalg: overlap matrix is (nearly) singular: eigenvalue %e", v)
		}
		invSqrt[i] = 1.0 / math.Sqrt(v)
	}
	diag := mat.NewDiagDense(n, invSqrt)

	out := NewTwoIndex(n)
	var tmp mat.Dense
	tmp.Mul(&vecs, diag)
	out.data.Mul(&tmp, vecs.T())
	return out, nil
}

// Diagonalize solves the generalized symmetric eigenvalue problem
// F C = S C diag(e) by symmetric orthogonalization: with X = S^(-1/2),
// the ordinary problem (X F X) V = V diag(e) is solved and C = X V.
// Eigenvalues come out in ascending order; column i of C is the
// eigenvector for e[i].
func Diagonalize(f, s *TwoIndex) ([]float64, *mat.Dense, error) {
	x, err := SqrtInvSym(s)
	if err != nil {
		return nil, nil, err
	}
	var fPrime mat.Dense
	fPrime.Mul(x.data, f.data)
	fPrime.Mul(&fPrime, x.data)

	fSym := toSym(&TwoIndex{n: f.N(), data: &fPrime})
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(fSym, true); !ok {
		return nil, nil, fmt.Errorf("linalg: fock eigendecomposition failed")
	}
	vals := eigsym.Values(nil)
	var vecs mat.Dense
	eigsym.VectorsTo(&vecs)

	coeffs := mat.NewDense(f.N(), f.N(), nil)
	coeffs.Mul(x.data, &vecs)
	return vals, coeffs, nil
}

// PInv returns the Moore-Penrose pseudo-inverse computed through a thin
// SVD. Singular values at or below eps times the largest one are
// treated as zero.
func PInv(a mat.Matrix, eps float64) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("linalg: SVD failed")
	}
	vals := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	cutoff := 0.0
	if len(vals) > 0 {
		cutoff = eps * vals[0]
	}
	inv := make([]float64, len(vals))
	for i, sv := range vals {
		if sv > cutoff {
			inv[i] = 1.0 / sv
		}
	}
	diag := mat.NewDiagDense(len(vals), inv)

	var tmp, out mat.Dense
	tmp.Mul(&v, diag)
	out.Mul(&tmp, u.T())
	return &out, nil
}
