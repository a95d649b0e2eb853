// convergence.go --  This file is part of the meanfield project.
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
	"gonum.org/v1/gonum/mat"

	"github.com/theochem/meanfield/linalg"
)

// ConvergenceErrorCommutator measures how far the given density
// matrices are from self-consistency under ham: the largest absolute
// element of F D S - S D F over all spin channels. The Hamiltonian
// cache is cleared and reset to the given matrices.
func ConvergenceErrorCommutator(ham *EffHam, olp *linalg.TwoIndex, dms ...*linalg.TwoIndex) (float64, error) {
	ham.Clear()
	if err := ham.Reset(dms...); err != nil {
		return 0, err
	}
	focks := make([]*linalg.TwoIndex, ham.NDM())
	for i := range focks {
		focks[i] = linalg.NewTwoIndex(olp.N())
	}
	if err := ham.ComputeFock(focks...); err != nil {
		return 0, err
	}
	worst := 0.0
	for i := range focks {
		if v := Commutator(focks[i], dms[i], olp).NormInf(); v > worst {
			worst = v
		}
	}
	return worst, nil
}

// ConvergenceErrorEigen measures self-consistency through the
// occupation-weighted eigenvalue residual F C n - S C n diag(e), where
// C, e, n come from the given orbitals. The Hamiltonian cache is
// cleared and reset to the density matrices of the orbitals.
func ConvergenceErrorEigen(ham *EffHam, olp *linalg.TwoIndex, orbs ...*Orbitals) (float64, error) {
	if len(orbs) != ham.NDM() {
		return 0, consistencyErrorf("got %d orbital sets, expected %d", len(orbs), ham.NDM())
	}
	dms := make([]*linalg.TwoIndex, len(orbs))
	for i, orb := range orbs {
		dms[i] = orb.DM()
	}
	ham.Clear()
	if err := ham.Reset(dms...); err != nil {
		return 0, err
	}
	focks := make([]*linalg.TwoIndex, ham.NDM())
	for i := range focks {
		focks[i] = linalg.NewTwoIndex(olp.N())
	}
	if err := ham.ComputeFock(focks...); err != nil {
		return 0, err
	}
	worst := 0.0
	for i, orb := range orbs {
		if v := eigenResidual(focks[i], olp, orb); v > worst {
			worst = v
		}
	}
	return worst, nil
}

func eigenResidual(fock, olp *linalg.TwoIndex, orb *Orbitals) float64 {
	n, nfn := orb.NBasis(), orb.NFn()
	weighted := mat.NewDense(n, nfn, nil)
	for j := 0; j < nfn; j++ {
		for i := 0; i < n; i++ {
			weighted.Set(i, j, orb.Occupations[j]*orb.Coeffs.At(i, j))
		}
	}
	var lhs, rhs mat.Dense
	lhs.Mul(fock.Raw(), weighted)
	rhs.Mul(olp.Raw(), weighted)
	for j := 0; j < nfn; j++ {
		for i := 0; i < n; i++ {
			rhs.Set(i, j, rhs.At(i, j)*orb.Energies[j])
		}
	}
	var diff mat.Dense
	diff.Sub(&lhs, &rhs)
	worst := 0.0
	for j := 0; j < nfn; j++ {
		for i := 0; i < n; i++ {
			if v := diff.At(i, j); v > worst {
				worst = v
			} else if -v > worst {
				worst = -v
			}
		}
	}
	return worst
}
