// response.go --  This file is part of the meanfield project.
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

// ComputeNonInteractingResponse returns the static response matrix of
// a non-interacting system for a set of one-body perturbation
// operators: element (i, j) is the first-order change of <op_i> under
// a perturbation along op_j, built from sum-over-states theory with
// the given converged orbitals. Degenerate orbital pairs contribute
// nothing.
func ComputeNonInteractingResponse(orb *Orbitals, operators []*linalg.TwoIndex) (*mat.Dense, error) {
	if len(operators) == 0 {
		return nil, consistencyErrorf("no perturbation operators")
	}
	nfn := orb.NFn()

	// operators in the molecular-orbital basis
	moOps := make([]*mat.Dense, len(operators))
	for k, op := range operators {
		if op.N() != orb.NBasis() {
			return nil, consistencyErrorf("operator %d has size %d, basis has %d functions", k, op.N(), orb.NBasis())
		}
		var tmp, mo mat.Dense
		tmp.Mul(op.Raw(), orb.Coeffs)
		mo.Mul(orb.Coeffs.T(), &tmp)
		moOps[k] = &mo
	}

	// (occ_p - occ_q) / (e_p - e_q), zero on the diagonal and for
	// degenerate pairs
	prefac := mat.NewDense(nfn, nfn, nil)
	for p := 0; p < nfn; p++ {
		for q := 0; q < nfn; q++ {
			if p == q {
				continue
			}
			de := orb.Energies[p] - orb.Energies[q]
			if de == 0 {
				continue
			}
			prefac.Set(p, q, (orb.Occupations[p]-orb.Occupations[q])/de)
		}
	}

	result := mat.NewDense(len(operators), len(operators), nil)
	for i := range moOps {
		for j := i; j < len(moOps); j++ {
			total := 0.0
			for p := 0; p < nfn; p++ {
				for q := 0; q < nfn; q++ {
					total += moOps[i].At(p, q) * moOps[j].At(q, p) * prefac.At(p, q)
				}
			}
			result.Set(i, j, total)
			result.Set(j, i, total)
		}
	}
	return result, nil
}
