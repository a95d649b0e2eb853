// utils.go --  This file is part of the meanfield project.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/theochem/meanfield/linalg"
)

// levelShift returns S D S, the operator whose eigendecomposition in
// the S metric yields the natural orbitals of D.
func levelShift(dm, olp *linalg.TwoIndex) *linalg.TwoIndex {
	n := dm.N()
	out := linalg.NewTwoIndex(n)
	var tmp mat.Dense
	tmp.Mul(olp.Raw(), dm.Raw())
	out.Raw().Mul(&tmp, olp.Raw())
	return out
}

// LevelShift exposes S D S for callers that build level-shifted Fock
// operators.
func LevelShift(dm, olp *linalg.TwoIndex) *linalg.TwoIndex {
	return levelShift(dm, olp)
}

// Commutator returns F D S - S D F, the SCF residual operator. It
// vanishes at a self-consistent solution.
func Commutator(fock, dm, olp *linalg.TwoIndex) *linalg.TwoIndex {
	n := dm.N()
	out := linalg.NewTwoIndex(n)
	var fds, sdf, tmp mat.Dense
	tmp.Mul(fock.Raw(), dm.Raw())
	fds.Mul(&tmp, olp.Raw())
	tmp.Mul(olp.Raw(), dm.Raw())
	sdf.Mul(&tmp, fock.Raw())
	out.Raw().Sub(&fds, &sdf)
	return out
}

// CheckDM verifies that a density matrix has eigenvalues in
// [-eps, occMax+eps] in the given overlap metric. Optimal damping
// requires this of its inputs; a violation is a ConsistencyError.
func CheckDM(dm, olp *linalg.TwoIndex, eps, occMax float64) error {
	orb := NewOrbitals(dm.N())
	if err := orb.DeriveNaturals(dm, olp); err != nil {
		return err
	}
	occ := orb.Occupations
	if occ[len(occ)-1] > occMax+eps {
		return consistencyErrorf("density matrix has occupation %v above %v", occ[len(occ)-1], occMax)
	}
	if occ[0] < -eps {
		return consistencyErrorf("density matrix has negative occupation %v", occ[0])
	}
	return nil
}

// HomoLumo returns the aggregate frontier-orbital energies over all
// spin channels: the highest occupied and the lowest unoccupied one.
// hasLumo is false when every orbital of every channel is occupied.
func HomoLumo(orbs ...*Orbitals) (homo, lumo float64, hasLumo bool) {
	hasHomo := false
	for _, orb := range orbs {
		if e, ok := orb.HomoEnergy(); ok && (!hasHomo || e > homo) {
			homo = e
			hasHomo = true
		}
		if e, ok := orb.LumoEnergy(); ok && (!hasLumo || e < lumo) {
			lumo = e
			hasLumo = true
		}
	}
	return homo, lumo, hasLumo
}

// GetSpin returns the expectation values <S_z> and <S^2> for a pair of
// unrestricted orbital sets in the given overlap metric.
func GetSpin(alpha, beta *Orbitals, olp *linalg.TwoIndex) (sz, ssq float64) {
	nalpha := floats.Sum(alpha.Occupations)
	nbeta := floats.Sum(beta.Occupations)
	sz = 0.5 * (nalpha - nbeta)

	// overlap of occupied alpha with occupied beta orbitals
	var sAlpha mat.Dense
	sAlpha.Mul(olp.Raw(), beta.Coeffs)
	var corr mat.Dense
	corr.Mul(alpha.Coeffs.T(), &sAlpha)
	crossSq := 0.0
	for i, oa := range alpha.Occupations {
		if oa == 0 {
			continue
		}
		for j, ob := range beta.Occupations {
			if ob == 0 {
				continue
			}
			v := corr.At(i, j)
			crossSq += oa * ob * v * v
		}
	}
	ssq = sz*sz + 0.5*(nalpha+nbeta) - crossSq
	return sz, ssq
}
