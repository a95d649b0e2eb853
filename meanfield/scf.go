// scf.go --  This file is part of the meanfield project.
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
	"log/slog"

	"github.com/theochem/meanfield/linalg"
)

// PlainSCF is the textbook self-consistent field loop: build the Fock
// matrices, diagonalize, reoccupy, repeat. It works on orbitals and
// converges when the largest element of the commutator F D S - S D F
// drops below Threshold.
type PlainSCF struct {
	// Threshold is the convergence criterion on the commutator
	// residual. Zero means the 1e-8 default.
	Threshold float64
	// MaxIter caps the number of Fock builds. Zero or negative means
	// no cap.
	MaxIter int
	// SkipEnergy suppresses the final energy evaluation.
	SkipEnergy bool
	Logger     *slog.Logger
}

func (s *PlainSCF) threshold() float64 {
	if s.Threshold > 0 {
		return s.Threshold
	}
	return 1e-8
}

func (s *PlainSCF) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Solve iterates ham to self-consistency, one orbital set per spin
// channel. The orbitals must hold a valid guess with occupations
// already assigned by occ. On success it returns the number of
// iterations spent; when the iteration cap is hit it returns a
// *NoConvergenceError and leaves the current state in the orbitals so
// the caller can continue.
func (s *PlainSCF) Solve(ham *EffHam, olp *linalg.TwoIndex, occ OccModel, orbs ...*Orbitals) (int, error) {
	if len(orbs) != ham.NDM() {
		return 0, consistencyErrorf("got %d orbital sets, expected %d", len(orbs), ham.NDM())
	}
	log := s.logger()
	threshold := s.threshold()

	n := olp.N()
	focks := make([]*linalg.TwoIndex, ham.NDM())
	dms := make([]*linalg.TwoIndex, ham.NDM())
	for i := range focks {
		focks[i] = linalg.NewTwoIndex(n)
		dms[i] = linalg.NewTwoIndex(n)
	}

	log.Debug("plain scf started", "threshold", threshold, "maxiter", s.MaxIter)
	counter := 0
	converged := false
	residual := 0.0
	for s.MaxIter <= 0 || counter < s.MaxIter {
		for i, orb := range orbs {
			orb.ToDM(dms[i])
		}
		ham.Clear()
		if err := ham.Reset(dms...); err != nil {
			return counter, err
		}
		if err := ham.ComputeFock(focks...); err != nil {
			return counter, err
		}

		residual = 0.0
		for i := range focks {
			if v := Commutator(focks[i], dms[i], olp).NormInf(); v > residual {
				residual = v
			}
		}
		log.Debug("plain scf iteration", "iter", counter, "residual", residual)

		// diagonalize before the convergence exit: the returned
		// energies must belong to the final Fock matrices even when
		// the guess is already stationary
		for i, orb := range orbs {
			if err := orb.FromFock(focks[i], olp); err != nil {
				return counter, err
			}
		}
		if err := occ.Assign(orbs...); err != nil {
			return counter, err
		}
		if residual < threshold {
			converged = true
			break
		}
		counter++
	}

	if !converged {
		return counter, &NoConvergenceError{Iterations: counter, Residual: residual}
	}
	if !s.SkipEnergy {
		energy, err := ham.ComputeEnergy()
		if err != nil {
			return counter, err
		}
		log.Debug("plain scf converged", "iter", counter, "energy", energy)
	} else {
		log.Debug("plain scf converged", "iter", counter)
	}
	return counter, nil
}
