// scf_oda.go --  This file is part of the meanfield project.
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
	"math"

	"github.com/theochem/meanfield/linalg"
)

// ODASCF is the optimal-damping SCF algorithm. Instead of replacing
// the density matrices by the aufbau ones, each iteration mixes them
// with the damping factor that minimizes a cubic interpolation of the
// energy along the line between the current and the aufbau state. The
// resulting fractional-occupation path descends monotonically for
// well-behaved Hamiltonians.
type ODASCF struct {
	// Threshold is the convergence criterion on the norm of the
	// density change. Zero means the 1e-6 default.
	Threshold float64
	// MaxIter caps the number of iterations. Zero or negative means
	// no cap.
	MaxIter int
	// Debug additionally evaluates the energy at the mixed state
	// every iteration and logs it against the cubic prediction.
	Debug  bool
	Logger *slog.Logger
}

func (s *ODASCF) threshold() float64 {
	if s.Threshold > 0 {
		return s.Threshold
	}
	return 1e-6
}

func (s *ODASCF) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Solve drives ham to self-consistency starting from the given density
// matrices, which are updated in place and must have natural
// occupations in [0, 1]. On success it returns the number of
// iterations spent. When the iteration cap is hit it returns a
// *NoConvergenceError with the state left in dms, so a second call
// continues where the first one stopped.
func (s *ODASCF) Solve(ham *EffHam, olp *linalg.TwoIndex, occ OccModel, dms ...*linalg.TwoIndex) (int, error) {
	if len(dms) != ham.NDM() {
		return 0, consistencyErrorf("got %d density matrices, expected %d", len(dms), ham.NDM())
	}
	for _, dm := range dms {
		if err := CheckDM(dm, olp, 1e-4, 1.0); err != nil {
			return 0, err
		}
	}
	log := s.logger()
	threshold := s.threshold()

	n := olp.N()
	ndm := ham.NDM()
	fock0s := make([]*linalg.TwoIndex, ndm)
	fock1s := make([]*linalg.TwoIndex, ndm)
	dm1s := make([]*linalg.TwoIndex, ndm)
	orbs := make([]*Orbitals, ndm)
	for i := 0; i < ndm; i++ {
		fock0s[i] = linalg.NewTwoIndex(n)
		fock1s[i] = linalg.NewTwoIndex(n)
		dm1s[i] = linalg.NewTwoIndex(n)
		orbs[i] = NewOrbitals(n)
	}

	log.Debug("oda scf started", "threshold", threshold, "maxiter", s.MaxIter)
	counter := 0
	converged := false
	residual := 0.0
	for s.MaxIter <= 0 || counter < s.MaxIter {
		// energy and fock at the current state
		ham.Clear()
		if err := ham.Reset(dms...); err != nil {
			return counter, err
		}
		e0, err := ham.ComputeEnergy()
		if err != nil {
			return counter, err
		}
		if err := ham.ComputeFock(fock0s...); err != nil {
			return counter, err
		}

		// aufbau state from the current fock matrices
		for i := range orbs {
			if err := orbs[i].FromFock(fock0s[i], olp); err != nil {
				return counter, err
			}
		}
		if err := occ.Assign(orbs...); err != nil {
			return counter, err
		}
		for i := range orbs {
			orbs[i].ToDM(dm1s[i])
		}

		// energy and fock at the aufbau state
		ham.Clear()
		if err := ham.Reset(dm1s...); err != nil {
			return counter, err
		}
		e1, err := ham.ComputeEnergy()
		if err != nil {
			return counter, err
		}
		if err := ham.ComputeFock(fock1s...); err != nil {
			return counter, err
		}

		// directional derivatives of the energy along dm0 -> dm1
		g0, g1 := 0.0, 0.0
		for i := 0; i < ndm; i++ {
			g0 += fock0s[i].Contract(dm1s[i]) - fock0s[i].Contract(dms[i])
			g1 += fock1s[i].Contract(dm1s[i]) - fock1s[i].Contract(dms[i])
		}
		g0 *= ham.DerivScale()
		g1 *= ham.DerivScale()

		mixing := findMinCubic(e0, e1, g0, g1)

		// damped update, tracking how far the state moved
		residual = 0.0
		for i := 0; i < ndm; i++ {
			residual += mixing * dm1s[i].DistanceFrob(dms[i])
			dms[i].Scale(1.0 - mixing)
			dms[i].AddScaled(dm1s[i], mixing)
		}
		log.Debug("oda scf iteration",
			"iter", counter, "energy", e0, "aufbau_energy", e1, "mixing", mixing, "residual", residual)

		if s.Debug {
			s.debugMixedEnergy(ham, dms, e0, e1, g0, g1, mixing, log)
		}

		if residual < threshold {
			// the directional gradient vanishes like the residual at
			// a true fixed point; a stall leaves it finite
			if math.Abs(g0) > math.Sqrt(threshold) {
				return counter, consistencyErrorf(
					"oda stalled with nonzero gradient %e; aufbau state coincides with current state", g0)
			}
			converged = true
			break
		}
		counter++
	}

	if !converged {
		return counter, &NoConvergenceError{Iterations: counter, Residual: residual}
	}
	// rebind the cache to the final damped state; the loop left it at
	// the last aufbau trial state
	ham.Clear()
	if err := ham.Reset(dms...); err != nil {
		return counter, err
	}
	if _, err := ham.ComputeEnergy(); err != nil {
		return counter, err
	}
	log.Debug("oda scf converged", "iter", counter)
	return counter, nil
}

// debugMixedEnergy compares the true energy at the mixed state with
// the cubic interpolation that chose the mixing factor.
func (s *ODASCF) debugMixedEnergy(ham *EffHam, dms []*linalg.TwoIndex, e0, e1, g0, g1, x float64, log *slog.Logger) {
	ham.Clear()
	if err := ham.Reset(dms...); err != nil {
		return
	}
	actual, err := ham.ComputeEnergy()
	if err != nil {
		return
	}
	d := e0
	c := g0
	a := g1 - 2.0*e1 + c + 2.0*d
	b := e1 - a - c - d
	predicted := a*x*x*x + b*x*x + c*x + d
	log.Debug("oda cubic check", "mixing", x, "predicted", predicted, "actual", actual,
		"mismatch", actual-predicted)
}

// findMinCubic locates the minimizer in [0, 1] of the cubic polynomial
// with values f0, f1 and derivatives g0, g1 at the endpoints. When the
// cubic has no interior minimum the better endpoint wins.
func findMinCubic(f0, f1, g0, g1 float64) float64 {
	// p(x) = a x^3 + b x^2 + c x + d
	d := f0
	c := g0
	a := g1 - 2.0*f1 + c + 2.0*d
	b := f1 - a - c - d

	disc := b*b - 3.0*a*c
	if disc >= 0 && math.Abs(a) > math.Abs(b)*1e-10 {
		sqrtDisc := math.Sqrt(disc)
		for _, x := range []float64{(-b + sqrtDisc) / (3.0 * a), (-b - sqrtDisc) / (3.0 * a)} {
			if x >= 0 && x <= 1 && 6.0*a*x+2.0*b > 0 {
				return x
			}
		}
	} else if math.Abs(a) <= math.Abs(b)*1e-10 && b > 0 {
		// quadratic limit
		x := -c / (2.0 * b)
		if x >= 0 && x <= 1 {
			return x
		}
	}
	if f0 < f1 {
		return 0.0
	}
	return 1.0
}
