// errors.go --  This file is part of the meanfield project.
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

import "fmt"

// NoConvergenceError reports that an SCF solver ran out of iterations
// before reaching its threshold. The caller can inspect the last
// residual and decide to continue from the current state.
type NoConvergenceError struct {
	Iterations int
	Residual   float64
}

func (e *NoConvergenceError) Error() string {
	return fmt.Sprintf("scf: no convergence after %d iterations (residual %.3e)", e.Iterations, e.Residual)
}

// ConsistencyError reports an internally inconsistent state, such as a
// density matrix with unphysical occupation numbers or a converged
// optimal-damping step whose gradient does not vanish. It always means
// the inputs or the calling protocol are broken, not that more
// iterations are needed.
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string { return "meanfield: " + e.Msg }

func consistencyErrorf(format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Msg: fmt.Sprintf(format, args...)}
}

// ElectronCountError reports an occupation-model configuration that
// cannot be realized, such as a negative electron count or more
// electrons than basis functions.
type ElectronCountError struct {
	Msg string
}

func (e *ElectronCountError) Error() string { return "meanfield: " + e.Msg }

func electronCountErrorf(format string, args ...any) *ElectronCountError {
	return &ElectronCountError{Msg: fmt.Sprintf(format, args...)}
}
