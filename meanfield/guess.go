// guess.go --  This file is part of the meanfield project.
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

import "github.com/theochem/meanfield/linalg"

// GuessCoreHamiltonian fills every orbital set with the eigenvectors
// of the core Hamiltonian, the standard starting point for an SCF.
// Occupations are not assigned; run an OccModel afterwards.
func GuessCoreHamiltonian(olp, core *linalg.TwoIndex, orbs ...*Orbitals) error {
	if len(orbs) == 0 {
		return consistencyErrorf("no orbital sets to fill")
	}
	for _, orb := range orbs {
		if err := orb.FromFock(core, olp); err != nil {
			return err
		}
	}
	return nil
}
