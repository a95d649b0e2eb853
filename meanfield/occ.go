// occ.go --  This file is part of the meanfield project.
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

import "math"

// OccModel assigns occupation numbers to freshly diagonalized
// orbitals. Implementations expect one Orbitals argument per spin
// channel of the Hamiltonian they are used with.
type OccModel interface {
	Assign(orbs ...*Orbitals) error
}

// AufbauOccModel fills the lowest orbitals of each spin channel with
// a fixed (possibly fractional) number of electrons. For restricted
// Hamiltonians the single count is the number of electron pairs.
type AufbauOccModel struct {
	counts []float64
}

// NewAufbauOccModel builds an aufbau model from one count per spin
// channel. Counts must be nonnegative and not all zero.
func NewAufbauOccModel(counts ...float64) (*AufbauOccModel, error) {
	if len(counts) == 0 {
		return nil, electronCountErrorf("aufbau model needs at least one electron count")
	}
	total := 0.0
	for _, c := range counts {
		if c < 0 {
			return nil, electronCountErrorf("negative electron count %v", c)
		}
		total += c
	}
	if total == 0 {
		return nil, electronCountErrorf("aufbau model with zero electrons")
	}
	return &AufbauOccModel{counts: append([]float64(nil), counts...)}, nil
}

func (m *AufbauOccModel) Assign(orbs ...*Orbitals) error {
	if len(orbs) != len(m.counts) {
		return consistencyErrorf("aufbau model got %d orbital sets, expected %d", len(orbs), len(m.counts))
	}
	for i, orb := range orbs {
		nocc := m.counts[i]
		nint := int(math.Floor(nocc))
		frac := nocc - float64(nint)
		needed := nint
		if frac > 0 {
			needed++
		}
		if needed > orb.NFn() {
			return electronCountErrorf("%v electrons do not fit in %d orbitals", nocc, orb.NFn())
		}
		if err := checkAscending(orb.Energies); err != nil {
			return err
		}
		for j := range orb.Occupations {
			switch {
			case j < nint:
				orb.Occupations[j] = 1.0
			case j == nint:
				orb.Occupations[j] = frac
			default:
				orb.Occupations[j] = 0.0
			}
		}
	}
	return nil
}

func checkAscending(energies []float64) error {
	for i := 1; i < len(energies); i++ {
		if energies[i] < energies[i-1]-1e-12 {
			return consistencyErrorf("orbital energies are not sorted: e[%d]=%v > e[%d]=%v",
				i-1, energies[i-1], i, energies[i])
		}
	}
	return nil
}

// AufbauSpinOccModel distributes a total number of electrons over two
// spin channels, always occupying the lower of the two next available
// orbital energies. The spin polarization follows from the orbital
// energies of the current iteration, so it can change during the SCF.
type AufbauSpinOccModel struct {
	nel int
}

func NewAufbauSpinOccModel(nel int) (*AufbauSpinOccModel, error) {
	if nel <= 0 {
		return nil, electronCountErrorf("aufbau spin model needs a positive electron count, got %d", nel)
	}
	return &AufbauSpinOccModel{nel: nel}, nil
}

func (m *AufbauSpinOccModel) Assign(orbs ...*Orbitals) error {
	if len(orbs) != 2 {
		return consistencyErrorf("aufbau spin model needs two orbital sets, got %d", len(orbs))
	}
	alpha, beta := orbs[0], orbs[1]
	if err := checkAscending(alpha.Energies); err != nil {
		return err
	}
	if err := checkAscending(beta.Energies); err != nil {
		return err
	}
	for j := range alpha.Occupations {
		alpha.Occupations[j] = 0
	}
	for j := range beta.Occupations {
		beta.Occupations[j] = 0
	}
	ia, ib := 0, 0
	for k := 0; k < m.nel; k++ {
		switch {
		case ia < alpha.NFn() && (ib >= beta.NFn() || alpha.Energies[ia] <= beta.Energies[ib]):
			alpha.Occupations[ia] = 1.0
			ia++
		case ib < beta.NFn():
			beta.Occupations[ib] = 1.0
			ib++
		default:
			return electronCountErrorf("%d electrons do not fit in %d+%d orbitals",
				m.nel, alpha.NFn(), beta.NFn())
		}
	}
	return nil
}

// FixedOccModel assigns a preset occupation vector to each spin
// channel, useful for non-aufbau states and fractional-occupation
// experiments.
type FixedOccModel struct {
	occs [][]float64
}

func NewFixedOccModel(occs ...[]float64) (*FixedOccModel, error) {
	if len(occs) == 0 {
		return nil, electronCountErrorf("fixed model needs at least one occupation vector")
	}
	copied := make([][]float64, len(occs))
	for i, v := range occs {
		for _, occ := range v {
			if occ < 0 || occ > 1 {
				return nil, electronCountErrorf("occupation %v outside [0, 1]", occ)
			}
		}
		copied[i] = append([]float64(nil), v...)
	}
	return &FixedOccModel{occs: copied}, nil
}

func (m *FixedOccModel) Assign(orbs ...*Orbitals) error {
	if len(orbs) != len(m.occs) {
		return consistencyErrorf("fixed model got %d orbital sets, expected %d", len(orbs), len(m.occs))
	}
	for i, orb := range orbs {
		if len(m.occs[i]) > orb.NFn() {
			return electronCountErrorf("occupation vector of length %d does not fit in %d orbitals",
				len(m.occs[i]), orb.NFn())
		}
		for j := range orb.Occupations {
			if j < len(m.occs[i]) {
				orb.Occupations[j] = m.occs[i][j]
			} else {
				orb.Occupations[j] = 0
			}
		}
	}
	return nil
}

// SetupAufbau builds the conventional occupation model for a given
// electron count and spin multiplicity. Restricted calculations
// require a singlet; unrestricted ones get an aufbau model with
// (nel+mult-1)/2 alpha and (nel-mult+1)/2 beta electrons.
func SetupAufbau(nel, mult int, restricted bool) (OccModel, error) {
	if nel <= 0 {
		return nil, electronCountErrorf("positive electron count required, got %d", nel)
	}
	if mult < 1 {
		return nil, electronCountErrorf("multiplicity must be at least 1, got %d", mult)
	}
	if (nel+mult)%2 != 1 {
		return nil, electronCountErrorf("electron count %d and multiplicity %d are incompatible", nel, mult)
	}
	if restricted {
		if mult != 1 {
			return nil, electronCountErrorf("restricted calculations require a singlet, got multiplicity %d", mult)
		}
		return NewAufbauOccModel(float64(nel) / 2)
	}
	nalpha := (nel + mult - 1) / 2
	nbeta := nel - nalpha
	if nbeta < 0 {
		return nil, electronCountErrorf("multiplicity %d too high for %d electrons", mult, nel)
	}
	return NewAufbauOccModel(float64(nalpha), float64(nbeta))
}
