// orbitals.go --  This file is part of the meanfield project.
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
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/theochem/meanfield/linalg"
)

// Orbitals holds one spin channel of a molecular-orbital expansion:
// the coefficient matrix (basis functions by orbitals, one orbital per
// column), the orbital energies and the occupation numbers.
type Orbitals struct {
	nbasis, nfn int

	Coeffs      *mat.Dense
	Energies    []float64
	Occupations []float64
}

// NewOrbitals returns empty orbitals with as many functions as basis
// vectors.
func NewOrbitals(nbasis int) *Orbitals {
	return NewOrbitalsNFn(nbasis, nbasis)
}

// NewOrbitalsNFn returns empty orbitals with nfn orbitals expanded in
// nbasis basis functions.
func NewOrbitalsNFn(nbasis, nfn int) *Orbitals {
	return &Orbitals{
		nbasis:      nbasis,
		nfn:         nfn,
		Coeffs:      mat.NewDense(nbasis, nfn, nil),
		Energies:    make([]float64, nfn),
		Occupations: make([]float64, nfn),
	}
}

func (o *Orbitals) NBasis() int { return o.nbasis }
func (o *Orbitals) NFn() int    { return o.nfn }

// Copy returns an independent deep copy.
func (o *Orbitals) Copy() *Orbitals {
	out := NewOrbitalsNFn(o.nbasis, o.nfn)
	out.Coeffs.Copy(o.Coeffs)
	copy(out.Energies, o.Energies)
	copy(out.Occupations, o.Occupations)
	return out
}

// FromFock replaces the coefficients and energies by the solution of
// the generalized eigenproblem fock C = olp C diag(e). Occupations are
// left untouched; assigning them is the job of an OccModel.
func (o *Orbitals) FromFock(fock, olp *linalg.TwoIndex) error {
	vals, coeffs, err := linalg.Diagonalize(fock, olp)
	if err != nil {
		return err
	}
	o.setCoeffs(coeffs)
	copy(o.Energies, vals[:o.nfn])
	return nil
}

// setCoeffs installs the full eigenvector matrix, keeping only the
// first nfn columns for truncated expansions.
func (o *Orbitals) setCoeffs(coeffs *mat.Dense) {
	if o.nfn == o.nbasis {
		o.Coeffs = coeffs
		return
	}
	o.Coeffs.Copy(coeffs.Slice(0, o.nbasis, 0, o.nfn))
}

// ToDM overwrites out with the density matrix C diag(occ) C^T.
func (o *Orbitals) ToDM(out *linalg.TwoIndex) {
	for i := 0; i < o.nbasis; i++ {
		for j := 0; j < o.nbasis; j++ {
			total := 0.0
			for k := 0; k < o.nfn; k++ {
				total += o.Occupations[k] * o.Coeffs.At(i, k) * o.Coeffs.At(j, k)
			}
			out.Set(i, j, total)
		}
	}
}

// DM returns a freshly allocated density matrix.
func (o *Orbitals) DM() *linalg.TwoIndex {
	out := linalg.NewTwoIndex(o.nbasis)
	o.ToDM(out)
	return out
}

// DeriveNaturals replaces the orbitals by the natural orbitals of dm in
// the metric olp. The occupation numbers become the eigenvalues of the
// density matrix, in ascending order. Energies are zeroed.
func (o *Orbitals) DeriveNaturals(dm, olp *linalg.TwoIndex) error {
	// S D S plays the role of the Fock matrix: (S D S) C = S C diag(n).
	sds := levelShift(dm, olp)
	vals, coeffs, err := linalg.Diagonalize(sds, olp)
	if err != nil {
		return err
	}
	o.setCoeffs(coeffs)
	copy(o.Occupations, vals[:o.nfn])
	for i := range o.Energies {
		o.Energies[i] = 0
	}
	return nil
}

// CheckNormalization verifies that every occupied orbital is
// normalized in the overlap metric to within eps.
func (o *Orbitals) CheckNormalization(olp *linalg.TwoIndex, eps float64) error {
	var stmp, norm mat.Dense
	stmp.Mul(olp.Raw(), o.Coeffs)
	norm.Mul(o.Coeffs.T(), &stmp)
	for k, occ := range o.Occupations {
		if occ == 0 {
			continue
		}
		if v := norm.At(k, k); math.Abs(v-1.0) > eps {
			return consistencyErrorf("orbital %d has norm %v", k, v)
		}
	}
	return nil
}

// OccupiedCount returns the number of orbitals with a nonzero
// occupation.
func (o *Orbitals) OccupiedCount() int {
	n := 0
	for _, v := range o.Occupations {
		if v > 0 {
			n++
		}
	}
	return n
}

// HomoEnergy returns the highest orbital energy with nonzero
// occupation. The second return value is false when nothing is
// occupied.
func (o *Orbitals) HomoEnergy() (float64, bool) {
	best := 0.0
	found := false
	for i, occ := range o.Occupations {
		if occ > 0 && (!found || o.Energies[i] > best) {
			best = o.Energies[i]
			found = true
		}
	}
	return best, found
}

// LumoEnergy returns the lowest orbital energy with zero occupation.
// The second return value is false when every orbital is occupied.
func (o *Orbitals) LumoEnergy() (float64, bool) {
	best := 0.0
	found := false
	for i, occ := range o.Occupations {
		if occ == 0 && (!found || o.Energies[i] < best) {
			best = o.Energies[i]
			found = true
		}
	}
	return best, found
}
