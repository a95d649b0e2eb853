// project.go --  This file is part of the meanfield project.
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

// ProjectOrbitals carries the occupied orbitals of src, expanded in an
// old basis, over into dst, expanded in a new basis. olp21 is the
// mixed overlap matrix (new basis rows, old basis columns) and olp22
// the overlap of the new basis. The projected orbitals are
// orthogonalized against each other with modified Gram-Schmidt in the
// olp22 metric; when a projected orbital is (nearly) linearly
// dependent on the previous ones its norm drops below eps and a
// ConsistencyError is returned. Unoccupied dst orbitals are zeroed.
func ProjectOrbitals(olp21 *mat.Dense, olp22 *linalg.TwoIndex, src, dst *Orbitals, eps float64) error {
	if eps <= 0 {
		eps = 1e-10
	}
	inv22, err := linalg.PInv(olp22.Raw(), 1e-12)
	if err != nil {
		return err
	}
	var projector mat.Dense
	projector.Mul(inv22, olp21)

	n2 := dst.NBasis()
	dot22 := func(x, y []float64) float64 {
		total := 0.0
		for i := 0; i < n2; i++ {
			for j := 0; j < n2; j++ {
				total += x[i] * olp22.At(i, j) * y[j]
			}
		}
		return total
	}

	var kept [][]float64
	idst := 0
	for isrc := 0; isrc < src.NFn() && idst < dst.NFn(); isrc++ {
		if src.Occupations[isrc] == 0 {
			continue
		}
		orb := make([]float64, n2)
		for i := 0; i < n2; i++ {
			total := 0.0
			for j := 0; j < src.NBasis(); j++ {
				total += projector.At(i, j) * src.Coeffs.At(j, isrc)
			}
			orb[i] = total
		}
		// orthogonalize against the already accepted orbitals
		for _, other := range kept {
			overlap := dot22(other, orb)
			for i := range orb {
				orb[i] -= overlap * other[i]
			}
		}
		norm := math.Sqrt(dot22(orb, orb))
		if norm < eps {
			return consistencyErrorf("projected orbital %d is linearly dependent on the previous ones", isrc)
		}
		for i := range orb {
			orb[i] /= norm
		}
		kept = append(kept, orb)

		for i := 0; i < n2; i++ {
			dst.Coeffs.Set(i, idst, orb[i])
		}
		dst.Occupations[idst] = src.Occupations[isrc]
		dst.Energies[idst] = 0
		idst++
	}
	for ; idst < dst.NFn(); idst++ {
		for i := 0; i < n2; i++ {
			dst.Coeffs.Set(i, idst, 0)
		}
		dst.Occupations[idst] = 0
		dst.Energies[idst] = 0
	}
	return nil
}
