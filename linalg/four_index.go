// four_index.go --  This file is part of the meanfield project.
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
package linalg

// FourIndex holds a dense rank-four tensor over the orbital basis. The
// index convention is fixed by the two contraction methods below, which
// are the only access patterns the mean-field terms use. Storage is a
// flat slice indexed as ((a*n+b)*n+c)*n+d.
type FourIndex struct {
	n    int
	data []float64
}

// NewFourIndex returns a zeroed rank-four tensor with n basis functions
// per index.
func NewFourIndex(n int) *FourIndex {
	return &FourIndex{n: n, data: make([]float64, n*n*n*n)}
}

func (f *FourIndex) N() int { return f.n }

func (f *FourIndex) At(a, b, c, d int) float64 {
	return f.data[((a*f.n+b)*f.n+c)*f.n+d]
}

func (f *FourIndex) Set(a, b, c, d int, v float64) {
	f.data[((a*f.n+b)*f.n+c)*f.n+d] = v
}

// ContractDirect overwrites out with the Coulomb-type contraction
// out_ac = sum_bd f_abcd dm_bd.
func (f *FourIndex) ContractDirect(dm, out *TwoIndex) {
	n := f.n
	for a := 0; a < n; a++ {
		for c := 0; c < n; c++ {
			total := 0.0
			for b := 0; b < n; b++ {
				for d := 0; d < n; d++ {
					total += f.At(a, b, c, d) * dm.At(b, d)
				}
			}
			out.Set(a, c, total)
		}
	}
}

// ContractExchange overwrites out with the exchange-type contraction
// out_ad = sum_bc f_abcd dm_cb.
func (f *FourIndex) ContractExchange(dm, out *TwoIndex) {
	n := f.n
	for a := 0; a < n; a++ {
		for d := 0; d < n; d++ {
			total := 0.0
			for b := 0; b < n; b++ {
				for c := 0; c < n; c++ {
					total += f.At(a, b, c, d) * dm.At(c, b)
				}
			}
			out.Set(a, d, total)
		}
	}
}
