// integrals.go --  This file is part of the meanfield project.
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
package gaussian

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"

	"github.com/theochem/meanfield/linalg"
)

// boys is the Boys function F_n(x), written through the regularized
// lower incomplete gamma function.
func boys(x float64, n int) float64 {
	nf := float64(n)
	if x == 0 {
		return 1.0 / (2.0*nf + 1.0)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) / (2.0 * math.Pow(x, nf+0.5))
}

// pair holds the Gaussian product quantities of two primitives.
type pair struct {
	p      float64    // total exponent
	center [3]float64 // product center
	pre    float64    // contraction, normalization and overlap prefactor
}

func makePair(a, b Primitive, ca, cb [3]float64) pair {
	p := a.Alpha + b.Alpha
	q := a.Alpha * b.Alpha / p
	var center [3]float64
	for k := 0; k < 3; k++ {
		center[k] = (a.Alpha*ca[k] + b.Alpha*cb[k]) / p
	}
	pre := a.Coeff * b.Coeff * a.normCoeff() * b.normCoeff() * math.Exp(-q*dist2(ca, cb))
	return pair{p: p, center: center, pre: pre}
}

// Overlap returns the overlap matrix S.
func (b *Basis) Overlap() *linalg.TwoIndex {
	n := b.NBasis()
	out := linalg.NewTwoIndex(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			total := 0.0
			for _, pa := range b.Shells[i].Primitives {
				for _, pb := range b.Shells[j].Primitives {
					pr := makePair(pa, pb, b.Shells[i].Center, b.Shells[j].Center)
					total += pr.pre * math.Pow(math.Pi/pr.p, 1.5)
				}
			}
			out.Set(i, j, total)
		}
	}
	return out
}

// Kinetic returns the kinetic-energy matrix T.
func (b *Basis) Kinetic() *linalg.TwoIndex {
	n := b.NBasis()
	out := linalg.NewTwoIndex(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			total := 0.0
			for _, pa := range b.Shells[i].Primitives {
				for _, pb := range b.Shells[j].Primitives {
					pr := makePair(pa, pb, b.Shells[i].Center, b.Shells[j].Center)
					s := pr.pre * math.Pow(math.Pi/pr.p, 1.5)
					total += 3.0 * pb.Alpha * s
					for k := 0; k < 3; k++ {
						pg := pr.center[k] - b.Shells[j].Center[k]
						total -= 2.0 * pb.Alpha * pb.Alpha * s * (pg*pg + 0.5/pr.p)
					}
				}
			}
			out.Set(i, j, total)
		}
	}
	return out
}

// NuclearAttraction returns the electron-nucleus attraction matrix,
// summed over all atoms. The matrix is negative definite for positive
// nuclear charges.
func (b *Basis) NuclearAttraction() *linalg.TwoIndex {
	n := b.NBasis()
	out := linalg.NewTwoIndex(n)
	for _, at := range b.Atoms {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				total := 0.0
				for _, pa := range b.Shells[i].Primitives {
					for _, pb := range b.Shells[j].Primitives {
						pr := makePair(pa, pb, b.Shells[i].Center, b.Shells[j].Center)
						pg2 := dist2(pr.center, at.Center)
						total += -float64(at.Z) * pr.pre * (2.0 * math.Pi / pr.p) * boys(pr.p*pg2, 0)
					}
				}
				out.Set(i, j, out.At(i, j)+total)
			}
		}
	}
	return out
}

// ElectronRepulsion returns the two-electron repulsion tensor in the
// index convention of linalg.FourIndex: the direct contraction of the
// result with a density matrix yields the Coulomb operator and the
// exchange contraction the exchange operator.
func (b *Basis) ElectronRepulsion() *linalg.FourIndex {
	n := b.NBasis()
	out := linalg.NewFourIndex(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					total := 0.0
					for _, pa := range b.Shells[i].Primitives {
						for _, pb := range b.Shells[j].Primitives {
							prij := makePair(pa, pb, b.Shells[i].Center, b.Shells[j].Center)
							for _, pc := range b.Shells[k].Primitives {
								for _, pd := range b.Shells[l].Primitives {
									prkl := makePair(pc, pd, b.Shells[k].Center, b.Shells[l].Center)
									denom := 1.0/prij.p + 1.0/prkl.p
									pp2 := dist2(prij.center, prkl.center)
									total += prij.pre * prkl.pre *
										(2.0 * math.Pi * math.Pi / (prij.p * prkl.p)) *
										math.Sqrt(math.Pi/(prij.p+prkl.p)) *
										boys(pp2/denom, 0)
								}
							}
						}
					}
					// (ij|kl) in charge-cloud notation lands at
					// the <ik|jl> slot used by the contractions
					out.Set(i, k, j, l, total)
				}
			}
		}
	}
	return out
}

// MixedOverlap returns the rectangular overlap matrix between the
// shells of two bases, rows indexing b1. Both bases must describe the
// same molecular frame for the result to be meaningful.
func MixedOverlap(b1, b2 *Basis) *mat.Dense {
	out := mat.NewDense(b1.NBasis(), b2.NBasis(), nil)
	for i, si := range b1.Shells {
		for j, sj := range b2.Shells {
			total := 0.0
			for _, pa := range si.Primitives {
				for _, pb := range sj.Primitives {
					pr := makePair(pa, pb, si.Center, sj.Center)
					total += pr.pre * math.Pow(math.Pi/pr.p, 1.5)
				}
			}
			out.Set(i, j, total)
		}
	}
	return out
}

// NuclearRepulsion returns the internuclear repulsion energy.
func (b *Basis) NuclearRepulsion() float64 {
	total := 0.0
	for i := range b.Atoms {
		for j := 0; j < i; j++ {
			r := math.Sqrt(dist2(b.Atoms[i].Center, b.Atoms[j].Center))
			total += float64(b.Atoms[i].Z) * float64(b.Atoms[j].Z) / r
		}
	}
	return total
}
