// observable.go --  This file is part of the meanfield project.
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
	"github.com/theochem/meanfield/cache"
	"github.com/theochem/meanfield/linalg"
)

// Observable is one term of a mean-field energy expression. All
// methods read the density matrices and store their intermediates
// through the Hamiltonian cache; the effective Hamiltonian guarantees
// that dm_alpha (and dm_beta for unrestricted terms) is present before
// any of them is called.
type Observable interface {
	// Label names the term. It is used in cache keys and in the
	// energy breakdown, so it must be unique within a Hamiltonian.
	Label() string
	// ComputeEnergy returns the energy contribution for the current
	// density matrices.
	ComputeEnergy(c *cache.Cache) float64
	// AddFock accumulates the Fock contribution, one matrix per spin
	// channel.
	AddFock(c *cache.Cache, focks ...*linalg.TwoIndex)
}

// DotHessianObservable is implemented by terms that support
// Hessian-vector products for response calculations. Linear terms
// satisfy it trivially; grid functionals generally do not implement
// it.
type DotHessianObservable interface {
	Observable
	// AddDotHessian accumulates the product of the Fock derivative
	// with the delta density matrices registered via ResetDelta,
	// divided by the deriv scale of the Hamiltonian.
	AddDotHessian(c *cache.Cache, outputs ...*linalg.TwoIndex)
}

func cachedDM(c *cache.Cache, key string) *linalg.TwoIndex {
	dm, ok := cache.Get[*linalg.TwoIndex](c, key)
	if !ok {
		panic("meanfield: " + key + " not set, call Reset before computing")
	}
	return dm
}

// dmFull returns the spin-summed density matrix, composing it from the
// alpha and beta entries on first use after a reset.
func dmFull(c *cache.Cache) *linalg.TwoIndex {
	alpha := cachedDM(c, "dm_alpha")
	full, isNew := cache.LoadOrNew(c, "dm_full", cache.TagDerived, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(alpha.N())
	})
	if isNew {
		full.Assign(alpha)
		full.Add(cachedDM(c, "dm_beta"))
	}
	return full
}

func deltaDMFull(c *cache.Cache) *linalg.TwoIndex {
	alpha := cachedDM(c, "delta_dm_alpha")
	full, isNew := cache.LoadOrNew(c, "delta_dm_full", tagDelta, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(alpha.N())
	})
	if isNew {
		full.Assign(alpha)
		full.Add(cachedDM(c, "delta_dm_beta"))
	}
	return full
}

// RTwoIndexTerm is a one-body operator in a restricted expansion, e.g.
// the kinetic energy or the external potential.
type RTwoIndexTerm struct {
	op    *linalg.TwoIndex
	label string
}

func NewRTwoIndexTerm(op *linalg.TwoIndex, label string) *RTwoIndexTerm {
	return &RTwoIndexTerm{op: op, label: label}
}

func (t *RTwoIndexTerm) Label() string { return t.label }

func (t *RTwoIndexTerm) ComputeEnergy(c *cache.Cache) float64 {
	// both spin channels share the alpha density matrix
	return 2.0 * t.op.Contract(cachedDM(c, "dm_alpha"))
}

func (t *RTwoIndexTerm) AddFock(c *cache.Cache, focks ...*linalg.TwoIndex) {
	focks[0].Add(t.op)
}

// AddDotHessian is a no-op: one-body terms are linear in the density
// matrix.
func (t *RTwoIndexTerm) AddDotHessian(c *cache.Cache, outputs ...*linalg.TwoIndex) {}

// UTwoIndexTerm is a one-body operator in an unrestricted expansion.
// The alpha and beta operators are usually the same object, which
// enables the spin-summed shortcut in ComputeEnergy.
type UTwoIndexTerm struct {
	opAlpha, opBeta *linalg.TwoIndex
	label           string
}

func NewUTwoIndexTerm(opAlpha, opBeta *linalg.TwoIndex, label string) *UTwoIndexTerm {
	return &UTwoIndexTerm{opAlpha: opAlpha, opBeta: opBeta, label: label}
}

func (t *UTwoIndexTerm) Label() string { return t.label }

func (t *UTwoIndexTerm) ComputeEnergy(c *cache.Cache) float64 {
	if t.opAlpha == t.opBeta {
		return t.opAlpha.Contract(dmFull(c))
	}
	return t.opAlpha.Contract(cachedDM(c, "dm_alpha")) +
		t.opBeta.Contract(cachedDM(c, "dm_beta"))
}

func (t *UTwoIndexTerm) AddFock(c *cache.Cache, focks ...*linalg.TwoIndex) {
	focks[0].Add(t.opAlpha)
	focks[1].Add(t.opBeta)
}

func (t *UTwoIndexTerm) AddDotHessian(c *cache.Cache, outputs ...*linalg.TwoIndex) {}

// RDirectTerm is the classical Coulomb (Hartree) interaction in a
// restricted expansion.
type RDirectTerm struct {
	op    *linalg.FourIndex
	label string
}

func NewRDirectTerm(op *linalg.FourIndex, label string) *RDirectTerm {
	return &RDirectTerm{op: op, label: label}
}

func (t *RDirectTerm) Label() string { return t.label }

// updateDirect caches the direct operator built from the full density
// matrix, which for a restricted expansion is twice the alpha one.
func (t *RDirectTerm) updateDirect(c *cache.Cache) *linalg.TwoIndex {
	dm := cachedDM(c, "dm_alpha")
	direct, isNew := cache.LoadOrNew(c, "op_"+t.label+"_alpha", cache.TagDerived, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(dm.N())
	})
	if isNew {
		t.op.ContractDirect(dm, direct)
		direct.Scale(2.0)
	}
	return direct
}

func (t *RDirectTerm) ComputeEnergy(c *cache.Cache) float64 {
	return t.updateDirect(c).Contract(cachedDM(c, "dm_alpha"))
}

func (t *RDirectTerm) AddFock(c *cache.Cache, focks ...*linalg.TwoIndex) {
	focks[0].Add(t.updateDirect(c))
}

func (t *RDirectTerm) AddDotHessian(c *cache.Cache, outputs ...*linalg.TwoIndex) {
	delta := cachedDM(c, "delta_dm_alpha")
	dot, isNew := cache.LoadOrNew(c, "op_"+t.label+"_delta_alpha", tagDelta, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(delta.N())
	})
	if isNew {
		t.op.ContractDirect(delta, dot)
	}
	outputs[0].Add(dot)
}

// UDirectTerm is the classical Coulomb interaction in an unrestricted
// expansion. The direct operator only depends on the spin-summed
// density matrix and is shared by both Fock matrices.
type UDirectTerm struct {
	op    *linalg.FourIndex
	label string
}

func NewUDirectTerm(op *linalg.FourIndex, label string) *UDirectTerm {
	return &UDirectTerm{op: op, label: label}
}

func (t *UDirectTerm) Label() string { return t.label }

func (t *UDirectTerm) updateDirect(c *cache.Cache) *linalg.TwoIndex {
	full := dmFull(c)
	direct, isNew := cache.LoadOrNew(c, "op_"+t.label, cache.TagDerived, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(full.N())
	})
	if isNew {
		t.op.ContractDirect(full, direct)
	}
	return direct
}

func (t *UDirectTerm) ComputeEnergy(c *cache.Cache) float64 {
	return 0.5 * t.updateDirect(c).Contract(dmFull(c))
}

func (t *UDirectTerm) AddFock(c *cache.Cache, focks ...*linalg.TwoIndex) {
	direct := t.updateDirect(c)
	focks[0].Add(direct)
	focks[1].Add(direct)
}

func (t *UDirectTerm) AddDotHessian(c *cache.Cache, outputs ...*linalg.TwoIndex) {
	delta := deltaDMFull(c)
	dot, isNew := cache.LoadOrNew(c, "op_"+t.label+"_delta", tagDelta, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(delta.N())
	})
	if isNew {
		t.op.ContractDirect(delta, dot)
	}
	outputs[0].Add(dot)
	outputs[1].Add(dot)
}

// RExchangeTerm is the Fock exchange interaction in a restricted
// expansion, scaled by a fraction for use in hybrid functionals.
type RExchangeTerm struct {
	op       *linalg.FourIndex
	label    string
	fraction float64
}

// NewRExchangeTerm builds an exchange term. A fraction of 1 gives full
// Fock exchange.
func NewRExchangeTerm(op *linalg.FourIndex, label string, fraction float64) *RExchangeTerm {
	return &RExchangeTerm{op: op, label: label, fraction: fraction}
}

func (t *RExchangeTerm) Label() string { return t.label }

func (t *RExchangeTerm) updateExchange(c *cache.Cache) *linalg.TwoIndex {
	dm := cachedDM(c, "dm_alpha")
	exch, isNew := cache.LoadOrNew(c, "op_"+t.label+"_alpha", cache.TagDerived, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(dm.N())
	})
	if isNew {
		t.op.ContractExchange(dm, exch)
	}
	return exch
}

func (t *RExchangeTerm) ComputeEnergy(c *cache.Cache) float64 {
	return -t.fraction * t.updateExchange(c).Contract(cachedDM(c, "dm_alpha"))
}

func (t *RExchangeTerm) AddFock(c *cache.Cache, focks ...*linalg.TwoIndex) {
	focks[0].AddScaled(t.updateExchange(c), -t.fraction)
}

func (t *RExchangeTerm) AddDotHessian(c *cache.Cache, outputs ...*linalg.TwoIndex) {
	delta := cachedDM(c, "delta_dm_alpha")
	dot, isNew := cache.LoadOrNew(c, "op_"+t.label+"_delta_alpha", tagDelta, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(delta.N())
	})
	if isNew {
		t.op.ContractExchange(delta, dot)
	}
	outputs[0].AddScaled(dot, -0.5*t.fraction)
}

// UExchangeTerm is the Fock exchange interaction in an unrestricted
// expansion. Each spin channel exchanges only with itself.
type UExchangeTerm struct {
	op       *linalg.FourIndex
	label    string
	fraction float64
}

func NewUExchangeTerm(op *linalg.FourIndex, label string, fraction float64) *UExchangeTerm {
	return &UExchangeTerm{op: op, label: label, fraction: fraction}
}

func (t *UExchangeTerm) Label() string { return t.label }

func (t *UExchangeTerm) updateExchange(c *cache.Cache, spin string) *linalg.TwoIndex {
	dm := cachedDM(c, "dm_"+spin)
	exch, isNew := cache.LoadOrNew(c, "op_"+t.label+"_"+spin, cache.TagDerived, func() *linalg.TwoIndex {
		return linalg.NewTwoIndex(dm.N())
	})
	if isNew {
		t.op.ContractExchange(dm, exch)
	}
	return exch
}

func (t *UExchangeTerm) ComputeEnergy(c *cache.Cache) float64 {
	total := 0.0
	for _, spin := range []string{"alpha", "beta"} {
		total += -0.5 * t.fraction * t.updateExchange(c, spin).Contract(cachedDM(c, "dm_"+spin))
	}
	return total
}

func (t *UExchangeTerm) AddFock(c *cache.Cache, focks ...*linalg.TwoIndex) {
	focks[0].AddScaled(t.updateExchange(c, "alpha"), -t.fraction)
	focks[1].AddScaled(t.updateExchange(c, "beta"), -t.fraction)
}

func (t *UExchangeTerm) AddDotHessian(c *cache.Cache, outputs ...*linalg.TwoIndex) {
	for i, spin := range []string{"alpha", "beta"} {
		delta := cachedDM(c, "delta_dm_"+spin)
		dot, isNew := cache.LoadOrNew(c, "op_"+t.label+"_delta_"+spin, tagDelta, func() *linalg.TwoIndex {
			return linalg.NewTwoIndex(delta.N())
		})
		if isNew {
			t.op.ContractExchange(delta, dot)
		}
		outputs[i].AddScaled(dot, -t.fraction)
	}
}
