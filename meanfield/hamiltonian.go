// hamiltonian.go --  This file is part of the meanfield project.
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

// Package meanfield implements self-consistent mean-field models: an
// effective Hamiltonian assembled from pluggable energy terms, plain
// and optimal-damping SCF solvers, occupation models and the related
// utilities.
package meanfield

import (
	"github.com/theochem/meanfield/cache"
	"github.com/theochem/meanfield/linalg"
)

// tagDelta marks cache entries that depend on the delta density
// matrices of a Hessian-vector product. They are invalidated by
// ResetDelta without touching the entries derived from the density
// matrices themselves.
const tagDelta = "delta"

// HamKind distinguishes restricted from unrestricted expansions.
type HamKind int

const (
	Restricted HamKind = iota
	Unrestricted
)

// EffHam is an effective mean-field Hamiltonian: a sum of Observable
// terms plus a constant external energy (typically the nuclear
// repulsion). It owns the cache through which the terms share their
// intermediates.
//
// The calling protocol is: update the density matrices, call Clear,
// call Reset with the new matrices, then compute energies and Fock
// matrices at will. Reset on its own never invalidates cache entries,
// so skipping Clear after a density change leaves stale operators
// behind.
type EffHam struct {
	kind       HamKind
	ndm        int
	derivScale float64
	terms      []Observable
	external   float64
	cache      *cache.Cache
	hasDM      bool
}

func newEffHam(kind HamKind, terms []Observable, external float64) (*EffHam, error) {
	if len(terms) == 0 {
		return nil, consistencyErrorf("effective hamiltonian needs at least one term")
	}
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		if seen[t.Label()] {
			return nil, consistencyErrorf("duplicate term label %q", t.Label())
		}
		seen[t.Label()] = true
	}
	h := &EffHam{
		kind:     kind,
		terms:    append([]Observable(nil), terms...),
		external: external,
		cache:    cache.New(),
	}
	if kind == Restricted {
		h.ndm = 1
		h.derivScale = 2.0
	} else {
		h.ndm = 2
		h.derivScale = 1.0
	}
	return h, nil
}

// NewREffHam builds a restricted Hamiltonian: one density matrix, both
// spin channels identical, Fock derivatives scaled by one half.
func NewREffHam(terms []Observable, external float64) (*EffHam, error) {
	return newEffHam(Restricted, terms, external)
}

// NewUEffHam builds an unrestricted Hamiltonian with separate alpha
// and beta density matrices.
func NewUEffHam(terms []Observable, external float64) (*EffHam, error) {
	return newEffHam(Unrestricted, terms, external)
}

func (h *EffHam) Kind() HamKind { return h.kind }

// NDM returns the number of density matrices: 1 for restricted, 2 for
// unrestricted.
func (h *EffHam) NDM() int { return h.ndm }

// DerivScale is the factor between energy derivatives with respect to
// the stored density matrices and the Fock matrices: 2 for restricted
// expansions, 1 for unrestricted ones.
func (h *EffHam) DerivScale() float64 { return h.derivScale }

// Cache exposes the operator cache, mainly for the per-term energy
// breakdown and for tests.
func (h *EffHam) Cache() *cache.Cache { return h.cache }

// Terms returns the energy terms in evaluation order.
func (h *EffHam) Terms() []Observable { return h.terms }

func (h *EffHam) spins() []string {
	if h.kind == Restricted {
		return []string{"alpha"}
	}
	return []string{"alpha", "beta"}
}

// Clear drops all cache entries that are not tagged permanent. Call it
// whenever the density matrices are about to change.
func (h *EffHam) Clear() { h.cache.Clear() }

// ClearTag drops the cache entries carrying the given tag.
func (h *EffHam) ClearTag(tag string) { h.cache.ClearTag(tag) }

// Reset records the density matrices the terms read, one per spin
// channel. It deliberately does not clear the cache; see the type
// documentation for the calling protocol.
func (h *EffHam) Reset(dms ...*linalg.TwoIndex) error {
	if len(dms) != h.ndm {
		return consistencyErrorf("got %d density matrices, expected %d", len(dms), h.ndm)
	}
	for i, spin := range h.spins() {
		h.cache.Store("dm_"+spin, cache.TagDerived, dms[i])
	}
	h.hasDM = true
	return nil
}

// ResetDelta records the search-direction density matrices for a
// Hessian-vector product, dropping every earlier delta-derived entry
// first.
func (h *EffHam) ResetDelta(deltas ...*linalg.TwoIndex) error {
	if len(deltas) != h.ndm {
		return consistencyErrorf("got %d delta density matrices, expected %d", len(deltas), h.ndm)
	}
	h.cache.ClearTag(tagDelta)
	for i, spin := range h.spins() {
		h.cache.Store("delta_dm_"+spin, tagDelta, deltas[i])
	}
	return nil
}

// ComputeEnergy evaluates all terms at the current density matrices,
// stores the breakdown under energy_<label> plus energy_nn, and
// returns (and caches) the total under energy. A second call without
// an intervening Clear is a pure cache read.
func (h *EffHam) ComputeEnergy() (float64, error) {
	if !h.hasDM {
		return 0, consistencyErrorf("no density matrices, call Reset first")
	}
	if e, ok := cache.Get[float64](h.cache, "energy"); ok {
		return e, nil
	}
	total := 0.0
	for _, term := range h.terms {
		e := term.ComputeEnergy(h.cache)
		h.cache.Store("energy_"+term.Label(), cache.TagDerived, e)
		total += e
	}
	h.cache.Store("energy_nn", cache.TagDerived, h.external)
	total += h.external
	h.cache.Store("energy", cache.TagDerived, total)
	return total, nil
}

// Energy returns a cached energy contribution by term label. It is
// only present after ComputeEnergy.
func (h *EffHam) Energy(label string) (float64, bool) {
	return cache.Get[float64](h.cache, "energy_"+label)
}

// ComputeFock accumulates all Fock contributions into the given
// matrices, one per spin channel. The matrices are zeroed first.
func (h *EffHam) ComputeFock(focks ...*linalg.TwoIndex) error {
	if !h.hasDM {
		return consistencyErrorf("no density matrices, call Reset first")
	}
	if len(focks) != h.ndm {
		return consistencyErrorf("got %d fock matrices, expected %d", len(focks), h.ndm)
	}
	for _, f := range focks {
		f.Zero()
	}
	for _, term := range h.terms {
		term.AddFock(h.cache, focks...)
	}
	return nil
}

// ComputeDotHessian accumulates the Hessian-vector product for the
// delta density matrices registered with ResetDelta. Terms that do not
// implement DotHessianObservable make the whole product unavailable.
func (h *EffHam) ComputeDotHessian(outputs ...*linalg.TwoIndex) error {
	if len(outputs) != h.ndm {
		return consistencyErrorf("got %d output matrices, expected %d", len(outputs), h.ndm)
	}
	if !h.cache.Contains("delta_dm_alpha") {
		return consistencyErrorf("no delta density matrices, call ResetDelta first")
	}
	for _, term := range h.terms {
		if _, ok := term.(DotHessianObservable); !ok {
			return consistencyErrorf("term %q does not support hessian-vector products", term.Label())
		}
	}
	for _, out := range outputs {
		out.Zero()
	}
	for _, term := range h.terms {
		term.(DotHessianObservable).AddDotHessian(h.cache, outputs...)
	}
	return nil
}
