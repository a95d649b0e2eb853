// builder.go --  This file is part of the meanfield project.
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

// Standard term labels used by CompleteTerms. The core types accept
// any label; these are the conventional names the builder looks for.
const (
	LabelKinetic = "kin"
	LabelNuclear = "ne"
	LabelHartree = "hartree"
)

// TermOptions supplies the operators CompleteTerms may need to fill in
// missing standard terms.
type TermOptions struct {
	Kinetic *linalg.TwoIndex
	Nuclear *linalg.TwoIndex
	ERI     *linalg.FourIndex
	// Strict additionally rejects term lists without any exchange or
	// grid contribution. The effective Hamiltonian itself accepts
	// such lists; Hartree-only models are occasionally useful.
	Strict bool
}

// CompleteTerms returns terms extended with the standard one-body and
// Hartree contributions that are missing, identified by their
// conventional labels. The required operators must be present in opts
// or a ConsistencyError is returned.
func CompleteTerms(kind HamKind, terms []Observable, opts TermOptions) ([]Observable, error) {
	have := make(map[string]bool, len(terms))
	hasExchange := false
	for _, t := range terms {
		have[t.Label()] = true
		switch t.(type) {
		case *RExchangeTerm, *UExchangeTerm, *GridGroup:
			hasExchange = true
		}
	}
	if opts.Strict && !hasExchange {
		return nil, consistencyErrorf("strict term list lacks an exchange or grid contribution")
	}

	out := append([]Observable(nil), terms...)
	addTwoIndex := func(op *linalg.TwoIndex, label string) error {
		if have[label] {
			return nil
		}
		if op == nil {
			return consistencyErrorf("term %q missing and no operator supplied for it", label)
		}
		if kind == Restricted {
			out = append(out, NewRTwoIndexTerm(op, label))
		} else {
			out = append(out, NewUTwoIndexTerm(op, op, label))
		}
		return nil
	}
	if err := addTwoIndex(opts.Kinetic, LabelKinetic); err != nil {
		return nil, err
	}
	if err := addTwoIndex(opts.Nuclear, LabelNuclear); err != nil {
		return nil, err
	}
	if !have[LabelHartree] {
		if opts.ERI == nil {
			return nil, consistencyErrorf("term %q missing and no electron repulsion integrals supplied", LabelHartree)
		}
		if kind == Restricted {
			out = append(out, NewRDirectTerm(opts.ERI, LabelHartree))
		} else {
			out = append(out, NewUDirectTerm(opts.ERI, LabelHartree))
		}
	}
	return out, nil
}
