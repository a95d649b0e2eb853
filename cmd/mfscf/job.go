// job.go --  This file is part of the meanfield project.
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
package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/theochem/meanfield/gaussian"
	"github.com/theochem/meanfield/linalg"
	"github.com/theochem/meanfield/meanfield"
)

type jobAtom struct {
	Symbol   string     `yaml:"symbol"`
	Position [3]float64 `yaml:"position"`
}

type jobConfig struct {
	Molecule struct {
		Atoms        []jobAtom `yaml:"atoms"`
		Charge       int       `yaml:"charge"`
		Multiplicity int       `yaml:"multiplicity"`
	} `yaml:"molecule"`
	Basis        string `yaml:"basis"`
	Method       string `yaml:"method"`
	Unrestricted bool   `yaml:"unrestricted"`
	Solver       struct {
		Kind      string  `yaml:"kind"`
		Threshold float64 `yaml:"threshold"`
		MaxIter   int     `yaml:"maxiter"`
	} `yaml:"solver"`
	Grid struct {
		Origin  []float64 `yaml:"origin"`
		Spacing float64   `yaml:"spacing"`
		Shape   []int     `yaml:"shape"`
	} `yaml:"grid"`
}

var atomicNumbers = map[string]int{
	"H":  1,
	"He": 2,
}

func loadJob(path string) (*jobConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &jobConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Molecule.Atoms) == 0 {
		return nil, fmt.Errorf("%s: no atoms in molecule", path)
	}
	if cfg.Molecule.Multiplicity == 0 {
		cfg.Molecule.Multiplicity = 1
	}
	if cfg.Basis == "" {
		cfg.Basis = "sto-3g"
	}
	if cfg.Method == "" {
		cfg.Method = "hf"
	}
	if cfg.Solver.Kind == "" {
		cfg.Solver.Kind = "plain"
	}
	return cfg, nil
}

func runJob(path string) error {
	cfg, err := loadJob(path)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	atoms := make([]gaussian.Atom, len(cfg.Molecule.Atoms))
	nel := -cfg.Molecule.Charge
	for i, at := range cfg.Molecule.Atoms {
		z, ok := atomicNumbers[at.Symbol]
		if !ok {
			return fmt.Errorf("unknown element %q", at.Symbol)
		}
		atoms[i] = gaussian.Atom{Z: z, Center: at.Position}
		nel += z
	}
	if nel <= 0 {
		return fmt.Errorf("no electrons left with charge %+d", cfg.Molecule.Charge)
	}

	var basis *gaussian.Basis
	switch cfg.Basis {
	case "sto-3g":
		basis, err = gaussian.NewSTO3GBasis(atoms)
	case "6-31g":
		basis, err = gaussian.New631GBasis(atoms)
	default:
		return fmt.Errorf("unknown basis %q", cfg.Basis)
	}
	if err != nil {
		return err
	}

	logger.Info("computing integrals", "basis", cfg.Basis, "nbasis", basis.NBasis())
	olp := basis.Overlap()
	kin := basis.Kinetic()
	na := basis.NuclearAttraction()
	eri := basis.ElectronRepulsion()
	enn := basis.NuclearRepulsion()

	restricted := cfg.Molecule.Multiplicity == 1 && !cfg.Unrestricted
	occ, err := meanfield.SetupAufbau(nel, cfg.Molecule.Multiplicity, restricted)
	if err != nil {
		return err
	}
	kind := meanfield.Unrestricted
	if restricted {
		kind = meanfield.Restricted
	}

	var terms []meanfield.Observable
	switch cfg.Method {
	case "hf":
		if restricted {
			terms = append(terms, meanfield.NewRExchangeTerm(eri, "x_hf", 1.0))
		} else {
			terms = append(terms, meanfield.NewUExchangeTerm(eri, "x_hf", 1.0))
		}
	case "lda":
		grid, err := buildGrid(cfg, basis)
		if err != nil {
			return err
		}
		logger.Info("collocation grid ready", "points", grid.GridSize())
		funcs := []meanfield.GridObservable{meanfield.NewDiracExchange()}
		var group *meanfield.GridGroup
		if restricted {
			group, err = meanfield.NewRGridGroup(grid, funcs)
		} else {
			group, err = meanfield.NewUGridGroup(grid, funcs)
		}
		if err != nil {
			return err
		}
		terms = append(terms, group)
	default:
		return fmt.Errorf("unknown method %q", cfg.Method)
	}
	terms, err = meanfield.CompleteTerms(kind, terms, meanfield.TermOptions{
		Kinetic: kin,
		Nuclear: na,
		ERI:     eri,
	})
	if err != nil {
		return err
	}

	var ham *meanfield.EffHam
	if restricted {
		ham, err = meanfield.NewREffHam(terms, enn)
	} else {
		ham, err = meanfield.NewUEffHam(terms, enn)
	}
	if err != nil {
		return err
	}

	orbs := make([]*meanfield.Orbitals, ham.NDM())
	for i := range orbs {
		orbs[i] = meanfield.NewOrbitals(basis.NBasis())
	}
	core := kin.Copy()
	core.Add(na)
	if err := meanfield.GuessCoreHamiltonian(olp, core, orbs...); err != nil {
		return err
	}
	if err := occ.Assign(orbs...); err != nil {
		return err
	}

	logger.Info("starting scf",
		"method", cfg.Method, "solver", cfg.Solver.Kind, "restricted", restricted, "electrons", nel)
	var iters int
	switch cfg.Solver.Kind {
	case "plain":
		solver := &meanfield.PlainSCF{
			Threshold: cfg.Solver.Threshold,
			MaxIter:   cfg.Solver.MaxIter,
			Logger:    logger,
		}
		iters, err = solver.Solve(ham, olp, occ, orbs...)
	case "oda":
		solver := &meanfield.ODASCF{
			Threshold: cfg.Solver.Threshold,
			MaxIter:   cfg.Solver.MaxIter,
			Debug:     verbose,
			Logger:    logger,
		}
		dms := make([]*linalg.TwoIndex, len(orbs))
		for i, orb := range orbs {
			dms[i] = orb.DM()
		}
		iters, err = solver.Solve(ham, olp, occ, dms...)
		if err == nil {
			err = finishFromDMs(ham, olp, occ, dms, orbs)
		}
	default:
		return fmt.Errorf("unknown solver %q", cfg.Solver.Kind)
	}
	if err != nil {
		return err
	}

	total, err := ham.ComputeEnergy()
	if err != nil {
		return err
	}
	logger.Info("scf converged", "iterations", iters)

	fmt.Printf("converged in %d iterations\n\n", iters)
	for _, term := range ham.Terms() {
		if e, ok := ham.Energy(term.Label()); ok {
			fmt.Printf("  %-12s %18.10f\n", term.Label(), e)
		}
	}
	if e, ok := ham.Energy("nn"); ok {
		fmt.Printf("  %-12s %18.10f\n", "nn", e)
	}
	fmt.Printf("  %-12s %18.10f\n\n", "total", total)

	homo, lumo, hasLumo := meanfield.HomoLumo(orbs...)
	if hasLumo {
		fmt.Printf("  homo %12.6f   lumo %12.6f   gap %12.6f\n", homo, lumo, lumo-homo)
	} else {
		fmt.Printf("  homo %12.6f\n", homo)
	}
	if !restricted {
		sz, ssq := meanfield.GetSpin(orbs[0], orbs[1], olp)
		fmt.Printf("  <Sz> %12.6f   <S^2> %12.6f\n", sz, ssq)
	}
	return nil
}

// finishFromDMs rebuilds the Fock matrices at the converged densities
// and recovers canonical orbitals from them, since the ODA solver works
// on density matrices alone.
func finishFromDMs(ham *meanfield.EffHam, olp *linalg.TwoIndex, occ meanfield.OccModel,
	dms []*linalg.TwoIndex, orbs []*meanfield.Orbitals) error {
	ham.Clear()
	if err := ham.Reset(dms...); err != nil {
		return err
	}
	focks := make([]*linalg.TwoIndex, len(dms))
	for i := range focks {
		focks[i] = linalg.NewTwoIndex(olp.N())
	}
	if err := ham.ComputeFock(focks...); err != nil {
		return err
	}
	for i, orb := range orbs {
		if err := orb.FromFock(focks[i], olp); err != nil {
			return err
		}
	}
	return occ.Assign(orbs...)
}

// buildGrid returns the quadrature grid for grid-based functionals,
// defaulting to a box 5 bohr beyond the nuclei with 0.35 bohr spacing.
func buildGrid(cfg *jobConfig, basis *gaussian.Basis) (*gaussian.CollocationGrid, error) {
	const margin = 5.0
	spacing := cfg.Grid.Spacing
	if spacing <= 0 {
		spacing = 0.35
	}

	var origin [3]float64
	var shape [3]int
	switch {
	case len(cfg.Grid.Origin) == 3 && len(cfg.Grid.Shape) == 3:
		copy(origin[:], cfg.Grid.Origin)
		copy(shape[:], cfg.Grid.Shape)
	case len(cfg.Grid.Origin) == 0 && len(cfg.Grid.Shape) == 0:
		lo := basis.Atoms[0].Center
		hi := basis.Atoms[0].Center
		for _, at := range basis.Atoms {
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], at.Center[k])
				hi[k] = math.Max(hi[k], at.Center[k])
			}
		}
		for k := 0; k < 3; k++ {
			origin[k] = lo[k] - margin
			shape[k] = int(math.Ceil((hi[k]-lo[k]+2.0*margin)/spacing)) + 1
		}
	default:
		return nil, fmt.Errorf("grid origin and shape must be given together")
	}
	return gaussian.NewUniformGrid(basis, origin, [3]float64{spacing, spacing, spacing}, shape)
}
