// main.go --  This file is part of the meanfield project.
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
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mfscf <job.yaml>",
	Short: "Mean-field SCF driver",
	Long: `mfscf reads a YAML job description, builds the Gaussian-basis
integrals and runs a self-consistent field calculation.

A minimal job file:

  molecule:
    atoms:
      - {symbol: H, position: [0.0, 0.0, 0.0]}
      - {symbol: H, position: [0.0, 0.0, 1.4]}
    charge: 0
    multiplicity: 1
  basis: sto-3g     # sto-3g | 6-31g
  method: hf        # hf | lda
  solver:
    kind: plain     # plain | oda
    threshold: 1.0e-8
    maxiter: 128`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJob(args[0])
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every SCF iteration")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
