package commands

import (
	"github.com/spf13/cobra"

	"github.com/ishankgp/MF-return-tracker/internal/formula"
	"github.com/ishankgp/MF-return-tracker/internal/report"
)

// formulasCmd represents the formulas command
var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "List the registered scoring formulas",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := report.New(cmd.OutOrStdout())
		r.Formulas(formula.ComparisonRegistry())
		r.Formulas(formula.CompositeRegistry())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formulasCmd)
}
