package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yumyai/exoclust/internal/app"
	"github.com/yumyai/exoclust/logger"
)

// selectCmd keeps the longest sequence of every cluster
var selectCmd = &cobra.Command{
	Use:   "select <report.txt> <input.fasta> <output.fasta>",
	Short: "Write the longest sequence of every cluster in a cluster report",
	Long: `
Read a cluster report written by "exoclust cluster" and the FASTA file holding
the clustered sequences, then write the longest sequence of every cluster to
output.fasta ("-" for stdout), 60 residues per line. Ties go to the member
listed first; ids missing from the FASTA file are skipped with a warning.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cdb, err := openDB()
		if err != nil {
			return err
		}
		if cdb != nil {
			defer cdb.Close()
		}

		runID, _ := cmd.Flags().GetString("run")
		if runID != "" && cdb == nil {
			logger.Warn("--run given without --db, representatives are not recorded")
		}

		_, err = app.Select(cmd.Context(), app.SelectOptions{
			Report: args[0],
			Fasta:  args[1],
			Output: args[2],
			DB:     cdb,
			RunID:  runID,
		})
		return err
	},
}

func init() {
	selectCmd.Flags().String("run", "", "run id (from \"exoclust cluster --db\") to record the representatives under")

	RootCmd.AddCommand(selectCmd)
}
