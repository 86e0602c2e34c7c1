package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yumyai/exoclust/internal/app"
)

// runCmd does cluster and select in one go
var runCmd = &cobra.Command{
	Use:   "run <annotation_dir> <input.fasta> <output.fasta>",
	Short: "Cluster annotation files and select representatives in one step",
	Long: `
Equivalent to "exoclust cluster" followed by "exoclust select". The cluster
report is still written (--report) and the selection reads it back from disk.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cdb, err := openDB()
		if err != nil {
			return err
		}
		if cdb != nil {
			defer cdb.Close()
		}

		reportPath, _ := cmd.Flags().GetString("report")
		gff, _ := cmd.Flags().GetString("gff")

		_, err = app.Run(cmd.Context(),
			app.ClusterOptions{
				Dir:    args[0],
				Suffix: cfg.Suffix,
				Report: reportPath,
				GFF:    gff,
				DB:     cdb,
			},
			app.SelectOptions{
				Fasta:  args[1],
				Output: args[2],
			})
		return err
	},
}

func init() {
	runCmd.Flags().String("report", "clusters.txt", "path of the intermediate cluster report")
	runCmd.Flags().String("suffix", ".out", "annotation file name suffix")
	runCmd.Flags().String("gff", "", "also write the clusters as GFF to this file")

	RootCmd.AddCommand(runCmd)
}
