package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yumyai/exoclust/internal/app"
)

// clusterCmd groups overlapping gene features per annotation file
var clusterCmd = &cobra.Command{
	Use:   "cluster <annotation_dir> <report.txt>",
	Short: "Cluster overlapping gene features of every annotation file in a directory",
	Long: `
Read every file in annotation_dir ending with --suffix (sorted by name), take
its "gene" features, and group them into clusters of overlapping intervals.
A feature joins the first cluster holding an overlapping member; clusters are
never merged. The clusters are written to report.txt, which "exoclust select"
reads back.

A file that fails to parse is skipped and the command exits non-zero after
the report for the other files has been written.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cdb, err := openDB()
		if err != nil {
			return err
		}
		if cdb != nil {
			defer cdb.Close()
		}

		gff, _ := cmd.Flags().GetString("gff")

		_, err = app.Cluster(cmd.Context(), app.ClusterOptions{
			Dir:    args[0],
			Suffix: cfg.Suffix,
			Report: args[1],
			GFF:    gff,
			DB:     cdb,
		})
		return err
	},
}

func init() {
	clusterCmd.Flags().String("suffix", ".out", "annotation file name suffix")
	clusterCmd.Flags().String("gff", "", "also write the clusters as GFF to this file")

	RootCmd.AddCommand(clusterCmd)
}
