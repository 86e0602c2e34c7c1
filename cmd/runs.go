package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// runsCmd lists the runs stored in the cluster database
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List clustering runs recorded in the cluster database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cdb, err := openDB()
		if err != nil {
			return err
		}
		if cdb == nil {
			return errors.New("no cluster database, set --db or EXOCLUST_DB")
		}
		defer cdb.Close()

		runs, err := cdb.Runs(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN ID\tCREATED\tSPECIES\tCLUSTERS\tSOURCE")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
				r.RunID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Species, r.Clusters, r.Source)
		}
		return tw.Flush()
	},
}

func init() {
	RootCmd.AddCommand(runsCmd)
}
