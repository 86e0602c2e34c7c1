package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/yumyai/exoclust/pkg/model"
)

// Write serializes clusters per file. Each section starts with a blank line,
// which the parser reads as the end of the previous cluster.
func Write(w io.Writer, files []*model.FileClusters) error {
	bw := bufio.NewWriter(w)
	for _, f := range files {
		if _, err := fmt.Fprintf(bw, "\n=== File: %s ===\n", f.File); err != nil {
			return err
		}
		for i, c := range f.Clusters {
			if _, err := fmt.Fprintf(bw, "  Cluster %d:\n", i+1); err != nil {
				return err
			}
			for _, r := range c.Regions {
				if _, err := fmt.Fprintf(bw, "    %s (%s:%d-%d, strand %s)\n",
					r.SeqID, r.SeqName, r.Start, r.End, r.Strand); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

func WriteFile(path string, files []*model.FileClusters) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Write(f, files); err != nil {
		f.Close()
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return f.Close()
}
