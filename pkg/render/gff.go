package render

import (
	"bufio"
	"io"
	"strconv"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"github.com/yumyai/exoclust/pkg/model"
)

const gffSource = "exoclust"

func strandOf(s string) seq.Strand {
	switch s {
	case "+":
		return seq.Plus
	case "-":
		return seq.Minus
	default:
		return seq.None
	}
}

// WriteClustersGFF writes every clustered region as a gene feature tagged with
// its sequence id, cluster number and source file.
func WriteClustersGFF(w io.Writer, files []*model.FileClusters) error {
	bw := bufio.NewWriter(w)
	gw := gff.NewWriter(bw, LineWidth, true)

	for _, f := range files {
		for _, c := range f.Clusters {
			for _, r := range c.Regions {
				ft := &gff.Feature{
					SeqName:    r.SeqName,
					Source:     gffSource,
					Feature:    "gene",
					FeatStart:  r.Start - 1, // biogo features are zero-based
					FeatEnd:    r.End,
					FeatStrand: strandOf(r.Strand),
					FeatFrame:  gff.NoFrame,
					FeatAttributes: gff.Attributes{
						{Tag: "Sequence", Value: r.SeqID},
						{Tag: "Cluster", Value: strconv.Itoa(c.Number)},
						{Tag: "File", Value: f.File},
					},
				}
				if _, err := gw.Write(ft); err != nil {
					return err
				}
			}
		}
	}

	return bw.Flush()
}
