package render

import (
	"bufio"
	"io"

	"go.uber.org/zap"

	"github.com/yumyai/exoclust/logger"
)

// LineWidth is the number of residues per FASTA sequence line.
const LineWidth = 60

type SequenceStore interface {
	Get(id string) (string, bool)
}

// WrapSequence splits seq into lines of at most width characters.
func WrapSequence(seq string, width int) []string {
	lines := make([]string, 0, len(seq)/width+1)
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		lines = append(lines, seq[i:end])
	}
	return lines
}

// WriteFasta writes the given ids in order, wrapped at LineWidth. Ids missing
// from the store are reported and left out. It returns the number of records written.
func WriteFasta(w io.Writer, store SequenceStore, ids []string) (int, error) {
	bw := bufio.NewWriter(w)
	written := 0

	for _, id := range ids {
		seq, ok := store.Get(id)
		if !ok {
			logger.Warn("Selected sequence not found in FASTA", zap.String("seq_id", id))
			continue
		}

		bw.WriteString(">")
		bw.WriteString(id)
		bw.WriteString("\n")
		for _, line := range WrapSequence(seq, LineWidth) {
			bw.WriteString(line)
			if err := bw.WriteByte('\n'); err != nil {
				return written, err
			}
		}
		written++
	}

	return written, bw.Flush()
}
