// Package selector picks one representative sequence per cluster.
package selector

import (
	"go.uber.org/zap"

	"github.com/yumyai/exoclust/logger"
	"github.com/yumyai/exoclust/pkg/model"
)

type SequenceStore interface {
	Get(id string) (string, bool)
}

// Select walks species and clusters in report order and keeps the longest
// stored member of each cluster; the first of equally long members wins.
// Members missing from the store are skipped with a warning, and a cluster
// with no stored member yields nothing.
func Select(report *model.ClusterReport, store SequenceStore) []model.Selection {
	var selected []model.Selection

	for _, sc := range report.Species {
		for i, members := range sc.Clusters {
			best := -1
			var pick string
			for _, id := range members {
				seq, ok := store.Get(id)
				if !ok {
					logger.Warn("Cluster member not found in FASTA, skipping",
						zap.String("species", sc.Species),
						zap.Int("cluster", i+1),
						zap.String("seq_id", id))
					continue
				}
				if len(seq) > best {
					best = len(seq)
					pick = id
				}
			}
			if best < 0 {
				logger.Debug("No member of cluster present in FASTA",
					zap.String("species", sc.Species), zap.Int("cluster", i+1))
				continue
			}
			selected = append(selected, model.Selection{
				Species: sc.Species,
				Cluster: i + 1,
				SeqID:   pick,
				Length:  best,
			})
		}
	}

	return selected
}

// IDs returns the selected ids in selection order.
func IDs(selected []model.Selection) []string {
	ids := make([]string, 0, len(selected))
	for _, s := range selected {
		ids = append(ids, s.SeqID)
	}
	return ids
}
