// Package cluster groups gene regions with a single pass, first-fit overlap policy.
//
// A region joins the earliest created cluster that holds any member overlapping
// it; otherwise it opens a new cluster. Clusters are never merged afterwards, so
// a region bridging two clusters only joins the first one. Members are indexed
// per contig in an interval tree; the earliest cluster among the overlapping
// members is the one a linear scan over clusters would find first.
package cluster

import (
	"fmt"

	"github.com/biogo/store/interval"

	"github.com/yumyai/exoclust/pkg/model"
)

// member is a region stored in a contig tree. Ranges are half-open, so a
// closed [Start, End] region is stored as [Start, End+1).
type member struct {
	*model.Region
	cluster int
	uid     uintptr
}

func (m member) Overlap(b interval.IntRange) bool {
	return m.Start < b.End && b.Start <= m.End
}
func (m member) ID() uintptr { return m.uid }
func (m member) Range() interval.IntRange {
	return interval.IntRange{Start: m.Start, End: m.End + 1}
}

// query matches any stored member whose closed interval intersects the region.
type query model.Region

func (q *query) Overlap(b interval.IntRange) bool {
	return q.Start < b.End && b.Start <= q.End
}
func (q *query) ID() uintptr { return 0 }
func (q *query) Range() interval.IntRange {
	return interval.IntRange{Start: q.Start, End: q.End + 1}
}

type Clusterer struct {
	clusters []*model.Cluster
	trees    map[string]*interval.IntTree
	next     uintptr
}

func NewClusterer() *Clusterer {
	return &Clusterer{trees: make(map[string]*interval.IntTree)}
}

// Add places r and returns the 1-based number of the cluster it joined.
func (c *Clusterer) Add(r *model.Region) (int, error) {
	t, ok := c.trees[r.SeqName]
	if !ok {
		t = &interval.IntTree{}
		c.trees[r.SeqName] = t
	}

	best := -1
	for _, hit := range t.Get((*query)(r)) {
		if m := hit.(member); best < 0 || m.cluster < best {
			best = m.cluster
		}
	}

	if best < 0 {
		best = len(c.clusters)
		c.clusters = append(c.clusters, &model.Cluster{Number: best + 1})
	}
	cl := c.clusters[best]
	cl.Regions = append(cl.Regions, r)

	if err := t.Insert(member{Region: r, cluster: best, uid: c.next}, false); err != nil {
		return 0, fmt.Errorf("index region %s (%s:%d-%d): %w", r.SeqID, r.SeqName, r.Start, r.End, err)
	}
	c.next++

	return cl.Number, nil
}

// Clusters returns the clusters in creation order.
func (c *Clusterer) Clusters() []*model.Cluster {
	return c.clusters
}

// Regions clusters regions in input order.
func Regions(regions []*model.Region) ([]*model.Cluster, error) {
	c := NewClusterer()
	for _, r := range regions {
		if _, err := c.Add(r); err != nil {
			return nil, err
		}
	}
	return c.Clusters(), nil
}
