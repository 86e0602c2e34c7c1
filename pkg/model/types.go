package model

import "strings"

// AlignerSuffix is stripped from annotation file names to get the species label.
const AlignerSuffix = "_exonerate.out"

// UnknownSeqID is used when a gene feature carries no "sequence <id>" attribute.
const UnknownSeqID = "unknown"

// Region is one gene feature interval. Start and End are 1-based and inclusive.
type Region struct {
	SeqID   string `json:"seq_id"`
	SeqName string `json:"seq_name"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Strand  string `json:"strand"`
}

// Overlaps reports whether both regions sit on the same contig and their closed
// intervals intersect. Strand is ignored.
func (r *Region) Overlaps(o *Region) bool {
	return r.SeqName == o.SeqName && !(r.End < o.Start || o.End < r.Start)
}

func (r *Region) Len() int {
	return r.End - r.Start + 1
}

// Cluster is a group of regions in membership order. Number starts at 1.
type Cluster struct {
	Number  int       `json:"cluster"`
	Regions []*Region `json:"regions"`
}

func (c *Cluster) SeqIDs() []string {
	ids := make([]string, 0, len(c.Regions))
	for _, r := range c.Regions {
		ids = append(ids, r.SeqID)
	}
	return ids
}

// FileClusters is the clustering result of one annotation file.
type FileClusters struct {
	File     string     `json:"file"`
	Clusters []*Cluster `json:"clusters"`
}

func (f *FileClusters) Species() string {
	return SpeciesLabel(f.File)
}

// SpeciesLabel derives the species label from an annotation file name.
func SpeciesLabel(filename string) string {
	return strings.TrimSuffix(filename, AlignerSuffix)
}

// Sub struct of the report, one per "=== File" section
type SpeciesClusters struct {
	Species  string     `json:"species"`
	Clusters [][]string `json:"clusters"`
}

// ClusterReport keeps species in the order their sections first appeared.
type ClusterReport struct {
	Species []*SpeciesClusters `json:"species"`
	index   map[string]int
}

func NewClusterReport() *ClusterReport {
	return &ClusterReport{index: make(map[string]int)}
}

// Start begins an empty cluster list for species. A repeated label drops what
// was collected before but keeps its original position.
func (r *ClusterReport) Start(species string) *SpeciesClusters {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	sc := &SpeciesClusters{Species: species, Clusters: [][]string{}}
	if i, ok := r.index[species]; ok {
		r.Species[i] = sc
		return sc
	}
	r.index[species] = len(r.Species)
	r.Species = append(r.Species, sc)
	return sc
}

func (r *ClusterReport) Get(species string) (*SpeciesClusters, bool) {
	i, ok := r.index[species]
	if !ok {
		return nil, false
	}
	return r.Species[i], true
}

// AsMap drops ordering; handy for comparisons.
func (r *ClusterReport) AsMap() map[string][][]string {
	m := make(map[string][][]string, len(r.Species))
	for _, sc := range r.Species {
		m[sc.Species] = sc.Clusters
	}
	return m
}

// NumClusters counts clusters across all species.
func (r *ClusterReport) NumClusters() int {
	n := 0
	for _, sc := range r.Species {
		n += len(sc.Clusters)
	}
	return n
}

// Selection is the representative picked for one cluster of one species.
type Selection struct {
	Species string `json:"species"`
	Cluster int    `json:"cluster"`
	SeqID   string `json:"seq_id"`
	Length  int    `json:"length"`
}
