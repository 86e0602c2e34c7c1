package render

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yumyai/exoclust/logger"
	"github.com/yumyai/exoclust/pkg/model"
)

type mapStore map[string]string

func (m mapStore) Get(id string) (string, bool) {
	s, ok := m[id]
	return s, ok
}

func TestWrapSequence(t *testing.T) {
	long := strings.Repeat("ACGT", 40)
	for _, s := range []string{"", "A", strings.Repeat("M", 60), strings.Repeat("M", 61), long} {
		lines := WrapSequence(s, LineWidth)
		if got := strings.Join(lines, ""); got != s {
			t.Errorf("wrap lost residues for length %d", len(s))
		}
		for i, l := range lines {
			if len(l) > LineWidth || (i < len(lines)-1 && len(l) != LineWidth) {
				t.Errorf("length %d: line %d has %d residues", len(s), i, len(l))
			}
		}
	}
}

func TestWriteFasta(t *testing.T) {
	store := mapStore{
		"sixty":     strings.Repeat("A", 60),
		"sixty-one": strings.Repeat("C", 61),
		"empty":     "",
	}

	var buf bytes.Buffer
	n, err := WriteFasta(&buf, store, []string{"sixty", "sixty-one", "empty"})
	if err != nil {
		t.Fatalf("WriteFasta: %v", err)
	}
	if n != 3 {
		t.Errorf("wrote %d records, want 3", n)
	}

	want := ">sixty\n" + strings.Repeat("A", 60) + "\n" +
		">sixty-one\n" + strings.Repeat("C", 60) + "\nC\n" +
		">empty\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteFastaMissing(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(zap.NewNop()) })

	var buf bytes.Buffer
	n, err := WriteFasta(&buf, mapStore{"a": "AC"}, []string{"ghost", "a"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || buf.String() != ">a\nAC\n" {
		t.Errorf("got %d records %q", n, buf.String())
	}
	if logs.Len() != 1 {
		t.Errorf("expected one warning, got %d", logs.Len())
	}
}

func TestWriteClustersGFF(t *testing.T) {
	files := []*model.FileClusters{{
		File: "speciesA_exonerate.out",
		Clusters: []*model.Cluster{
			{Number: 1, Regions: []*model.Region{
				{SeqID: "seqA", SeqName: "chr1", Start: 100, End: 200, Strand: "+"},
				{SeqID: "seqB", SeqName: "chr1", Start: 150, End: 250, Strand: "-"},
			}},
			{Number: 2, Regions: []*model.Region{
				{SeqID: "seqC", SeqName: "chr2", Start: 400, End: 500, Strand: "."},
			}},
		},
	}}

	var buf bytes.Buffer
	if err := WriteClustersGFF(&buf, files); err != nil {
		t.Fatalf("WriteClustersGFF: %v", err)
	}

	type row struct {
		name       string
		start, end int
		strand     seq.Strand
		id         string
	}
	var got []row
	sc := featio.NewScanner(gff.NewReader(&buf))
	for sc.Next() {
		f := sc.Feat().(*gff.Feature)
		if f.Source != "exoclust" || f.Feature != "gene" {
			t.Errorf("unexpected source/feature %q/%q", f.Source, f.Feature)
		}
		got = append(got, row{f.SeqName, f.FeatStart, f.FeatEnd, f.FeatStrand, f.FeatAttributes.Get("Sequence")})
	}
	if err := sc.Error(); err != nil {
		t.Fatalf("read back gff: %v", err)
	}

	want := []row{
		{"chr1", 99, 200, seq.Plus, "seqA"},
		{"chr1", 149, 250, seq.Minus, "seqB"},
		{"chr2", 399, 500, seq.None, "seqC"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
