package annotation

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yumyai/exoclust/pkg/model"
)

const exonerateOut = `Command line: [exonerate --model protein2genome --showtargetgff true]
Hostname: [node1]
# --- START OF GFF DUMP ---
#
#
##gff-version 2
chr1	exonerate:protein2genome:local	gene	100	200	512	+	.	gene_id 1 ; sequence seqA ; gene_orientation +
chr1	exonerate:protein2genome:local	cds	100	200	.	+	.	
chr1	exonerate:protein2genome:local	exon	100	200	.	+	.	insertions 0 ; deletions 0

chr1	exonerate:protein2genome:local	gene	150	250	430	-	.	gene_id 2 ; sequence seqB ; gene_orientation -
chr2	exonerate:protein2genome:local	gene	400	500	99	+	.	gene_id 3 ; gene_orientation +
# --- END OF GFF DUMP ---
-- completed exonerate analysis
`

func TestParse(t *testing.T) {
	regions, err := Parse(strings.NewReader(exonerateOut), "speciesA_exonerate.out")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []model.Region{
		{SeqID: "seqA", SeqName: "chr1", Start: 100, End: 200, Strand: "+"},
		{SeqID: "seqB", SeqName: "chr1", Start: 150, End: 250, Strand: "-"},
		{SeqID: model.UnknownSeqID, SeqName: "chr2", Start: 400, End: 500, Strand: "+"},
	}
	if len(regions) != len(want) {
		t.Fatalf("got %d regions, want %d: %+v", len(regions), len(want), regions)
	}
	for i, r := range regions {
		if *r != want[i] {
			t.Errorf("region %d = %+v, want %+v", i, *r, want[i])
		}
	}
}

func TestParseSkipsNonGeneLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"comment", "#chr1\tsrc\tgene\t1\t2\t.\t+\t.\tsequence x"},
		{"blank", "   "},
		{"too few fields", "chr1\tsrc\tgene\t1\t2\t.\t+\t."},
		{"gene not in third column", "chr1\tgene\tcds\t1\t2\t.\t+\t.\tsequence x"},
		{"free text", "Query: seqA gene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions, err := Parse(strings.NewReader(tt.line+"\n"), "f")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(regions) != 0 {
				t.Errorf("expected no regions, got %+v", regions)
			}
		})
	}
}

func TestParseBadCoordinate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
		line  int
	}{
		{
			name:  "start",
			input: "chr1\tsrc\tgene\tabc\t200\t.\t+\t.\tsequence a\n",
			field: "start",
			line:  1,
		},
		{
			name:  "end",
			input: "# header\nchr1\tsrc\tgene\t100\t2x0\t.\t+\t.\tsequence a\n",
			field: "end",
			line:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "bad.out")

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.File != "bad.out" || perr.Line != tt.line || perr.Field != tt.field {
				t.Errorf("unexpected error detail: %+v", perr)
			}
			if !errors.Is(err, ErrBadCoordinate) {
				t.Errorf("expected ErrBadCoordinate in chain, got %v", err)
			}
		})
	}
}

func TestParseEndBeforeStart(t *testing.T) {
	_, err := Parse(strings.NewReader("chr1\tsrc\tgene\t300\t200\t.\t+\t.\tsequence a\n"), "f")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParseEndAtMaxInt(t *testing.T) {
	line := fmt.Sprintf("chr1\tsrc\tgene\t%d\t%d\t.\t+\t.\tsequence a\n", math.MaxInt-1, math.MaxInt)
	_, err := Parse(strings.NewReader(line), "f")
	if !errors.Is(err, ErrCoordinateRange) {
		t.Fatalf("expected ErrCoordinateRange, got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Field != "end" || perr.Line != 1 {
		t.Errorf("unexpected parse error: %v", err)
	}

	line = fmt.Sprintf("chr1\tsrc\tgene\t%d\t%d\t.\t+\t.\tsequence a\n", math.MaxInt-1, math.MaxInt-1)
	regions, err := Parse(strings.NewReader(line), "f")
	if err != nil || len(regions) != 1 {
		t.Errorf("largest accepted end rejected: %v", err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "speciesA_exonerate.out")
	if err := os.WriteFile(path, []byte(exonerateOut), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	regions, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(regions) != 3 {
		t.Errorf("got %d regions, want 3", len(regions))
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.out")); err == nil {
		t.Error("expected error for missing file")
	}
}
