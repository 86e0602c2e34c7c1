// Gene feature extraction from aligner GFF-like output

package annotation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/yumyai/exoclust/pkg/model"
)

const (
	numFields   = 9
	featureGene = "gene"
	maxLine     = 16 * 1024 * 1024
)

var ErrBadCoordinate = errors.New("coordinate is not an integer")

// ErrCoordinateRange marks an end coordinate the region index cannot hold.
var ErrCoordinateRange = errors.New("coordinate out of range")

var seqIDPattern = regexp.MustCompile(`sequence\s+(\S+)`)

// ParseError is fatal for the file it names.
type ParseError struct {
	File  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s %q: %v", e.File, e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseFile reads the whole file and extracts its gene regions.
func ParseFile(path string) ([]*model.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotation file: %w", err)
	}
	return Parse(bytes.NewReader(data), filepath.Base(path))
}

// Parse returns the gene regions of r in file order. name is only used in errors.
func Parse(r io.Reader, name string) ([]*model.Region, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var regions []*model.Region
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) < numFields || fields[2] != featureGene {
			continue
		}

		start, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, &ParseError{File: name, Line: lineNo, Field: "start", Value: fields[3], Err: ErrBadCoordinate}
		}
		end, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, &ParseError{File: name, Line: lineNo, Field: "end", Value: fields[4], Err: ErrBadCoordinate}
		}
		if end == math.MaxInt {
			return nil, &ParseError{File: name, Line: lineNo, Field: "end", Value: fields[4], Err: ErrCoordinateRange}
		}
		if end < start {
			return nil, &ParseError{File: name, Line: lineNo, Field: "end", Value: fields[4],
				Err: fmt.Errorf("end before start %d", start)}
		}

		seqID := model.UnknownSeqID
		if m := seqIDPattern.FindStringSubmatch(fields[8]); m != nil {
			seqID = m[1]
		}

		regions = append(regions, &model.Region{
			SeqID:   seqID,
			SeqName: fields[0],
			Start:   start,
			End:     end,
			Strand:  fields[6],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", name, err)
	}

	return regions, nil
}
