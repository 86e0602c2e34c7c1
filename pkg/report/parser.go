package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/yumyai/exoclust/pkg/model"
)

type state int

const (
	stateNoFile state = iota
	stateInFile
	stateInCluster
)

func (s state) String() string {
	switch s {
	case stateNoFile:
		return "NoFile"
	case stateInFile:
		return "InFile"
	case stateInCluster:
		return "InCluster"
	default:
		return "unknown"
	}
}

const clusterPrefix = "Cluster"

var fileHeader = regexp.MustCompile(`^=== File: (.*) ===$`)

// memberShape is the member line layout produced by Write, after trimming.
var memberShape = regexp.MustCompile(`^\S+ \(.+:\d+-\d+, strand \S*\)$`)

// isMemberLine reports whether a trimmed report line carries a sequence id for
// the species section labelled label. A line whose text starts with the label
// is claimed by that section, so a label that prefixes another label or an id
// can take lines it does not own. Lines in the layout Write emits are also
// accepted, since ids are not required to carry the species label.
// An empty label never matches by prefix.
func isMemberLine(trimmed, label string) bool {
	if label != "" && strings.HasPrefix(trimmed, label) {
		return true
	}
	return memberShape.MatchString(trimmed)
}

type parser struct {
	report  *model.ClusterReport
	state   state
	species *model.SpeciesClusters
}

func newParser() *parser {
	return &parser{report: model.NewClusterReport(), state: stateNoFile}
}

func (p *parser) feed(line string) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	trimmed := strings.TrimSpace(line)

	if m := fileHeader.FindStringSubmatch(line); m != nil {
		p.species = p.report.Start(model.SpeciesLabel(m[1]))
		p.state = stateInFile
		return
	}

	switch {
	case p.species != nil && strings.HasPrefix(trimmed, clusterPrefix):
		p.species.Clusters = append(p.species.Clusters, []string{})
		p.state = stateInCluster

	case p.state == stateInCluster && isMemberLine(trimmed, p.species.Species):
		last := len(p.species.Clusters) - 1
		p.species.Clusters[last] = append(p.species.Clusters[last], strings.Fields(trimmed)[0])

	case trimmed == "":
		if p.state == stateInCluster {
			p.state = stateInFile
		}
	}
}

// Parse rebuilds species -> clusters -> seq ids from a cluster report.
// Lines that fit no rule are skipped.
func Parse(r io.Reader) (*model.ClusterReport, error) {
	p := newParser()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		p.feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan cluster report: %w", err)
	}

	return p.report, nil
}

func ParseFile(path string) (*model.ClusterReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cluster report: %w", err)
	}
	return Parse(bytes.NewReader(data))
}
