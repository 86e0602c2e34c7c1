package db

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

type NoSequenceError struct {
	ID string
}

func (e *NoSequenceError) Error() string {
	return fmt.Sprintf("Sequence error: %s not found", e.ID)
}

// SequenceDB is an in-memory id -> sequence map loaded from a FASTA file.
// It is read-only once loaded.
type SequenceDB struct {
	seqs  map[string]string
	order []string
}

func NewSequenceDB() *SequenceDB {
	return &SequenceDB{seqs: make(map[string]string)}
}

// LoadSequenceDB reads a FASTA file (optionally gzip compressed) into memory.
func LoadSequenceDB(path string) (*SequenceDB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}

	var r io.Reader = bytes.NewReader(data)
	if len(data) > 1 && data[0] == 0x1f && data[1] == 0x8b {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip fasta %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	seqdb, err := ParseFasta(r)
	if err != nil {
		return nil, fmt.Errorf("parse fasta %s: %w", path, err)
	}
	return seqdb, nil
}

// ParseFasta builds a SequenceDB. The id is the first whitespace-delimited
// token after '>'; sequence lines lose only their line terminators. A repeated
// id keeps the later record. Records without an id and lines before the first
// header are dropped.
func ParseFasta(r io.Reader) (*SequenceDB, error) {
	seqdb := NewSequenceDB()
	reader := bufio.NewReader(r)

	var (
		id      string
		inEntry bool
		seq     strings.Builder
	)

	flush := func() {
		if inEntry && id != "" {
			seqdb.put(id, seq.String())
		}
		seq.Reset()
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if strings.HasPrefix(line, ">") {
			flush()
			inEntry = true
			id = ""
			if fields := strings.Fields(line[1:]); len(fields) > 0 {
				id = fields[0]
			}
		} else if inEntry {
			seq.WriteString(line)
		}

		if err == io.EOF {
			break
		}
	}
	flush()

	return seqdb, nil
}

func (seqdb *SequenceDB) put(id, seq string) {
	if _, ok := seqdb.seqs[id]; !ok {
		seqdb.order = append(seqdb.order, id)
	}
	seqdb.seqs[id] = seq
}

func (seqdb *SequenceDB) Get(id string) (string, bool) {
	s, ok := seqdb.seqs[id]
	return s, ok
}

func (seqdb *SequenceDB) Sequence(id string) (string, error) {
	s, ok := seqdb.seqs[id]
	if !ok {
		return "", &NoSequenceError{ID: id}
	}
	return s, nil
}

// IDs returns ids in the order they first appeared.
func (seqdb *SequenceDB) IDs() []string {
	return seqdb.order
}

func (seqdb *SequenceDB) Len() int {
	return len(seqdb.seqs)
}
