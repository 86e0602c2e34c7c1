// Package app wires the clustering and selection stages for the commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yumyai/exoclust/internal/util"
	"github.com/yumyai/exoclust/logger"
	"github.com/yumyai/exoclust/pkg/annotation"
	"github.com/yumyai/exoclust/pkg/cluster"
	"github.com/yumyai/exoclust/pkg/db"
	"github.com/yumyai/exoclust/pkg/model"
	"github.com/yumyai/exoclust/pkg/render"
	"github.com/yumyai/exoclust/pkg/report"
	"github.com/yumyai/exoclust/pkg/selector"
)

// Stdout is the output path meaning standard output.
const Stdout = "-"

type ClusterOptions struct {
	Dir    string
	Suffix string
	Report string
	GFF    string
	DB     *db.ClusterDB
}

type ClusterResult struct {
	Files []*model.FileClusters
	RunID string
}

type SelectOptions struct {
	Report string
	Fasta  string
	Output string
	DB     *db.ClusterDB
	RunID  string
}

type SelectResult struct {
	Selections []model.Selection
	Written    int
}

// ClusterFiles parses and clusters each named file of dir in order. A file
// that fails to parse is left out and its error is joined into the result.
func ClusterFiles(dir string, names []string) ([]*model.FileClusters, error) {
	var files []*model.FileClusters
	var errs []error

	for _, name := range names {
		regions, err := annotation.ParseFile(filepath.Join(dir, name))
		if err != nil {
			logger.Error("Skipping annotation file", zap.String("file", name), zap.Error(err))
			errs = append(errs, err)
			continue
		}

		clusters, err := cluster.Regions(regions)
		if err != nil {
			logger.Error("Skipping annotation file", zap.String("file", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		logger.Info("Clustered annotation file",
			zap.String("file", name),
			zap.Int("regions", len(regions)),
			zap.Int("clusters", len(clusters)))
		files = append(files, &model.FileClusters{File: name, Clusters: clusters})
	}

	return files, errors.Join(errs...)
}

// Cluster runs the clustering stage over a directory of annotation files and
// writes the cluster report. Files that fail are reported in the returned
// error after everything else has been written.
func Cluster(ctx context.Context, opts ClusterOptions) (*ClusterResult, error) {
	if !util.DirExists(opts.Dir) {
		return nil, fmt.Errorf("annotation directory %s: %w", opts.Dir, os.ErrNotExist)
	}

	names, err := util.ListFiles(opts.Dir, opts.Suffix)
	if err != nil {
		return nil, fmt.Errorf("list annotation files: %w", err)
	}
	if len(names) == 0 {
		logger.Warn("No annotation files found", zap.String("dir", opts.Dir), zap.String("suffix", opts.Suffix))
	}

	files, fileErr := ClusterFiles(opts.Dir, names)

	if err := report.WriteFile(opts.Report, files); err != nil {
		return nil, err
	}
	logger.Info("Wrote cluster report", zap.String("report", opts.Report), zap.Int("files", len(files)))

	if opts.GFF != "" {
		if err := writeGFF(opts.GFF, files); err != nil {
			return nil, err
		}
		logger.Info("Wrote cluster GFF", zap.String("gff", opts.GFF))
	}

	res := &ClusterResult{Files: files}
	if opts.DB != nil {
		res.RunID, err = opts.DB.SaveRun(ctx, opts.Dir, files)
		if err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		logger.Info("Saved clustering run", zap.String("run_id", res.RunID))
	}

	return res, fileErr
}

func writeGFF(path string, files []*model.FileClusters) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gff: %w", err)
	}
	if err := render.WriteClustersGFF(f, files); err != nil {
		f.Close()
		return fmt.Errorf("write gff %s: %w", path, err)
	}
	return f.Close()
}

// Select reads a cluster report and a FASTA file and writes the longest
// sequence of every cluster.
func Select(ctx context.Context, opts SelectOptions) (*SelectResult, error) {
	rep, err := report.ParseFile(opts.Report)
	if err != nil {
		return nil, err
	}
	logger.Info("Read cluster report",
		zap.String("report", opts.Report),
		zap.Int("species", len(rep.Species)),
		zap.Int("clusters", rep.NumClusters()))

	seqdb, err := db.LoadSequenceDB(opts.Fasta)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded sequences", zap.String("fasta", opts.Fasta), zap.Int("sequences", seqdb.Len()))

	sels := selector.Select(rep, seqdb)
	logger.Info("Selected representatives", zap.Int("selected", len(sels)))

	n, err := writeOutput(opts.Output, seqdb, selector.IDs(sels))
	if err != nil {
		return nil, err
	}
	logger.Info("Wrote sequences", zap.Int("sequences", n), zap.String("output", opts.Output))

	if opts.DB != nil && opts.RunID != "" {
		if err := opts.DB.SaveRepresentatives(ctx, opts.RunID, sels); err != nil {
			return nil, fmt.Errorf("save representatives: %w", err)
		}
		logger.Info("Saved representatives", zap.String("run_id", opts.RunID))
	}

	return &SelectResult{Selections: sels, Written: n}, nil
}

// writeOutput writes ids as FASTA to path, or to stdout for Stdout.
func writeOutput(path string, seqdb *db.SequenceDB, ids []string) (int, error) {
	if path == Stdout {
		n, err := render.WriteFasta(os.Stdout, seqdb, ids)
		if err != nil {
			return n, fmt.Errorf("write output fasta: %w", err)
		}
		return n, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output fasta: %w", err)
	}
	n, err := render.WriteFasta(f, seqdb, ids)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("write output fasta: %w", err)
	}
	if err := f.Close(); err != nil {
		return n, fmt.Errorf("close output fasta: %w", err)
	}
	return n, nil
}

// Run clusters, writes the report, then selects from that report file.
func Run(ctx context.Context, copts ClusterOptions, sopts SelectOptions) (*SelectResult, error) {
	cres, clusterErr := Cluster(ctx, copts)
	if cres == nil {
		return nil, clusterErr
	}

	sopts.Report = copts.Report
	sopts.DB = copts.DB
	sopts.RunID = cres.RunID

	sres, err := Select(ctx, sopts)
	if err != nil {
		return nil, err
	}
	return sres, clusterErr
}
