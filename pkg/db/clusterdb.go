package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yumyai/exoclust/logger"
	"github.com/yumyai/exoclust/pkg/model"

	_ "modernc.org/sqlite"
)

var ErrRunNotFound = errors.New("run not found")

// fixed width so created_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id     TEXT PRIMARY KEY,
		source     TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS clusters (
		run_id         TEXT NOT NULL,
		species        TEXT NOT NULL,
		file           TEXT NOT NULL,
		file_no        INTEGER NOT NULL,
		cluster_no     INTEGER NOT NULL,
		representative TEXT,
		rep_length     INTEGER,
		PRIMARY KEY (run_id, species, cluster_no)
	);
	CREATE TABLE IF NOT EXISTS cluster_members (
		run_id         TEXT NOT NULL,
		species        TEXT NOT NULL,
		cluster_no     INTEGER NOT NULL,
		member_no      INTEGER NOT NULL,
		seq_id         TEXT NOT NULL,
		seq_name       TEXT NOT NULL,
		start_location INTEGER NOT NULL,
		end_location   INTEGER NOT NULL,
		strand         TEXT NOT NULL,
		PRIMARY KEY (run_id, species, cluster_no, member_no)
	);
`

// ClusterDB persists clustering runs and their representatives in sqlite.
type ClusterDB struct {
	db *sql.DB
}

type Run struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Species   int       `json:"species"`
	Clusters  int       `json:"clusters"`
}

type StoredCluster struct {
	Species        string          `json:"species"`
	Number         int             `json:"cluster"`
	Representative string          `json:"representative,omitempty"`
	RepLength      int             `json:"rep_length,omitempty"`
	Members        []*model.Region `json:"members"`
}

func OpenClusterDB(path string) (*ClusterDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cluster db: %w", err)
	}
	// sqlite allows one writer; keep every statement on one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &ClusterDB{db: db}, nil
}

func (cdb *ClusterDB) Close() error {
	return cdb.db.Close()
}

func (cdb *ClusterDB) Ping(ctx context.Context) error {
	return cdb.db.PingContext(ctx)
}

// SaveRun stores every cluster of every file under a new run id.
func (cdb *ClusterDB) SaveRun(ctx context.Context, source string, files []*model.FileClusters) (string, error) {
	runID := uuid.New().String()

	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("fail to begin tx %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs (run_id, source, created_at) VALUES (?, ?, ?)`,
		runID, source, time.Now().UTC().Format(timeLayout)); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	clusterStm, err := tx.PrepareContext(ctx,
		`INSERT INTO clusters (run_id, species, file, file_no, cluster_no) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer clusterStm.Close()

	memberStm, err := tx.PrepareContext(ctx, `
		INSERT INTO cluster_members
			(run_id, species, cluster_no, member_no, seq_id, seq_name, start_location, end_location, strand)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer memberStm.Close()

	for fileNo, f := range files {
		species := f.Species()

		// Same rule as the report parser: a repeated species label replaces the earlier section.
		for _, q := range []string{
			`DELETE FROM clusters WHERE run_id = ? AND species = ?`,
			`DELETE FROM cluster_members WHERE run_id = ? AND species = ?`,
		} {
			if _, err := tx.ExecContext(ctx, q, runID, species); err != nil {
				return "", fmt.Errorf("replace species %s: %w", species, err)
			}
		}

		for i, c := range f.Clusters {
			if _, err := clusterStm.ExecContext(ctx, runID, species, f.File, fileNo, i+1); err != nil {
				return "", fmt.Errorf("insert cluster %s/%d: %w", species, i+1, err)
			}
			for j, r := range c.Regions {
				if _, err := memberStm.ExecContext(ctx, runID, species, i+1, j+1,
					r.SeqID, r.SeqName, r.Start, r.End, r.Strand); err != nil {
					return "", fmt.Errorf("insert member %s: %w", r.SeqID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

func (cdb *ClusterDB) checkRun(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, runID string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE run_id = ?`, runID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return err
}

// SaveRepresentatives records the chosen sequence of each cluster of a run.
func (cdb *ClusterDB) SaveRepresentatives(ctx context.Context, runID string, sels []model.Selection) error {
	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("fail to begin tx %w", err)
	}
	defer tx.Rollback()

	if err := cdb.checkRun(ctx, tx, runID); err != nil {
		return err
	}

	for _, s := range sels {
		res, err := tx.ExecContext(ctx, `
			UPDATE clusters SET representative = ?, rep_length = ?
			WHERE run_id = ? AND species = ? AND cluster_no = ?`,
			s.SeqID, s.Length, runID, s.Species, s.Cluster)
		if err != nil {
			return fmt.Errorf("update representative %s/%d: %w", s.Species, s.Cluster, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			logger.Warn("Cluster not found in run",
				zap.String("run_id", runID), zap.String("species", s.Species), zap.Int("cluster", s.Cluster))
		}
	}

	return tx.Commit()
}

// Runs lists stored runs, newest first.
func (cdb *ClusterDB) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := cdb.db.QueryContext(ctx, `
		SELECT r.run_id, r.source, r.created_at,
			COUNT(DISTINCT c.species), COUNT(c.cluster_no)
		FROM runs r
		LEFT JOIN clusters c ON c.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.RunID, &r.Source, &created, &r.Species, &r.Clusters); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("run %s: bad timestamp: %w", r.RunID, err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// Species returns the species of a run in file order.
func (cdb *ClusterDB) Species(ctx context.Context, runID string) ([]string, error) {
	if err := cdb.checkRun(ctx, cdb.db, runID); err != nil {
		return nil, err
	}

	rows, err := cdb.db.QueryContext(ctx, `
		SELECT species FROM clusters WHERE run_id = ?
		GROUP BY species ORDER BY MIN(file_no)`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	species := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		species = append(species, s)
	}
	return species, rows.Err()
}

// Clusters returns the clusters of one species with members in membership order.
func (cdb *ClusterDB) Clusters(ctx context.Context, runID, species string) ([]*StoredCluster, error) {
	if err := cdb.checkRun(ctx, cdb.db, runID); err != nil {
		return nil, err
	}

	rows, err := cdb.db.QueryContext(ctx, `
		SELECT c.cluster_no, COALESCE(c.representative, ''), COALESCE(c.rep_length, 0),
			m.seq_id, m.seq_name, m.start_location, m.end_location, m.strand
		FROM clusters c
		JOIN cluster_members m
			ON m.run_id = c.run_id AND m.species = c.species AND m.cluster_no = c.cluster_no
		WHERE c.run_id = ? AND c.species = ?
		ORDER BY c.cluster_no, m.member_no`, runID, species)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clusters := []*StoredCluster{}
	var current *StoredCluster
	for rows.Next() {
		var no, repLen int
		var rep string
		var r model.Region
		if err := rows.Scan(&no, &rep, &repLen, &r.SeqID, &r.SeqName, &r.Start, &r.End, &r.Strand); err != nil {
			return nil, fmt.Errorf("scan cluster member: %w", err)
		}
		if current == nil || current.Number != no {
			current = &StoredCluster{Species: species, Number: no, Representative: rep, RepLength: repLen}
			clusters = append(clusters, current)
		}
		current.Members = append(current.Members, &r)
	}
	return clusters, rows.Err()
}
