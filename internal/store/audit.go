// Package store persists generation runs for offline inspection. Only the
// CLI writes here; the engine itself never touches storage. Prompts are
// stored as hashes, not text.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"promptforge/internal/logging"
	"promptforge/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	prompt_hash TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS candidates (
	run_id             TEXT NOT NULL REFERENCES runs(id),
	template           TEXT NOT NULL,
	score              REAL NOT NULL,
	faithfulness_score INTEGER NOT NULL,
	validated          INTEGER NOT NULL,
	violations         INTEGER NOT NULL,
	generation_ms      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_candidates_run ON candidates(run_id);
`

// Run is one recorded pipeline invocation.
type Run struct {
	ID         string
	PromptHash string
	CreatedAt  time.Time
	Duration   time.Duration
	Candidates []CandidateRecord
}

// CandidateRecord is the audit projection of one candidate.
type CandidateRecord struct {
	Template          types.TemplateType
	Score             float64
	FaithfulnessScore int
	Validated         bool
	Violations        int
	GenerationTime    time.Duration
}

// AuditStore is a SQLite-backed run recorder.
type AuditStore struct {
	db *sql.DB
}

// Open creates the database file (and parent directory) if needed and
// applies the schema.
func Open(path string) (*AuditStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create audit dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply audit schema: %w", err)
	}

	logging.Get(logging.CategoryStore).Debug("audit store opened at %s", path)
	return &AuditStore{db: db}, nil
}

// Close releases the database handle.
func (s *AuditStore) Close() error {
	return s.db.Close()
}

// RecordRun writes a run and its candidates in one transaction. A run with
// no ID gets one assigned.
func (s *AuditStore) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, prompt_hash, created_at, duration_ms) VALUES (?, ?, ?, ?)`,
		run.ID, run.PromptHash, run.CreatedAt, run.Duration.Milliseconds(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, c := range run.Candidates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO candidates
			 (run_id, template, score, faithfulness_score, validated, violations, generation_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, string(c.Template), c.Score, c.FaithfulnessScore,
			c.Validated, c.Violations, c.GenerationTime.Milliseconds(),
		); err != nil {
			return fmt.Errorf("insert candidate: %w", err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the newest runs with candidates attached, newest first.
func (s *AuditStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt_hash, created_at, duration_ms
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		if err := rows.Scan(&r.ID, &r.PromptHash, &r.CreatedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		candidates, err := s.runCandidates(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Candidates = candidates
	}
	return runs, nil
}

func (s *AuditStore) runCandidates(ctx context.Context, runID string) ([]CandidateRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT template, score, faithfulness_score, validated, violations, generation_ms
		 FROM candidates WHERE run_id = ? ORDER BY score DESC, template`, runID)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var out []CandidateRecord
	for rows.Next() {
		var c CandidateRecord
		var tmpl string
		var genMs int64
		if err := rows.Scan(&tmpl, &c.Score, &c.FaithfulnessScore,
			&c.Validated, &c.Violations, &genMs); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.Template = types.TemplateType(tmpl)
		c.GenerationTime = time.Duration(genMs) * time.Millisecond
		out = append(out, c)
	}
	return out, rows.Err()
}

// HashPrompt returns the hex SHA-256 of a prompt.
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// RecordFromCandidates converts engine output into audit records.
func RecordFromCandidates(candidates []types.TemplateCandidate) []CandidateRecord {
	out := make([]CandidateRecord, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, CandidateRecord{
			Template:          c.Template,
			Score:             c.Score,
			FaithfulnessScore: c.Faithfulness.Score,
			Validated:         c.FaithfulnessValidated,
			Violations:        len(c.Faithfulness.Violations),
			GenerationTime:    c.GenerationTime,
		})
	}
	return out
}
