package store

import (
	"context"
	"fmt"
)

// Run is one generate invocation.
type Run struct {
	ID  string
	Seq int64
}

// Output records the file generated from a source.
type Output struct {
	Source      string
	Output      string
	Fingerprint string
	ConfigHash  string
	CodeHash    string
	RunID       string
}

// BeginRun records a new run with the next sequence number.
func (s *Store) BeginRun(ctx context.Context, gen IDGenerator) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}

	run := Run{ID: gen.Generate(), Seq: seq}
	if _, err := tx.ExecContext(ctx, `INSERT INTO runs (id, seq) VALUES (?, ?)`, run.ID, run.Seq); err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	return run, nil
}

// RecordOutput stores the output of a source, replacing the previous
// record of the same source.
//
// Note: The run referenced by RunID must exist (foreign key constraint).
func (s *Store) RecordOutput(ctx context.Context, out Output) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outputs (source, output, fingerprint, config_hash, code_hash, run_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			output = excluded.output,
			fingerprint = excluded.fingerprint,
			config_hash = excluded.config_hash,
			code_hash = excluded.code_hash,
			run_id = excluded.run_id
	`,
		out.Source,
		out.Output,
		out.Fingerprint,
		out.ConfigHash,
		out.CodeHash,
		out.RunID,
	)
	if err != nil {
		return fmt.Errorf("record output: %w", err)
	}
	return nil
}
