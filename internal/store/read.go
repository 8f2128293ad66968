package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReadOutput returns the recorded output of a source. The boolean is false
// when the source was never generated.
func (s *Store) ReadOutput(ctx context.Context, source string) (Output, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT source, output, fingerprint, config_hash, code_hash, run_id
		FROM outputs
		WHERE source = ?
	`, source)

	var out Output
	err := row.Scan(&out.Source, &out.Output, &out.Fingerprint, &out.ConfigHash, &out.CodeHash, &out.RunID)
	if errors.Is(err, sql.ErrNoRows) {
		return Output{}, false, nil
	}
	if err != nil {
		return Output{}, false, fmt.Errorf("read output: %w", err)
	}
	return out, true, nil
}

// ReadRunOutputs returns the outputs last written by a run, ordered by
// source.
//
// Returns an empty slice (not nil) if the run wrote nothing.
func (s *Store) ReadRunOutputs(ctx context.Context, runID string) ([]Output, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, output, fingerprint, config_hash, code_hash, run_id
		FROM outputs
		WHERE run_id = ?
		ORDER BY source COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outputs: %w", err)
	}
	defer rows.Close()

	outputs := []Output{}
	for rows.Next() {
		var out Output
		if err := rows.Scan(&out.Source, &out.Output, &out.Fingerprint, &out.ConfigHash, &out.CodeHash, &out.RunID); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		outputs = append(outputs, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outputs: %w", err)
	}
	return outputs, nil
}

// ReadRuns returns every run ordered by sequence number.
func (s *Store) ReadRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, seq FROM runs ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Fresh reports whether out matches the recorded output of its source:
// same generated path, fingerprint and configuration hash. Callers still
// need to check that the file on disk hashes to the recorded CodeHash.
func (s *Store) Fresh(ctx context.Context, out Output) (Output, bool, error) {
	rec, ok, err := s.ReadOutput(ctx, out.Source)
	if err != nil || !ok {
		return Output{}, false, err
	}
	fresh := rec.Output == out.Output &&
		rec.Fingerprint == out.Fingerprint &&
		rec.ConfigHash == out.ConfigHash
	return rec, fresh, nil
}
