package store

import (
	"context"
	"fmt"

	"github.com/roach88/scenecore/internal/trace"
)

// RunRecord describes one scenario run.
type RunRecord struct {
	ID       string   `json:"id"`
	Scenario string   `json:"scenario"`
	KeyMode  string   `json:"key_mode"`
	Passed   bool     `json:"passed"`
	Errors   []string `json:"errors,omitempty"`

	// Seq is assigned by WriteRun.
	Seq int64 `json:"seq"`
}

// StepRecord is one journaled step.
type StepRecord struct {
	RunID            string `json:"run_id"`
	Index            int    `json:"index"`
	Op               string `json:"op"`
	MutationNonce    int64  `json:"mutation_nonce"`
	SelectionNonce   int64  `json:"selection_nonce"`
	StaticPaint      bool   `json:"static_paint"`
	InteractivePaint bool   `json:"interactive_paint"`

	// Snapshot is the step's canonical JSON (trace.MarshalStep).
	Snapshot string `json:"snapshot"`
	Digest   string `json:"digest"`
}

// WriteRun appends a run and its steps in one transaction and returns the
// run with its assigned seq. Writing an id that already exists is an error.
func (s *Store) WriteRun(ctx context.Context, run RunRecord, steps []trace.Step) (RunRecord, error) {
	if run.ID == "" {
		return RunRecord{}, fmt.Errorf("write run: empty id")
	}

	errorsJSON, err := marshalErrors(run.Errors)
	if err != nil {
		return RunRecord{}, fmt.Errorf("write run %s: %w", run.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunRecord{}, fmt.Errorf("write run %s: begin: %w", run.ID, err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return RunRecord{}, fmt.Errorf("write run %s: next seq: %w", run.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, key_mode, passed, errors, seq)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Scenario,
		run.KeyMode,
		boolToInt(run.Passed),
		errorsJSON,
		run.Seq,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("write run %s: %w", run.ID, err)
	}

	for _, step := range steps {
		data, err := trace.MarshalStep(step)
		if err != nil {
			return RunRecord{}, fmt.Errorf("write run %s: step %d: %w", run.ID, step.Index, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO steps
			(run_id, idx, op, mutation_nonce, selection_nonce, static_paint, interactive_paint, snapshot, digest)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			step.Index,
			step.Op,
			step.MutationNonce,
			step.SelectionNonce,
			boolToInt(step.StaticPaint),
			boolToInt(step.InteractPaint),
			string(data),
			trace.DigestCanonical(data),
		)
		if err != nil {
			return RunRecord{}, fmt.Errorf("write run %s: step %d: %w", run.ID, step.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return RunRecord{}, fmt.Errorf("write run %s: commit: %w", run.ID, err)
	}
	return run, nil
}

// DeleteRun removes a run and its steps. Deleting an unknown run is a no-op.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	return nil
}

func marshalErrors(errs []string) (string, error) {
	items := make([]any, len(errs))
	for i, e := range errs {
		items[i] = e
	}
	data, err := trace.MarshalCanonical(items)
	if err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	return string(data), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
