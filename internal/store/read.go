package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/scenecore/internal/trace"
)

// ErrRunNotFound is returned when a run id is not in the journal.
var ErrRunNotFound = errors.New("run not found")

// DigestMismatchError reports a step whose stored digest does not match its
// stored snapshot.
type DigestMismatchError struct {
	RunID    string
	Index    int
	Stored   string
	Computed string
}

func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf("run %s step %d: digest %s does not match snapshot (computed %s)",
		e.RunID, e.Index, e.Stored, e.Computed)
}

// ReadRuns returns the runs of scenario ordered by seq, or every run when
// scenario is "". Returns an empty slice (not nil) when there are none.
func (s *Store) ReadRuns(ctx context.Context, scenario string) ([]RunRecord, error) {
	query := `
		SELECT id, scenario, key_mode, passed, errors, seq
		FROM runs
		ORDER BY seq ASC`
	args := []any{}
	if scenario != "" {
		query = `
		SELECT id, scenario, key_mode, passed, errors, seq
		FROM runs
		WHERE scenario = ?
		ORDER BY seq ASC`
		args = append(args, scenario)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns one run by id, or ErrRunNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, key_mode, passed, errors, seq
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	return run, err
}

// LatestRun returns the most recent run of scenario, or ErrRunNotFound.
func (s *Store) LatestRun(ctx context.Context, scenario string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, key_mode, passed, errors, seq
		FROM runs
		WHERE scenario = ?
		ORDER BY seq DESC
		LIMIT 1
	`, scenario)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("latest run of %s: %w", scenario, ErrRunNotFound)
	}
	return run, err
}

// ReadSteps returns the steps of a run ordered by index.
func (s *Store) ReadSteps(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, idx, op, mutation_nonce, selection_nonce, static_paint, interactive_paint, snapshot, digest
		FROM steps
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []StepRecord{}
	for rows.Next() {
		var st StepRecord
		var static, interactive int
		if err := rows.Scan(
			&st.RunID,
			&st.Index,
			&st.Op,
			&st.MutationNonce,
			&st.SelectionNonce,
			&static,
			&interactive,
			&st.Snapshot,
			&st.Digest,
		); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		st.StaticPaint = static != 0
		st.InteractivePaint = interactive != 0
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// VerifyRun recomputes every step digest of a run from its stored snapshot.
// Returns a *DigestMismatchError for the first step that does not match.
func (s *Store) VerifyRun(ctx context.Context, runID string) error {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return err
	}
	steps, err := s.ReadSteps(ctx, runID)
	if err != nil {
		return err
	}
	for _, st := range steps {
		if computed := trace.DigestCanonical([]byte(st.Snapshot)); computed != st.Digest {
			return &DigestMismatchError{
				RunID:    runID,
				Index:    st.Index,
				Stored:   st.Digest,
				Computed: computed,
			}
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var run RunRecord
	var passed int
	var errorsJSON string
	if err := row.Scan(&run.ID, &run.Scenario, &run.KeyMode, &passed, &errorsJSON, &run.Seq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, err
		}
		return RunRecord{}, fmt.Errorf("scan run: %w", err)
	}
	run.Passed = passed != 0
	if err := json.Unmarshal([]byte(errorsJSON), &run.Errors); err != nil {
		return RunRecord{}, fmt.Errorf("unmarshal run errors: %w", err)
	}
	if len(run.Errors) == 0 {
		run.Errors = nil
	}
	return run, nil
}
