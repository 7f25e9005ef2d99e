// Package store provides a SQLite journal of scenario runs.
//
// Every run of a scenario is recorded with its outcome, and every step with
// the nonces, repaint decisions and canonical snapshot observed after it:
//   - runs: one row per scenario run, ordered by a store-assigned seq
//   - steps: one row per step, keyed by (run_id, idx)
//
// # Ordering
//
// All queries order by seq (runs) or idx (steps), never by wall time, so
// reading a journal back is deterministic.
//
// # Integrity
//
// Each step row carries the domain-separated SHA-256 of its canonical
// snapshot (see trace.DigestCanonical). VerifyRun recomputes them.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
