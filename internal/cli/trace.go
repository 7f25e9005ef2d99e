package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/scenecore/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Scenario string // filter runs by scenario name
	RunID    string // show the steps of one run
	Latest   bool   // show the latest run of --scenario
	Verify   bool   // recompute step digests
}

// RunTrace is the output of the trace command for one run.
type RunTrace struct {
	Run      store.RunRecord    `json:"run"`
	Steps    []store.StepRecord `json:"steps"`
	Verified bool               `json:"verified,omitempty"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect the run journal",
		Long: `Inspect scenario runs recorded with "scenecore test --db".

Without --run or --latest, lists the recorded runs, optionally filtered by
--scenario. With --run or --latest, shows every step of that run: nonces,
repaint decisions and the step digest. --verify recomputes the digests from
the stored snapshots.

Examples:
  scenecore trace --db ./runs.db
  scenecore trace --db ./runs.db --scenario nested_groups
  scenecore trace --db ./runs.db --scenario nested_groups --latest --verify
  scenecore trace --db ./runs.db --run 0191b3d2-... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "filter by scenario name")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id to show")
	cmd.Flags().BoolVar(&opts.Latest, "latest", false, "show the latest run of --scenario")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "recompute step digests")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	if opts.Latest && opts.Scenario == "" {
		return NewExitError(ExitCommandError, "--latest requires --scenario")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	formatter := newFormatter(cmd, opts.Format)

	if opts.RunID == "" && !opts.Latest {
		runs, err := st.ReadRuns(ctx, opts.Scenario)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read runs", err)
		}
		if opts.Format == "json" {
			return formatter.Success(runs)
		}
		printRuns(cmd.OutOrStdout(), runs)
		return nil
	}

	var run store.RunRecord
	if opts.Latest {
		run, err = st.LatestRun(ctx, opts.Scenario)
	} else {
		run, err = st.ReadRun(ctx, opts.RunID)
	}
	if errors.Is(err, store.ErrRunNotFound) {
		formatter.Error(ErrCodeRunNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "run not found", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	steps, err := st.ReadSteps(ctx, run.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read steps", err)
	}
	out := RunTrace{Run: run, Steps: steps}

	if opts.Verify {
		if err := st.VerifyRun(ctx, run.ID); err != nil {
			var mismatch *store.DigestMismatchError
			if errors.As(err, &mismatch) {
				formatter.Error(ErrCodeDigestMismatch, mismatch.Error(), out)
				return WrapExitError(ExitFailure, "journal integrity check failed", err)
			}
			return WrapExitError(ExitCommandError, "failed to verify run", err)
		}
		out.Verified = true
	}

	if opts.Format == "json" {
		return formatter.Respond(CLIResponse{Status: "ok", Data: out, RunID: run.ID})
	}
	printRunTrace(cmd.OutOrStdout(), out)
	return nil
}

func printRuns(w io.Writer, runs []store.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, r := range runs {
		status := "pass"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%4d  %s  %-6s %-4s %s\n", r.Seq, r.ID, r.KeyMode, status, r.Scenario)
	}
}

func printRunTrace(w io.Writer, t RunTrace) {
	status := "passed"
	if !t.Run.Passed {
		status = "failed"
	}
	fmt.Fprintf(w, "Run %s (#%d): %s, key mode %s, %s\n", t.Run.ID, t.Run.Seq, t.Run.Scenario, t.Run.KeyMode, status)
	for _, e := range t.Run.Errors {
		fmt.Fprintf(w, "  ! %s\n", e)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  #  op             mut  sel  static  interactive  digest")
	for _, s := range t.Steps {
		fmt.Fprintf(w, "%3d  %-13s %4d %4d  %-6s  %-11s  %.12s\n",
			s.Index, s.Op, s.MutationNonce, s.SelectionNonce,
			yesNo(s.StaticPaint), yesNo(s.InteractivePaint), s.Digest)
	}
	if t.Verified {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "✓ All step digests verified")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
