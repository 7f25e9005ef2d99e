package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/scenecore/internal/session"
	"github.com/roach88/scenecore/internal/trace"
)

// AssertionError is returned when a step expectation fails.
type AssertionError struct {
	Step     int    // Step index
	Op       string // Step op
	Field    string // Expectation name, e.g. "selected"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "step %d (%s): %s mismatch\n", e.Step, e.Op, e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// checkExpect compares the observed step against exp.
func checkExpect(sess *session.Session, obs trace.Step, exp *Expect) []error {
	var errs []error
	fail := func(field string, expected, actual any) {
		errs = append(errs, &AssertionError{
			Step:     obs.Index,
			Op:       obs.Op,
			Field:    field,
			Expected: fmt.Sprint(expected),
			Actual:   fmt.Sprint(actual),
		})
	}
	ids := func(field string, expected, actual []string) {
		if expected == nil {
			return
		}
		want := sortedCopy(expected)
		if !slices.Equal(want, sortedCopy(actual)) {
			fail(field, want, sortedCopy(actual))
		}
	}

	ids("selected", exp.Selected, obs.Selected)
	ids("groups", exp.Groups, obs.Groups)
	ids("outlined", exp.Outlined, obs.Outlined)

	if exp.EditingGroup != nil && *exp.EditingGroup != obs.EditingGroup {
		fail("editing_group", quote(*exp.EditingGroup), quote(obs.EditingGroup))
	}
	if exp.SomeSelected != nil {
		if got := sess.IsSomeElementSelected(); got != *exp.SomeSelected {
			fail("some_selected", *exp.SomeSelected, got)
		}
	}
	if exp.CommonType != nil {
		got := ""
		if t, ok := sess.CommonType(); ok {
			got = string(t)
		}
		if got != *exp.CommonType {
			fail("common_type", quote(*exp.CommonType), quote(got))
		}
	}
	if exp.SameGroup != nil {
		if got := sess.SameGroup(); got != *exp.SameGroup {
			fail("same_group", *exp.SameGroup, got)
		}
	}
	if exp.Static != nil && *exp.Static != obs.StaticPaint {
		fail("static", *exp.Static, obs.StaticPaint)
	}
	if exp.Interactive != nil && *exp.Interactive != obs.InteractPaint {
		fail("interactive", *exp.Interactive, obs.InteractPaint)
	}
	if exp.MutationNonce != nil && *exp.MutationNonce != obs.MutationNonce {
		fail("mutation_nonce", *exp.MutationNonce, obs.MutationNonce)
	}
	if exp.SelectionNonce != nil && *exp.SelectionNonce != obs.SelectionNonce {
		fail("selection_nonce", *exp.SelectionNonce, obs.SelectionNonce)
	}
	if exp.Flushed != nil && *exp.Flushed != obs.Flushed {
		fail("flushed", *exp.Flushed, obs.Flushed)
	}
	if exp.Created != nil && *exp.Created != len(obs.Created) {
		fail("created", *exp.Created, len(obs.Created))
	}

	groupIDs := make([]string, 0, len(exp.Members))
	for gid := range exp.Members {
		groupIDs = append(groupIDs, gid)
	}
	slices.Sort(groupIDs)
	for _, gid := range groupIDs {
		ids("members["+gid+"]", exp.Members[gid], sess.GroupMembers(gid))
	}

	return errs
}

func sortedCopy(s []string) []string {
	out := append([]string{}, s...)
	slices.Sort(out)
	return out
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
