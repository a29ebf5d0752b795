package network

import (
	"github.com/bill-pace/assignment-solver/pkg/apperror"
)

// Sentinel errors returned by Solve and the add* constructors. Callers
// should use errors.Is against these, since apperror.Is also works but
// requires importing pkg/apperror just to compare codes.
var (
	// ErrInsufficientWorkers means fewer workers were added than the
	// sum of every task's minimum headcount.
	ErrInsufficientWorkers = apperror.New(apperror.CodeInsufficientWorkers,
		"worker count is below the sum of task minimums")

	// ErrInsufficientCapacity means more workers were added than the
	// sum of every task's maximum headcount.
	ErrInsufficientCapacity = apperror.New(apperror.CodeInsufficientCapacity,
		"worker count exceeds the sum of task maximums")

	// ErrInfeasible means the counts were plausible but no augmenting
	// path could be found to route every worker to a task, usually
	// because a worker's affinity list does not reach a task that
	// still needs its minimum satisfied.
	ErrInfeasible = apperror.New(apperror.CodeInfeasible,
		"no feasible assignment exists for this worker and task configuration")

	// ErrUnknownTask means a worker's affinity list named a task that
	// was never added to the network.
	ErrUnknownTask = apperror.New(apperror.CodeUnknownTask, "affinity references an unknown task")

	// ErrDuplicateName means a task or worker name was added twice.
	ErrDuplicateName = apperror.New(apperror.CodeDuplicateName, "name already in use")

	// ErrInvalidBounds means a task's minimum exceeds its maximum, or
	// either bound is negative.
	ErrInvalidBounds = apperror.New(apperror.CodeInvalidBounds, "minimum must be >= 0 and <= maximum")
)

// invariantViolation builds the *apperror.Error panicked on whenever an
// internal assumption about the arena's bookkeeping is violated: these
// are bugs in this package, never caller mistakes, so they abort rather
// than return an error value.
func invariantViolation(message string) *apperror.Error {
	return apperror.NewCritical(apperror.CodeInternal, message)
}

// withField rewraps one of the sentinel errors above with a specific
// field name, preserving errors.Is compatibility through apperror's
// Unwrap chain.
func withField(sentinel *apperror.Error, field string) error {
	return apperror.Wrap(sentinel, sentinel.Code, sentinel.Message).WithField(field)
}
