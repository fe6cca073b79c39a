// SPDX-License-Identifier: MIT

package solver

import "errors"

// Sentinel errors. Envelope defects (envelope.ErrNumericInstability,
// envelope.ErrInvariant, envelope.ErrBoundsCrossed) and instance errors are
// passed through wrapped, so errors.Is works across packages.
var (
	// ErrNilInstance indicates a nil *instance.Instance.
	ErrNilInstance = errors.New("solver: instance is nil")

	// ErrBadOption indicates an Options value no constructor would produce.
	ErrBadOption = errors.New("solver: invalid option")

	// ErrBudgetTooLarge indicates that the DP budget (sum of costs) exceeds
	// MaxDPBudget.
	ErrBudgetTooLarge = errors.New("solver: DP budget too large")
)

// errUnreachable is internal: the multiplicative bounds crossed, which
// proves no subset can hit the target. It ends the run with a "no".
var errUnreachable = errors.New("solver: target unreachable")
