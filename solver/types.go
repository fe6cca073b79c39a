// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"strings"
	"time"

	"github.com/emmelineperneel/UJSSP/instance"
)

// Precision selects the numeric strategy of a run.
type Precision int

const (
	// Native runs on float64.
	Native Precision = iota
	// Arbitrary runs on *big.Float with Options.Bits of mantissa.
	Arbitrary
)

func (p Precision) String() string {
	switch p {
	case Native:
		return "native"
	case Arbitrary:
		return "arbitrary"
	}
	return fmt.Sprintf("precision(%d)", int(p))
}

// ParsePrecision accepts "native"/"float64" and "arbitrary"/"big".
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native", "float", "float64", "double":
		return Native, nil
	case "arbitrary", "big", "mpfr":
		return Arbitrary, nil
	}
	return Native, fmt.Errorf("%w: precision %q", ErrBadOption, s)
}

// State is the driver loop state.
type State int

const (
	StateInitializing State = iota
	StateStepping
	StateFinalizing
	StateDone
	StateTimedOut
)

var stateNames = [...]string{"initializing", "stepping", "finalizing", "done", "timed_out"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result is the outcome of one run.
//
// On StateTimedOut only Mode, Precision, Arith, State, Steps and Elapsed
// are meaningful: the partial envelope does not account for every item and
// is discarded.
type Result struct {
	Mode      instance.Mode
	Precision Precision
	Arith     string // numeric strategy name, e.g. "float64" or "big512"
	State     State
	Steps     int // items fully processed
	Elapsed   time.Duration

	// Diagnostics.
	Considered   int // (candidate, item) pairs examined
	Materialized int // children handed to the envelope
	Removed      int // candidates dropped by dominance or trimming

	// Objective is the expected profit (additive) or the achieved product
	// (multiplicative). ObjectiveText keeps every digit.
	Objective     float64
	ObjectiveText string

	// Include is the inclusion vector in processing order; Selected lists
	// the source IDs of the included items. Both are nil when subsets are
	// not tracked.
	Include  []bool
	Selected []int

	// Multiplicative only.
	Root          float64
	RootText      string
	Found         bool // a subset multiplies exactly to the root
	EarlyMatch    bool // the run stopped on the exact-match fast path
	Closest       float64
	ClosestText   string
	ClosestSubset []int // source IDs, nil when subsets are not tracked
	PrecisionLoss bool  // the numeric strategy cannot resolve the target
}

// StepInfo is passed to Options.OnStep after every processed item.
type StepInfo struct {
	Mode     instance.Mode
	Step     int // zero-based item position in processing order
	Size     int // envelope size after the merge
	Children int // children offered to the envelope
	Kept     int // children the envelope kept
	Removed  int // cumulative removals
	Lower    float64
	Upper    float64
}
