// SPDX-License-Identifier: MIT

package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/solver"
)

// Record is the persisted outcome of one run.
type Record struct {
	RunID     string  `json:"run_id" yaml:"run_id"`
	Mode      string  `json:"mode" yaml:"mode"`
	Precision string  `json:"precision" yaml:"precision"`
	Arith     string  `json:"arith" yaml:"arith"`
	State     string  `json:"state" yaml:"state"`
	Items     int     `json:"items" yaml:"items"`
	Steps     int     `json:"steps" yaml:"steps"`
	Seconds   float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`

	Considered   int `json:"considered" yaml:"considered"`
	Materialized int `json:"materialized" yaml:"materialized"`
	Removed      int `json:"removed" yaml:"removed"`

	Objective     float64 `json:"objective" yaml:"objective"`
	ObjectiveText string  `json:"objective_text,omitempty" yaml:"objective_text,omitempty"`

	// Include is in processing order, SourceInclude is indexed by item ID.
	Include       []bool `json:"include,omitempty" yaml:"include,omitempty"`
	SourceInclude []bool `json:"source_include,omitempty" yaml:"source_include,omitempty"`
	Selected      []int  `json:"selected,omitempty" yaml:"selected,omitempty"`

	Product *ProductInfo `json:"product,omitempty" yaml:"product,omitempty"`

	// in keeps the items in processing order for the "out" format.
	in *instance.Instance
}

// ProductInfo holds the multiplicative-only fields.
type ProductInfo struct {
	Root          string `json:"root" yaml:"root"`
	Found         bool   `json:"found" yaml:"found"`
	EarlyMatch    bool   `json:"early_match" yaml:"early_match"`
	Closest       string `json:"closest" yaml:"closest"`
	ClosestSubset []int  `json:"closest_subset,omitempty" yaml:"closest_subset,omitempty"`
	PrecisionLoss bool   `json:"precision_loss" yaml:"precision_loss"`
}

// New builds a Record with a fresh run ID. in must be the instance the
// result was computed on, in the same order.
func New(res solver.Result, in *instance.Instance) Record {
	r := Record{
		RunID:         uuid.NewString(),
		Mode:          res.Mode.String(),
		Precision:     res.Precision.String(),
		Arith:         res.Arith,
		State:         res.State.String(),
		Items:         in.Len(),
		Steps:         res.Steps,
		Seconds:       res.Elapsed.Seconds(),
		Considered:    res.Considered,
		Materialized:  res.Materialized,
		Removed:       res.Removed,
		Objective:     res.Objective,
		ObjectiveText: res.ObjectiveText,
		Include:       res.Include,
		Selected:      res.Selected,
		in:            in,
	}
	if res.Selected != nil {
		r.SourceInclude = make([]bool, in.Len())
		for _, id := range res.Selected {
			if id >= 0 && id < len(r.SourceInclude) {
				r.SourceInclude[id] = true
			}
		}
	}
	if res.Mode == instance.Multiplicative && res.State == solver.StateDone {
		r.Product = &ProductInfo{
			Root:          res.RootText,
			Found:         res.Found,
			EarlyMatch:    res.EarlyMatch,
			Closest:       res.ClosestText,
			ClosestSubset: res.ClosestSubset,
			PrecisionLoss: res.PrecisionLoss,
		}
	}
	return r
}

// TimedOut reports whether the run hit its time budget.
func (r Record) TimedOut() bool { return r.State == solver.StateTimedOut.String() }

// Elapsed returns the run time as a duration.
func (r Record) Elapsed() time.Duration {
	return time.Duration(r.Seconds * float64(time.Second))
}
