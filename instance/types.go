// SPDX-License-Identifier: MIT

package instance

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors.
var (
	// ErrMalformed reports a line that cannot be parsed.
	ErrMalformed = errors.New("instance: malformed input")

	// ErrCount reports a header count that does not match the item lines.
	ErrCount = errors.New("instance: item count mismatch")

	// ErrInvalidItem reports an item whose values are out of range.
	ErrInvalidItem = errors.New("instance: invalid item")

	// ErrUnsupportedMode reports an unknown mode, or an operation that does
	// not apply to the instance's mode.
	ErrUnsupportedMode = errors.New("instance: unsupported mode")

	// ErrGenerate reports a generator that could not build an instance.
	ErrGenerate = errors.New("instance: generation failed")
)

// Mode selects how an item composes with a candidate.
type Mode int

const (
	// Additive is expected profit over unreliable jobs.
	Additive Mode = iota
	// Multiplicative is product partition over integer factors.
	Multiplicative
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Additive:
		return "additive"
	case Multiplicative:
		return "multiplicative"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != Additive && m != Multiplicative {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode accepts "additive"/"jobs" and "multiplicative"/"factors".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "additive", "jobs":
		return Additive, nil
	case "multiplicative", "factors", "product":
		return Multiplicative, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// Job is an unreliable job: paying Cost yields Revenue with probability
// Prob, and only if every earlier selected job succeeded too.
type Job struct {
	ID      int     `json:"id" yaml:"id" validate:"gte=0"`
	Revenue int64   `json:"revenue" yaml:"revenue" validate:"gte=0"`
	Cost    int64   `json:"cost" yaml:"cost" validate:"gte=0"`
	Prob    float64 `json:"prob" yaml:"prob" validate:"gt=0,lte=1"`
}

// Ratio is r·p/(1−p), the order key of the default job ordering.
// A certain job (p = 1) has ratio +Inf.
func (j Job) Ratio() float64 {
	return float64(j.Revenue) * j.Prob / (1 - j.Prob)
}

// Factor is a positive integer of a product partition instance.
type Factor struct {
	ID    int   `json:"id" yaml:"id" validate:"gte=0"`
	Value int64 `json:"value" yaml:"value" validate:"gte=1"`
}

// Instance is one problem: Jobs for Additive, Factors for Multiplicative.
type Instance struct {
	Mode    Mode     `json:"mode" yaml:"mode"`
	Jobs    []Job    `json:"jobs,omitempty" yaml:"jobs,omitempty" validate:"dive"`
	Factors []Factor `json:"factors,omitempty" yaml:"factors,omitempty" validate:"dive"`
}

var validate = validator.New()

// Len returns the number of items of the instance's mode.
func (in *Instance) Len() int {
	if in.Mode == Multiplicative {
		return len(in.Factors)
	}
	return len(in.Jobs)
}

// Validate checks every item and that only the slice matching Mode is set.
func (in *Instance) Validate() error {
	switch in.Mode {
	case Additive:
		if len(in.Factors) != 0 {
			return fmt.Errorf("%w: additive instance carries factors", ErrInvalidItem)
		}
	case Multiplicative:
		if len(in.Jobs) != 0 {
			return fmt.Errorf("%w: multiplicative instance carries jobs", ErrInvalidItem)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedMode, int(in.Mode))
	}
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return nil
}

// Product returns the joint product of all factors.
func (in *Instance) Product() *big.Int {
	p := big.NewInt(1)
	var v big.Int
	for _, f := range in.Factors {
		p.Mul(p, v.SetInt64(f.Value))
	}
	return p
}

// Clone returns a deep copy.
func (in *Instance) Clone() *Instance {
	out := &Instance{Mode: in.Mode}
	if in.Jobs != nil {
		out.Jobs = append([]Job(nil), in.Jobs...)
	}
	if in.Factors != nil {
		out.Factors = append([]Factor(nil), in.Factors...)
	}
	return out
}

// NewJobs builds an additive instance, numbering jobs in the given order.
func NewJobs(jobs ...Job) *Instance {
	in := &Instance{Mode: Additive, Jobs: make([]Job, len(jobs))}
	for i, j := range jobs {
		j.ID = i
		in.Jobs[i] = j
	}
	return in
}

// NewFactors builds a multiplicative instance from plain values.
func NewFactors(values ...int64) *Instance {
	in := &Instance{Mode: Multiplicative, Factors: make([]Factor, len(values))}
	for i, v := range values {
		in.Factors[i] = Factor{ID: i, Value: v}
	}
	return in
}
