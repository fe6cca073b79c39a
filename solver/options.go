// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/numeric"
)

// Defaults.
const (
	// DefaultMatchTolerance is the absolute distance to the target root
	// that counts as an exact match.
	DefaultMatchTolerance = 1e-10

	// DefaultPruneTolerance is the absolute slack of the multiplicative
	// overshoot and reachability prunes.
	DefaultPruneTolerance = 1e-5

	// DefaultMultiplicativeTimeLimit is the wall-clock budget of a
	// multiplicative run. Additive runs have none.
	DefaultMultiplicativeTimeLimit = 20 * time.Minute

	// MinBits is the smallest accepted Arbitrary mantissa.
	MinBits uint = 64
)

// Internal panic messages.
const (
	panicBits      = "solver: WithBits: bits must be >= 64"
	panicTimeLimit = "solver: WithTimeLimit: limit must be >= 0"
	panicTolerance = "solver: tolerance must be finite and >= 0"
	panicWorkers   = "solver: WithWorkers: workers must be >= 1"
	panicPrecision = "solver: WithPrecision: unknown precision"
)

// Options configures a run. Build it with DefaultOptions and Option setters.
type Options struct {
	// Precision selects the numeric strategy; Bits is the Arbitrary
	// mantissa size.
	Precision Precision
	Bits      uint

	// TimeLimit is the wall-clock budget, checked once per item. 0 = none.
	TimeLimit time.Duration

	// MatchTolerance and PruneTolerance are the multiplicative thresholds.
	MatchTolerance float64
	PruneTolerance float64

	// Workers > 1 shards candidate expansion over goroutines.
	Workers int

	// TrackSubsets keeps an inclusion marker on every candidate. Without it
	// only the objective is reported.
	TrackSubsets bool

	// Speedups enables the additive parent skip (Limit < p·r).
	Speedups bool

	// CheckInvariants validates the envelope after every item.
	CheckInvariants bool

	// OnStep, when set, is called after every processed item.
	OnStep func(StepInfo)

	// Logger receives debug step logs and an info line per run.
	Logger *zap.Logger
}

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// DefaultOptions returns the defaults for mode:
//   - Precision: Native (additive) or Arbitrary (multiplicative), Bits 512.
//   - TimeLimit: none (additive) or 20 minutes (multiplicative).
//   - MatchTolerance 1e-10, PruneTolerance 1e-5.
//   - Workers 1, TrackSubsets and Speedups on, CheckInvariants off.
//   - Logger: zap.NewNop().
func DefaultOptions(mode instance.Mode) Options {
	o := Options{
		Precision:      Native,
		Bits:           numeric.DefaultPrecision,
		MatchTolerance: DefaultMatchTolerance,
		PruneTolerance: DefaultPruneTolerance,
		Workers:        1,
		TrackSubsets:   true,
		Speedups:       true,
		Logger:         zap.NewNop(),
	}
	if mode == instance.Multiplicative {
		o.Precision = Arbitrary
		o.TimeLimit = DefaultMultiplicativeTimeLimit
	}
	return o
}

// WithPrecision selects the numeric strategy.
func WithPrecision(p Precision) Option {
	if p != Native && p != Arbitrary {
		panic(panicPrecision)
	}
	return func(o *Options) { o.Precision = p }
}

// WithBits sets the Arbitrary mantissa size and selects Arbitrary.
func WithBits(bits uint) Option {
	if bits < MinBits {
		panic(panicBits)
	}
	return func(o *Options) {
		o.Precision = Arbitrary
		o.Bits = bits
	}
}

// WithTimeLimit sets the wall-clock budget; 0 disables it.
func WithTimeLimit(d time.Duration) Option {
	if d < 0 {
		panic(panicTimeLimit)
	}
	return func(o *Options) { o.TimeLimit = d }
}

// WithMatchTolerance sets the exact-match threshold.
func WithMatchTolerance(tol float64) Option {
	if !validTolerance(tol) {
		panic(panicTolerance)
	}
	return func(o *Options) { o.MatchTolerance = tol }
}

// WithPruneTolerance sets the multiplicative prune slack.
func WithPruneTolerance(tol float64) Option {
	if !validTolerance(tol) {
		panic(panicTolerance)
	}
	return func(o *Options) { o.PruneTolerance = tol }
}

// WithWorkers shards expansion over n goroutines.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}
	return func(o *Options) { o.Workers = n }
}

// WithoutSubsets drops inclusion markers; results carry no Include vector.
func WithoutSubsets() Option {
	return func(o *Options) { o.TrackSubsets = false }
}

// WithoutSpeedups disables the additive parent skip.
func WithoutSpeedups() Option {
	return func(o *Options) { o.Speedups = false }
}

// WithInvariantChecks validates the envelope after every item and fails
// the run with envelope.ErrInvariant on a violation.
func WithInvariantChecks() Option {
	return func(o *Options) { o.CheckInvariants = true }
}

// WithOnStep installs a per-item hook. It runs on the solver goroutine.
func WithOnStep(fn func(StepInfo)) Option {
	return func(o *Options) { o.OnStep = fn }
}

// WithLogger sets the logger; nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}

// validate rejects values no constructor produces.
func (o *Options) validate() error {
	switch {
	case o.Precision != Native && o.Precision != Arbitrary:
		return fmt.Errorf("%w: precision %d", ErrBadOption, int(o.Precision))
	case o.Precision == Arbitrary && o.Bits < MinBits:
		return fmt.Errorf("%w: bits %d", ErrBadOption, o.Bits)
	case o.TimeLimit < 0:
		return fmt.Errorf("%w: time limit %v", ErrBadOption, o.TimeLimit)
	case !validTolerance(o.MatchTolerance) || !validTolerance(o.PruneTolerance):
		return fmt.Errorf("%w: tolerances %g/%g", ErrBadOption, o.MatchTolerance, o.PruneTolerance)
	case o.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrBadOption, o.Workers)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return nil
}

func validTolerance(tol float64) bool {
	return tol >= 0 && !math.IsInf(tol, 0) && !math.IsNaN(tol)
}
