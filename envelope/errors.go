// SPDX-License-Identifier: MIT

package envelope

import "errors"

// ErrNumericInstability indicates an intersection abscissa that could not be
// computed (zero denominator, NaN, or a math/big NaN panic). The tie-break
// runs before any division, so reaching this is a defect, never a result.
var ErrNumericInstability = errors.New("envelope: numeric instability in intersection")

// ErrInvariant indicates that the ordering or coverage invariant is broken.
var ErrInvariant = errors.New("envelope: invariant violated")

// ErrBoundsCrossed indicates Lower > Upper after an update.
var ErrBoundsCrossed = errors.New("envelope: lower bound exceeds upper bound")

// ErrEmpty indicates an operation that needs at least one entry.
var ErrEmpty = errors.New("envelope: no candidates")
