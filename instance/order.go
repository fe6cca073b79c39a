// SPDX-License-Identifier: MIT

package instance

import (
	"fmt"
	"sort"
	"strings"
)

// Order selects the processing order produced by Sort.
type Order int

const (
	// OrderDefault is OrderRatio for jobs and OrderAscending for factors.
	OrderDefault Order = iota
	// OrderRatio sorts jobs by r·p/(1−p), largest first, stable.
	OrderRatio
	// OrderAscending sorts by the order key, smallest first.
	OrderAscending
	// OrderDescending sorts by the order key, largest first.
	OrderDescending
	// OrderRandom applies a seeded shuffle.
	OrderRandom
)

var orderNames = map[Order]string{
	OrderDefault:    "default",
	OrderRatio:      "ratio",
	OrderAscending:  "ascending",
	OrderDescending: "descending",
	OrderRandom:     "random",
}

func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// ParseOrder maps a name ("ratio", "asc", "ascending", ...) to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return OrderDefault, nil
	case "ratio":
		return OrderRatio, nil
	case "asc", "ascending":
		return OrderAscending, nil
	case "desc", "descending":
		return OrderDescending, nil
	case "random", "shuffle":
		return OrderRandom, nil
	}
	return OrderDefault, fmt.Errorf("%w: unknown order %q", ErrMalformed, s)
}

// Sort returns a reordered copy of in; in itself is not modified.
//
// The order key is the job ratio for jobs (so OrderRatio equals
// OrderDescending) and the value for factors. All sorts are stable, so
// equal keys keep their source order. seed only matters for OrderRandom.
func Sort(in *Instance, order Order, seed int64) (*Instance, error) {
	out := in.Clone()
	if order == OrderDefault {
		order = OrderRatio
		if in.Mode == Multiplicative {
			order = OrderAscending
		}
	}

	var (
		n    = out.Len()
		key  func(i int) float64
		swap func(i, j int)
	)
	switch out.Mode {
	case Additive:
		key = func(i int) float64 { return out.Jobs[i].Ratio() }
		swap = func(i, j int) { out.Jobs[i], out.Jobs[j] = out.Jobs[j], out.Jobs[i] }
	case Multiplicative:
		if order == OrderRatio {
			return nil, fmt.Errorf("%w: ratio order needs jobs", ErrUnsupportedMode)
		}
		key = func(i int) float64 { return float64(out.Factors[i].Value) }
		swap = func(i, j int) { out.Factors[i], out.Factors[j] = out.Factors[j], out.Factors[i] }
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(out.Mode))
	}

	switch order {
	case OrderRatio, OrderDescending:
		sort.Stable(byKey{n: n, key: key, swap: swap, desc: true})
	case OrderAscending:
		sort.Stable(byKey{n: n, key: key, swap: swap})
	case OrderRandom:
		perm := permutation(n, newRNG(seed))
		applyPermutation(out, perm)
	default:
		return nil, fmt.Errorf("%w: unknown order %d", ErrMalformed, int(order))
	}
	return out, nil
}

// byKey adapts an indexed key/swap pair to sort.Interface. Keys are read
// through the current slice, so swaps keep them aligned.
type byKey struct {
	n    int
	key  func(i int) float64
	swap func(i, j int)
	desc bool
}

func (b byKey) Len() int      { return b.n }
func (b byKey) Swap(i, j int) { b.swap(i, j) }
func (b byKey) Less(i, j int) bool {
	if b.desc {
		return b.key(i) > b.key(j)
	}
	return b.key(i) < b.key(j)
}

// applyPermutation places item perm[i] at position i.
func applyPermutation(in *Instance, perm []int) {
	if in.Mode == Additive {
		src := append([]Job(nil), in.Jobs...)
		for i, p := range perm {
			in.Jobs[i] = src[p]
		}
		return
	}
	src := append([]Factor(nil), in.Factors...)
	for i, p := range perm {
		in.Factors[i] = src[p]
	}
}
