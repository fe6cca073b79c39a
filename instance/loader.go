// SPDX-License-Identifier: MIT

package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses a ".dat" instance of the given mode.
//
// The first non-blank line holds n. Each of the following n non-blank lines
// holds "revenue cost prob" (Additive) or a single integer (Multiplicative),
// separated by any whitespace. Items are numbered by their position.
//
// Errors: ErrMalformed (unparsable line), ErrCount (fewer or more than n
// items), ErrInvalidItem (value out of range), ErrUnsupportedMode.
func Read(r io.Reader, mode Mode) (*Instance, error) {
	if mode != Additive && mode != Multiplicative {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(mode))
	}

	var (
		sc     = bufio.NewScanner(r)
		in     = &Instance{Mode: mode}
		lineNo int
		n      = -1
		items  int
	)
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if n < 0 {
			v, err := strconv.Atoi(fields[0])
			if err != nil || v < 0 || len(fields) != 1 {
				return nil, fmt.Errorf("%w: line %d: bad item count %q", ErrMalformed, lineNo, sc.Text())
			}
			n = v
			if mode == Additive {
				in.Jobs = make([]Job, 0, n)
			} else {
				in.Factors = make([]Factor, 0, n)
			}
			continue
		}

		if items == n {
			return nil, fmt.Errorf("%w: more than %d items (line %d)", ErrCount, n, lineNo)
		}
		if err := in.appendItem(items, fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		items++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: missing item count", ErrMalformed)
	}
	if items != n {
		return nil, fmt.Errorf("%w: header says %d, found %d", ErrCount, n, items)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// appendItem parses one item line.
func (in *Instance) appendItem(id int, fields []string) error {
	if in.Mode == Multiplicative {
		if len(fields) != 1 {
			return fmt.Errorf("%w: want 1 field, got %d", ErrMalformed, len(fields))
		}
		v, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: factor %q", ErrMalformed, fields[0])
		}
		in.Factors = append(in.Factors, Factor{ID: id, Value: v})
		return nil
	}

	if len(fields) != 3 {
		return fmt.Errorf("%w: want 3 fields, got %d", ErrMalformed, len(fields))
	}
	rev, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: revenue %q", ErrMalformed, fields[0])
	}
	cost, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: cost %q", ErrMalformed, fields[1])
	}
	prob, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("%w: prob %q", ErrMalformed, fields[2])
	}
	in.Jobs = append(in.Jobs, Job{ID: id, Revenue: rev, Cost: cost, Prob: prob})
	return nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string, mode Mode) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, mode)
}

// Write renders in in the ".dat" format, tab separated, in slice order.
func Write(w io.Writer, in *Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, in.Len())
	switch in.Mode {
	case Additive:
		for _, j := range in.Jobs {
			fmt.Fprintf(bw, "%d\t%d\t%s\n", j.Revenue, j.Cost, strconv.FormatFloat(j.Prob, 'g', -1, 64))
		}
	case Multiplicative:
		for _, f := range in.Factors {
			fmt.Fprintln(bw, f.Value)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedMode, int(in.Mode))
	}
	return bw.Flush()
}
