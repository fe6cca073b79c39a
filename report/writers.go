// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/emmelineperneel/UJSSP/instance"
)

func writeJSON(w io.Writer, r Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeYAML(w io.Writer, r Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, r Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "run\t%s\n", r.RunID)
	fmt.Fprintf(tw, "mode\t%s (%s, %s)\n", r.Mode, r.Precision, r.Arith)
	fmt.Fprintf(tw, "state\t%s after %d/%d items in %v\n", r.State, r.Steps, r.Items, r.Elapsed())
	if r.TimedOut() {
		return tw.Flush()
	}
	fmt.Fprintf(tw, "objective\t%s\n", objectiveText(r))
	if r.Selected != nil {
		fmt.Fprintf(tw, "selected\t%v\n", r.Selected)
	}
	fmt.Fprintf(tw, "candidates\tconsidered=%d materialized=%d removed=%d\n",
		r.Considered, r.Materialized, r.Removed)
	if p := r.Product; p != nil {
		answer := "no"
		if p.Found {
			answer = "yes"
		}
		fmt.Fprintf(tw, "root\t%s\n", p.Root)
		fmt.Fprintf(tw, "answer\t%s\n", answer)
		fmt.Fprintf(tw, "closest\t%s %v\n", p.Closest, p.ClosestSubset)
		if p.PrecisionLoss {
			fmt.Fprintf(tw, "warning\tprecision too low to resolve the root\n")
		}
	}
	return tw.Flush()
}

// writeOut emits the ".out" layout. A timed-out run is the elapsed time
// alone. Otherwise, additive:
//
//	objective, seconds, n, then "include\tr\tc\tp" per job
//
// multiplicative:
//
//	seconds, product, root, found (0/1), n, considered, then "include\ta".
func writeOut(w io.Writer, r Record) error {
	seconds := strconv.FormatFloat(r.Seconds, 'g', -1, 64)
	if r.TimedOut() {
		_, err := fmt.Fprintln(w, seconds)
		return err
	}
	if r.in == nil {
		return ErrNoInstance
	}

	bw := &errWriter{w: w}
	switch r.in.Mode {
	case instance.Additive:
		bw.line(objectiveText(r))
		bw.line(seconds)
		bw.line(strconv.Itoa(len(r.in.Jobs)))
		for i, j := range r.in.Jobs {
			bw.line(fmt.Sprintf("%d\t%d\t%d\t%s", flag(r.Include, i), j.Revenue, j.Cost,
				strconv.FormatFloat(j.Prob, 'g', -1, 64)))
		}
	case instance.Multiplicative:
		found, root := 0, ""
		if r.Product != nil {
			root = r.Product.Root
			if r.Product.Found {
				found = 1
			}
		}
		bw.line(seconds)
		bw.line(objectiveText(r))
		bw.line(root)
		bw.line(strconv.Itoa(found))
		bw.line(strconv.Itoa(len(r.in.Factors)))
		bw.line(strconv.Itoa(r.Considered))
		for i, f := range r.in.Factors {
			bw.line(fmt.Sprintf("%d\t%d", flag(r.Include, i), f.Value))
		}
	}
	return bw.err
}

func objectiveText(r Record) string {
	if r.ObjectiveText != "" {
		return r.ObjectiveText
	}
	return strconv.FormatFloat(r.Objective, 'g', -1, 64)
}

func flag(include []bool, i int) int {
	if i < len(include) && include[i] {
		return 1
	}
	return 0
}

// errWriter keeps the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) line(s string) {
	if e.err == nil {
		_, e.err = fmt.Fprintln(e.w, s)
	}
}
