// SPDX-License-Identifier: MIT

// Package ujssp selects optimal subsets of items processed in order, by
// keeping only the candidate subsets that can still win.
//
// 🚀 What is UJSSP?
//
//	An envelope-dominance engine with two composition modes:
//		• Additive: unreliable job selection, maximize expected profit
//		• Multiplicative: product partition, find a subset whose product
//		  is the square root of the total product
//
// ✨ Why an envelope?
//
//   - Every candidate subset is a line over one scalar parameter
//   - Only lines on the upper envelope of the current domain survive
//   - The domain narrows as items are consumed, so the envelope stays small
//
// Everything is organized under these packages:
//
//	numeric/     float64 and *big.Float behind one generic interface
//	envelope/    the ordered envelope: insert with dominance, trims, bounds
//	instance/    jobs and factors: .dat loader/writer, ordering, generators
//	solver/      the driver loop, both modes, the DP reference
//	report/      result records and output formats (text, json, yaml, out)
//	metrics/     Prometheus run metrics
//	config/      defaults, YAML file, UJSSP_* environment, flags
//	cmd/ujssp/   the command-line tool
//
// Quick example:
//
//	in := instance.NewFactors(2, 3, 6)
//	res, _ := solver.Solve(ctx, in)
//	// res.Found == true, res.Selected == [0 1]: 2·3 == 6
//
//	go install github.com/emmelineperneel/UJSSP/cmd/ujssp@latest
package ujssp
