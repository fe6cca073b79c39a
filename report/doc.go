// SPDX-License-Identifier: MIT

// Package report turns a solver.Result into a Record and writes it in one
// of the registered formats.
//
// Built-in formats:
//
//	text  human-readable summary
//	json  indented JSON
//	yaml  YAML
//	out   the line-oriented ".out" layout of the experiment scripts
//
// Formats are looked up in a registry, so callers can Register their own.
package report
