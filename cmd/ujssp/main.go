// SPDX-License-Identifier: MIT

// Command ujssp selects subsets with the envelope-dominance engine.
//
//	ujssp solve jobs.dat                      expected-profit job selection
//	ujssp solve --mode factors a.dat          product partition
//	ujssp dp jobs.dat                         dynamic-programming reference
//	ujssp generate --kind factors --yes -n 20 random instance to stdout
//	ujssp config                              effective configuration
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
