// Package main provides the CLI entrypoint for projimport.
//
// projimport re-keys an exported project into a destination system:
//   - order prints the entity import order
//   - mapping check validates a mapping file
//   - run transforms a record bundle against a mapping, in memory
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
