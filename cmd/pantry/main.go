// Package main provides the pantry CLI: an HTTP server over the
// inventory document and a one-shot CSV importer that seeds it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
