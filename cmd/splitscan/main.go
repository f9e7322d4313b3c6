// Command splitscan parses receipts and scanned payloads and splits the
// resulting totals between people.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
