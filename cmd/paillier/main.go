// Command paillier encrypts and decrypts with a configured Paillier key and
// splits or recombines prime-field secrets with Shamir sharing.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
