// Command matchupctl scores a tournament dataset offline and prints
// rankings, team explanations and matchups as tables.
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
