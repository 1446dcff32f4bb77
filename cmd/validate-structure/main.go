// Command validate-structure runs the structure validator on the current directory.
package main

import (
	"fmt"
	"os"

	"github.com/openkraft/rulegate/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.ExecuteValidator("structure", os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
