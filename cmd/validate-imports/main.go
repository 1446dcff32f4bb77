// Command validate-imports runs the imports validator on the current directory.
package main

import (
	"fmt"
	"os"

	"github.com/openkraft/rulegate/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.ExecuteValidator("imports", os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
