// Command coelacanth is the CLI entrypoint: a seeded random type-graph /
// call-graph / control-graph test-program generator, grounded on the
// teacher's own cmd-less `internal/cli.NewRootCmd` + `os.Exit` idiom.
package main

import (
	"fmt"
	"os"

	"github.com/Latimeriidae/coelacanth/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
