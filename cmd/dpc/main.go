// Command dpc compares a reference design against an implementation and
// reports a weighted similarity score, typed findings, and optional diff
// artifacts. See `dpc --help` for the compare, quality, and serve
// subcommands.
package main

import "github.com/MeKo-Tech/dpc/cmd/dpc/cmd"

func main() {
	cmd.Execute()
}
