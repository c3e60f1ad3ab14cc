// props reads and edits properties files without reordering them.
package main

import (
	"fmt"
	"os"

	"orderedprops/internal/cmd"
)

var (
	run    = func() error { return cmd.Execute() }
	osExit = os.Exit
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}
