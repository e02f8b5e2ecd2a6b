// Command glyph plays Mind Body Glyph in the terminal and manages the
// player's saved progress.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/mindglyph/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
