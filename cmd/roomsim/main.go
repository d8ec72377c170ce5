// Command roomsim builds, converts and catalogs room acoustics scenes.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/roomsim/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
