// Command scenecore runs selection scenarios and inspects their journal.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/scenecore/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
