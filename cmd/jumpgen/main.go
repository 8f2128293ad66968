// Command jumpgen resolves arcade jump parameters and generates Go code
// from .jump files.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/arcadejump/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands report their own failures; anything else is a usage error.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
