package main

import (
	"fmt"
	"os"

	"github.com/worklabs/worklog/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorLine(err))
		os.Exit(cli.GetExitCode(err))
	}
}
