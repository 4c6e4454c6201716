package main

import (
	"fmt"

	"github.com/fwojciec/blocklib"
)

// Run executes the setup command.
func (c *SetupCmd) Run(deps *Dependencies) error {
	paths, err := deps.Scaffolder.Scaffold(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blocklib.ErrorMessage(err))
		return err
	}

	for _, p := range paths {
		fmt.Fprintf(deps.Stdout, "  created %s\n", p)
	}
	fmt.Fprintln(deps.Stdout, "Sidekick files generated successfully.")
	return nil
}
