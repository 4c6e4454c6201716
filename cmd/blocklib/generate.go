package main

import (
	"fmt"

	"github.com/fwojciec/blocklib"
	"github.com/fwojciec/blocklib/library"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	progress := func(event library.ProgressEvent) {
		switch event.Type {
		case library.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d pages\n", event.Total)
		case library.ProgressPageFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", library.TruncateURL(event.URL, 80), event.Error)
		case library.ProgressBlockSkipped:
			fmt.Fprintf(deps.Stderr, "warning: block %q (found on %s) does not exist in the project, skipping\n", event.Block, event.URL)
		case library.ProgressBlockFailed:
			fmt.Fprintf(deps.Stderr, "  failed %s: %v\n", event.Block, event.Error)
		case library.ProgressBlockWritten:
			fmt.Fprintf(deps.Stdout, "  wrote %s (%s)\n", event.Block, library.FormatBytes(event.Bytes))
		}
	}

	result, err := deps.Assembler.Generate(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blocklib.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Library written: %d blocks (%s) from %d pages",
		result.Written, library.FormatBytes(result.Bytes), result.Pages-result.PagesFailed)
	if result.Skipped > 0 || result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d skipped, %d failed", result.Skipped, result.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
