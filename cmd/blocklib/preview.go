package main

import (
	"fmt"

	"github.com/fwojciec/blocklib"
	"github.com/fwojciec/blocklib/library"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	urls, err := deps.Source.DiscoverURLs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blocklib.ErrorMessage(err))
		return err
	}

	urls = library.DedupeURLs(urls)
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	fmt.Fprintf(deps.Stderr, "%d pages\n", len(urls))
	return nil
}
