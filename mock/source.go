package mock

import (
	"context"

	"github.com/fwojciec/blocklib"
)

var _ blocklib.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of blocklib.URLSource.
type URLSource struct {
	DiscoverURLsFn func(ctx context.Context) ([]string, error)
}

func (s *URLSource) DiscoverURLs(ctx context.Context) ([]string, error) {
	return s.DiscoverURLsFn(ctx)
}

var _ blocklib.Scaffolder = (*Scaffolder)(nil)

// Scaffolder is a mock implementation of blocklib.Scaffolder.
type Scaffolder struct {
	ScaffoldFn func(ctx context.Context) ([]string, error)
}

func (s *Scaffolder) Scaffold(ctx context.Context) ([]string, error) {
	return s.ScaffoldFn(ctx)
}
