package blocklib

import "context"

// URLSource discovers the published pages of a site.
type URLSource interface {
	// DiscoverURLs returns absolute URLs of every published document page.
	// Drafts, tooling paths, redirects, unpublished resources and
	// non-document files are excluded.
	DiscoverURLs(ctx context.Context) ([]string, error)
}

// Scaffolder creates the library tooling files in a project.
type Scaffolder interface {
	// Scaffold writes the files and returns their paths.
	// Returns ECONFLICT if the target directory already exists.
	Scaffold(ctx context.Context) ([]string, error)
}
