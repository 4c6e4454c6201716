// Package library orchestrates building a block library from a published
// site: page discovery, concurrent harvesting, variant reduction, document
// reconstruction, conversion and storage.
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/blocklib"
	"golang.org/x/sync/errgroup"
)

// DefaultPathPrefix is the site path under which library documents are
// published.
const DefaultPathPrefix = "/tools/sidekick/blocks"

// Assembler builds a block library from the pages of a site.
type Assembler struct {
	Source        blocklib.URLSource
	Inventory     blocklib.BlockInventory
	Fetcher       blocklib.Fetcher
	Extractor     blocklib.BlockExtractor
	Reconstructor blocklib.Reconstructor
	Converter     blocklib.DocumentConverter
	Store         blocklib.LibraryStore
	Workbook      blocklib.WorkbookWriter

	// RateLimiter throttles page fetches per host. Nil disables throttling.
	RateLimiter blocklib.DomainLimiter

	// KeepContext preserves the sibling content of every block.
	KeepContext bool

	// Concurrency caps in-flight pages and blocks. Defaults to 10.
	Concurrency int

	// RetryDelays are the waits between fetch attempts.
	// Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration

	// PathPrefix is prepended to document names in the library index.
	// Defaults to DefaultPathPrefix.
	PathPrefix string
}

// Result holds the outcome of a library build.
type Result struct {
	Pages       int
	PagesFailed int
	Blocks      int
	Written     int
	Skipped     int
	Failed      int
	Bytes       int
}

// ProgressEvent reports progress during a library build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Block     string
	Hash      string
	Bytes     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPageCompleted
	ProgressPageFailed
	ProgressBlockWritten
	ProgressBlockSkipped
	ProgressBlockFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// blockResult holds the outcome of assembling a single reduced block.
type blockResult struct {
	position int
	name     string
	url      string
	entry    *blocklib.LibraryEntry
	hash     string
	bytes    int
	skipped  bool
	err      error
}

// Generate discovers the site's pages, harvests and reduces their blocks,
// writes one document per block known to the local project and finally the
// library index. Page and block failures are reported through progress and
// do not stop the build; discovery, inventory, commit and index failures do.
func (a *Assembler) Generate(ctx context.Context, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	urls, err := a.Source.DiscoverURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover pages: %w", err)
	}
	urls = DedupeURLs(urls)

	names, err := a.Inventory.ListBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local blocks: %w", err)
	}
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}

	progress(ProgressEvent{Type: ProgressStarted, Total: len(urls)})

	results := a.harvest(ctx, urls, progress)
	reduced := blocklib.ReduceBlocks(Aggregate(results))

	result := &Result{Pages: len(urls), Blocks: len(reduced)}
	for _, r := range results {
		if r.Err != nil {
			result.PagesFailed++
		}
	}

	entries := a.assemble(ctx, reduced, known, result, progress)

	if err := a.Store.Commit(); err != nil {
		_ = a.Store.Abort()
		return nil, fmt.Errorf("commit library: %w", err)
	}
	if err := a.Workbook.WriteWorkbook(ctx, entries); err != nil {
		return nil, fmt.Errorf("write library index: %w", err)
	}

	progress(ProgressEvent{
		Type:      ProgressFinished,
		Completed: len(reduced),
		Total:     len(reduced),
		Bytes:     result.Bytes,
	})

	return result, nil
}

// harvest fetches and extracts every page concurrently and returns the
// settled results in settlement order. It returns only after every page
// has settled.
func (a *Assembler) harvest(ctx context.Context, urls []string, progress ProgressFunc) []PageResult {
	resultCh := make(chan PageResult, len(urls))

	// A plain Group: one failing page must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(a.concurrency())

	go func() {
		for _, url := range urls {
			g.Go(func() error {
				resultCh <- a.processPage(ctx, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]PageResult, 0, len(urls))
	for result := range resultCh {
		results = append(results, result)

		event := ProgressEvent{
			Type:      ProgressPageCompleted,
			Completed: len(results),
			Total:     len(urls),
			URL:       result.URL,
		}
		if result.Err != nil {
			event.Type = ProgressPageFailed
			event.Error = result.Err
		}
		progress(event)
	}

	return results
}

// processPage fetches a single page and extracts its blocks.
func (a *Assembler) processPage(ctx context.Context, url string) PageResult {
	result := PageResult{URL: url}

	if err := waitForURL(ctx, a.RateLimiter, url); err != nil {
		result.Err = err
		return result
	}

	delays := a.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, url, a.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.Err = err
		return result
	}

	blocks, err := a.Extractor.Extract(html, url)
	if err != nil {
		result.Err = err
		return result
	}
	result.Blocks = blocks

	return result
}

// assemble writes a document for every reduced block known to the local
// project and returns the index entries in reduced-block order.
func (a *Assembler) assemble(ctx context.Context, reduced []*blocklib.ReducedBlock, known map[string]bool, result *Result, progress ProgressFunc) []*blocklib.LibraryEntry {
	resultCh := make(chan blockResult, len(reduced))
	claimed := make(map[string]string, len(reduced))

	var g errgroup.Group
	g.SetLimit(a.concurrency())

	go func() {
		for i, block := range reduced {
			br := blockResult{position: i, name: block.Name, url: firstURL(block)}

			if !known[block.Name] {
				br.skipped = true
				resultCh <- br
				continue
			}

			// Names are claimed in reduced order so a collision always
			// fails the later block.
			file := blocklib.ClassName(block.Name)
			if file == "" {
				br.err = blocklib.Errorf(blocklib.EINVALID, "block %q has no usable file name", block.Name)
				resultCh <- br
				continue
			}
			if other, ok := claimed[file]; ok {
				br.err = blocklib.Errorf(blocklib.ECONFLICT, "block %q collides with %q on file name %q", block.Name, other, file)
				resultCh <- br
				continue
			}
			claimed[file] = block.Name

			g.Go(func() error {
				resultCh <- a.processBlock(ctx, br, block, file)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	byPosition := make([]*blocklib.LibraryEntry, len(reduced))
	completed := 0
	for br := range resultCh {
		completed++
		event := ProgressEvent{
			Completed: completed,
			Total:     len(reduced),
			URL:       br.url,
			Block:     br.name,
		}

		switch {
		case br.skipped:
			result.Skipped++
			event.Type = ProgressBlockSkipped
		case br.err != nil:
			result.Failed++
			event.Type = ProgressBlockFailed
			event.Error = br.err
		default:
			result.Written++
			result.Bytes += br.bytes
			byPosition[br.position] = br.entry
			event.Type = ProgressBlockWritten
			event.Hash = br.hash
			event.Bytes = br.bytes
		}
		progress(event)
	}

	entries := make([]*blocklib.LibraryEntry, 0, len(reduced))
	for _, entry := range byPosition {
		if entry != nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// processBlock reconstructs, converts and stores a single block.
func (a *Assembler) processBlock(ctx context.Context, br blockResult, block *blocklib.ReducedBlock, file string) blockResult {
	doc, err := a.Reconstructor.Reconstruct(block, a.KeepContext)
	if err != nil {
		br.err = fmt.Errorf("reconstruct: %w", err)
		return br
	}

	data, err := a.Converter.Convert(ctx, br.url, doc)
	if err != nil {
		br.err = fmt.Errorf("convert: %w", err)
		return br
	}

	if err := a.Store.Save(ctx, file+a.Converter.Extension(), data); err != nil {
		br.err = fmt.Errorf("save: %w", err)
		return br
	}

	br.entry = &blocklib.LibraryEntry{
		Name: block.Name,
		Path: a.pathPrefix() + "/" + file,
	}
	br.hash = ComputeHash(data)
	br.bytes = len(data)
	return br
}

func (a *Assembler) concurrency() int {
	if a.Concurrency <= 0 {
		return 10
	}
	return a.Concurrency
}

func (a *Assembler) pathPrefix() string {
	if a.PathPrefix == "" {
		return DefaultPathPrefix
	}
	return strings.TrimRight(a.PathPrefix, "/")
}

func firstURL(block *blocklib.ReducedBlock) string {
	if len(block.Variants) == 0 {
		return ""
	}
	return block.Variants[0].SourceURL
}
