package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blocklib"
	"github.com/fwojciec/blocklib/docx"
	"github.com/fwojciec/blocklib/excelize"
	"github.com/fwojciec/blocklib/fs"
	"github.com/fwojciec/blocklib/goquery"
	"github.com/fwojciec/blocklib/htmltomarkdown"
	blhttp "github.com/fwojciec/blocklib/http"
	"github.com/fwojciec/blocklib/library"
	"github.com/fwojciec/blocklib/raymond"
	blslog "github.com/fwojciec/blocklib/slog"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration files holding flag defaults. Set before calling Run().
	ConfigPaths []string

	// Services for end-to-end testing. When set they replace the
	// network-backed implementations.
	Source  blocklib.URLSource
	Fetcher blocklib.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{DefaultConfigFile},
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("blocklib"),
		kong.Description("Build a sidekick block library from a published site"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(YAML, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'blocklib --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(cli.Debug, stderr)

	switch kongCtx.Command() {
	case "setup":
		deps.Scaffolder = raymond.NewScaffolder(cli.Setup.Output, cli.Setup.Package)

	case "preview":
		if err := m.wireSource(deps, &cli.Preview.SiteFlags, logger, stderr); err != nil {
			return err
		}

	case "generate":
		if err := m.wireSource(deps, &cli.Generate.SiteFlags, logger, stderr); err != nil {
			return err
		}
		deps.Assembler = m.newAssembler(&cli.Generate, deps.Source, logger)
		defer deps.Assembler.Fetcher.Close()
	}

	return kongCtx.Run(deps)
}

// wireSource sets up page discovery for the site.
func (m *Main) wireSource(deps *Dependencies, site *SiteFlags, logger *slog.Logger, stderr io.Writer) error {
	if m.Source != nil {
		deps.Source = m.Source
		return nil
	}

	if site.APIKey == "" {
		fmt.Fprintln(stderr, "Hint: Set AEM_API_KEY to an admin API key for the site")
		return fmt.Errorf("AEM_API_KEY not set")
	}

	var source blocklib.URLSource = blhttp.NewStatusService(site.Org, site.Project, site.Site, site.APIKey)
	if logger != nil {
		source = blslog.NewLoggingURLSource(source, logger)
	}
	deps.Source = source
	return nil
}

// newAssembler wires the library build for the generate command.
func (m *Main) newAssembler(c *GenerateCmd, source blocklib.URLSource, logger *slog.Logger) *library.Assembler {
	var fetcher blocklib.Fetcher = blhttp.NewFetcher(blhttp.WithTimeout(c.Timeout))
	if m.Fetcher != nil {
		fetcher = m.Fetcher
	}

	var converter blocklib.DocumentConverter = docx.NewConverter()
	if c.Format == "md" {
		converter = htmltomarkdown.NewConverter()
	}

	if logger != nil {
		fetcher = blslog.NewLoggingFetcher(fetcher, logger)
		converter = blslog.NewLoggingConverter(converter, logger)
	}

	var limiter blocklib.DomainLimiter
	if c.Rate > 0 {
		limiter = library.NewDomainLimiter(c.Rate, 1)
	}

	return &library.Assembler{
		Source:        source,
		Inventory:     fs.NewBlockInventory(c.BlocksDir),
		Fetcher:       fetcher,
		Extractor:     goquery.NewBlockExtractor(),
		Reconstructor: goquery.NewReconstructor(goquery.NewBlockBuilder()),
		Converter:     converter,
		Store:         fs.NewFileStore(c.Output, "blocks"),
		Workbook:      excelize.NewWorkbookWriter(filepath.Join(c.Output, "library.xlsx")),
		RateLimiter:   limiter,
		KeepContext:   c.KeepContext,
		Concurrency:   c.Concurrency,
		PathPrefix:    libraryPath(c.Output),
	}
}

// libraryPath returns the site path of the documents in output.
func libraryPath(output string) string {
	return "/" + strings.Trim(filepath.ToSlash(filepath.Clean(output)), "/") + "/blocks"
}

// newLogger returns a debug logger tagged with a run id, or nil when
// debugging is off.
func newLogger(debug bool, w io.Writer) *slog.Logger {
	if !debug {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("run", uuid.NewString())
}
