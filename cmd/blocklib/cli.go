package main

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blocklib"
	"github.com/fwojciec/blocklib/library"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Source     blocklib.URLSource
	Assembler  *library.Assembler
	Scaffolder blocklib.Scaffolder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config kong.ConfigFlag `help:"Load flag defaults from a YAML file"`
	Debug  bool            `help:"Log every request and conversion to stderr"`

	Setup    SetupCmd    `cmd:"" help:"Create the sidekick library tooling in the project"`
	Generate GenerateCmd `cmd:"" help:"Build the block library from the published site"`
	Preview  PreviewCmd  `cmd:"" help:"List the pages the library would be built from"`
}

// SiteFlags identify the published site and authorize admin API access.
type SiteFlags struct {
	Org     string `required:"" help:"Organization that owns the site repository"`
	Project string `required:"" help:"Repository name of the site"`
	Site    string `required:"" help:"Base URL of the published site"`
	APIKey  string `name:"api-key" env:"AEM_API_KEY" help:"Admin API key"`
}

// SetupCmd is the "setup" subcommand.
type SetupCmd struct {
	Output  string `default:"tools/sidekick" help:"Directory to create"`
	Package string `default:"package.json" help:"Package manifest holding the project name"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	SiteFlags `embed:""`

	KeepContext bool          `help:"Keep the content surrounding each block"`
	Format      string        `enum:"docx,md" default:"docx" help:"Document format (docx, md)"`
	Output      string        `default:"tools/sidekick" help:"Library directory"`
	BlocksDir   string        `default:"blocks" help:"Directory holding the project's block sources"`
	Concurrency int           `short:"c" default:"10" help:"Concurrent fetch limit"`
	Rate        float64       `default:"0" help:"Requests per second per host (0 for unlimited)"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	SiteFlags `embed:""`
}
