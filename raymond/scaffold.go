// Package raymond scaffolds the sidekick library tooling of a project from
// embedded Handlebars templates.
package raymond

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/fwojciec/blocklib"
)

//go:embed templates/*.hbs
var templates embed.FS

// Ensure Scaffolder implements blocklib.Scaffolder at compile time.
var _ blocklib.Scaffolder = (*Scaffolder)(nil)

// Scaffolder renders the library templates into a project directory.
type Scaffolder struct {
	outputDir   string
	packageJSON string
}

// NewScaffolder creates a Scaffolder writing into outputDir. The project
// name is read from the package manifest at packageJSON.
func NewScaffolder(outputDir, packageJSON string) *Scaffolder {
	return &Scaffolder{
		outputDir:   outputDir,
		packageJSON: packageJSON,
	}
}

// Scaffold renders every template with the project name and returns the
// paths of the written files. It never touches an existing directory.
func (s *Scaffolder) Scaffold(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	project, err := s.projectName()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.outputDir); err == nil {
		return nil, blocklib.Errorf(blocklib.ECONFLICT, "The output directory %s already exists. Delete it and try again.", s.outputDir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	rendered := make(map[string]string, len(entries))
	for _, entry := range entries {
		content, err := templates.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, err
		}
		tmpl, err := raymond.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		out, err := tmpl.Exec(map[string]any{"project": project})
		if err != nil {
			return nil, fmt.Errorf("failed to render template %s: %w", entry.Name(), err)
		}
		rendered[entry.Name()] = out
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(s.outputDir, strings.TrimSuffix(entry.Name(), ".hbs"))
		if err := os.WriteFile(path, []byte(rendered[entry.Name()]), 0644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// projectName reads the name field of the package manifest.
func (s *Scaffolder) projectName() (string, error) {
	data, err := os.ReadFile(s.packageJSON)
	if errors.Is(err, os.ErrNotExist) {
		return "", blocklib.Errorf(blocklib.ENOTFOUND, "package manifest %s not found", s.packageJSON)
	} else if err != nil {
		return "", err
	}

	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", blocklib.Errorf(blocklib.EINVALID, "invalid package manifest %s: %v", s.packageJSON, err)
	}
	if manifest.Name == "" {
		return "", blocklib.Errorf(blocklib.EINVALID, "package manifest %s has no name", s.packageJSON)
	}
	return manifest.Name, nil
}
