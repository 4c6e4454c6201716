package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/blocklib"
	main "github.com/fwojciec/blocklib/cmd/blocklib"
	"github.com/fwojciec/blocklib/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xl "github.com/xuri/excelize/v2"
)

var sitePages = map[string]string{
	"https://example.com/": `<html><body><main><div>` +
		`<h2>Welcome</h2>` +
		`<div class="cards dark"><div><div><p>A</p></div><div><p>B</p></div></div></div>` +
		`</div></main></body></html>`,
	"https://example.com/about": `<html><body><main><div>` +
		`<div class="cards"><div><div><p>plain</p></div></div></div>` +
		`<div class="legacy"><div><div>old</div></div></div>` +
		`</div></main></body></html>`,
	"https://example.com/broken": "",
}

func newSiteMain(t *testing.T) *main.Main {
	t.Helper()

	m := main.NewMain()
	m.ConfigPaths = nil
	m.Source = &mock.URLSource{
		DiscoverURLsFn: func(_ context.Context) ([]string, error) {
			return []string{"https://example.com/", "https://example.com/about", "https://example.com/broken"}, nil
		},
	}
	m.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if url == "https://example.com/broken" {
				return "", blocklib.Errorf(blocklib.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return sitePages[url], nil
		},
		CloseFn: func() error { return nil },
	}
	return m
}

// newProject creates a project directory with the given local blocks.
func newProject(t *testing.T, blocks ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range blocks {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "blocks", name), 0755))
	}
	return dir
}

func TestGenerateCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes library documents and index", func(t *testing.T) {
		t.Parallel()

		dir := newProject(t, "cards")
		output := filepath.Join(dir, "tools", "sidekick")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newSiteMain(t).Run(context.Background(), []string{
			"generate",
			"--org", "acme", "--project", "site", "--site", "https://example.com",
			"--output", output,
			"--blocks-dir", filepath.Join(dir, "blocks"),
		}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 3 pages")
		assert.Contains(t, stdout.String(), "wrote cards")
		assert.Contains(t, stdout.String(), "Library written: 1 blocks")
		assert.Contains(t, stderr.String(), "skip https://example.com/broken")
		assert.Contains(t, stderr.String(), `warning: block "legacy"`)

		_, err = os.Stat(filepath.Join(output, "blocks", "cards.docx"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(output, "blocks", "legacy.docx"))
		assert.True(t, os.IsNotExist(err))

		f, err := xl.OpenFile(filepath.Join(output, "library.xlsx"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("blocks")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "cards", rows[1][0])
		assert.Equal(t, libraryPath(output)+"/cards", rows[1][1])
	})

	t.Run("writes markdown when asked", func(t *testing.T) {
		t.Parallel()

		dir := newProject(t, "cards")
		output := filepath.Join(dir, "tools", "sidekick")

		err := newSiteMain(t).Run(context.Background(), []string{
			"generate",
			"--org", "acme", "--project", "site", "--site", "https://example.com",
			"--output", output,
			"--blocks-dir", filepath.Join(dir, "blocks"),
			"--format", "md",
			"--keep-context",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		md, err := os.ReadFile(filepath.Join(output, "blocks", "cards.md"))
		require.NoError(t, err)
		assert.Contains(t, string(md), "cards (dark)")
		assert.Contains(t, string(md), "Welcome")
		assert.Contains(t, string(md), "Library Metadata")
	})

	t.Run("fails without a blocks directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stderr := &bytes.Buffer{}

		err := newSiteMain(t).Run(context.Background(), []string{
			"generate",
			"--org", "acme", "--project", "site", "--site", "https://example.com",
			"--output", filepath.Join(dir, "out"),
			"--blocks-dir", filepath.Join(dir, "blocks"),
		}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, blocklib.ENOTFOUND, blocklib.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("requires an API key for the admin API", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.ConfigPaths = nil
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"generate",
			"--org", "acme", "--project", "site", "--site", "https://example.com",
			"--api-key=",
		}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "AEM_API_KEY")
		assert.Contains(t, stderr.String(), "Hint:")
	})
}

func TestPreviewCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists discovered pages", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newSiteMain(t).Run(context.Background(), []string{
			"preview", "--org", "acme", "--project", "site", "--site", "https://example.com",
		}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/\nhttps://example.com/about\nhttps://example.com/broken\n", stdout.String())
		assert.Contains(t, stderr.String(), "3 pages")
	})

	t.Run("reports discovery failure", func(t *testing.T) {
		t.Parallel()

		m := newSiteMain(t)
		m.Source = &mock.URLSource{
			DiscoverURLsFn: func(_ context.Context) ([]string, error) {
				return nil, errors.New("status job did not complete after 20 attempts")
			},
		}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"preview", "--org", "acme", "--project", "site", "--site", "https://example.com",
		}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error.")
	})

	t.Run("reads site flags from a config file", func(t *testing.T) {
		t.Parallel()

		config := filepath.Join(t.TempDir(), "blocklib.yaml")
		require.NoError(t, os.WriteFile(config, []byte("org: acme\nproject: site\npreview:\n  site: https://example.com\n"), 0644))

		m := newSiteMain(t)
		m.ConfigPaths = []string{config}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"preview"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://example.com/about")
	})
}

func TestSetupCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates the sidekick files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		manifest := filepath.Join(dir, "package.json")
		require.NoError(t, os.WriteFile(manifest, []byte(`{"name":"acme-site"}`), 0644))
		output := filepath.Join(dir, "tools", "sidekick")
		stdout := &bytes.Buffer{}

		m := main.NewMain()
		m.ConfigPaths = nil
		err := m.Run(context.Background(), []string{"setup", "--output", output, "--package", manifest}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Sidekick files generated successfully.")
		_, err = os.Stat(filepath.Join(output, "library.html"))
		require.NoError(t, err)
	})

	t.Run("refuses an existing directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		manifest := filepath.Join(dir, "package.json")
		require.NoError(t, os.WriteFile(manifest, []byte(`{"name":"acme-site"}`), 0644))
		output := filepath.Join(dir, "tools", "sidekick")
		require.NoError(t, os.MkdirAll(output, 0755))
		stderr := &bytes.Buffer{}

		m := main.NewMain()
		m.ConfigPaths = nil
		err := m.Run(context.Background(), []string{"setup", "--output", output, "--package", manifest}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, blocklib.ECONFLICT, blocklib.ErrorCode(err))
		assert.Contains(t, stderr.String(), "already exists")
	})
}

// libraryPath mirrors the site path the CLI derives from the output directory.
func libraryPath(output string) string {
	return filepath.ToSlash(output) + "/blocks"
}
