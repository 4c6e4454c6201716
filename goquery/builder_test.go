package goquery_test

import (
	"testing"

	"github.com/fwojciec/blocklib"
	"github.com/fwojciec/blocklib/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockBuilder_BuildBlock(t *testing.T) {
	t.Parallel()

	t.Run("renders header and cell rows", func(t *testing.T) {
		t.Parallel()

		markup, err := goquery.NewBlockBuilder().BuildBlock(&blocklib.BlockTable{
			Name: "cards",
			Rows: [][]string{
				{"<p>One</p>", "<p>Two</p>"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t,
			`<table><tr><th colspan="2">cards</th></tr><tr><td><p>One</p></td><td><p>Two</p></td></tr></table>`,
			markup)
	})

	t.Run("lists variants in the header", func(t *testing.T) {
		t.Parallel()

		markup, err := goquery.NewBlockBuilder().BuildBlock(&blocklib.BlockTable{
			Name:     "columns",
			Variants: []string{"dark", "wide"},
		})

		require.NoError(t, err)
		assert.Equal(t, `<table><tr><th>columns (dark, wide)</th></tr></table>`, markup)
	})

	t.Run("pads short rows with colspan on the last cell", func(t *testing.T) {
		t.Parallel()

		markup, err := goquery.NewBlockBuilder().BuildBlock(&blocklib.BlockTable{
			Name: "hero",
			Rows: [][]string{
				{"a", "b", "c"},
				{"d"},
			},
		})

		require.NoError(t, err)
		assert.Contains(t, markup, `<th colspan="3">hero</th>`)
		assert.Contains(t, markup, `<tr><td>a</td><td>b</td><td>c</td></tr>`)
		assert.Contains(t, markup, `<tr><td colspan="3">d</td></tr>`)
	})

	t.Run("renders metadata tables as key value rows", func(t *testing.T) {
		t.Parallel()

		markup, err := goquery.NewBlockBuilder().BuildBlock(blocklib.MetadataTable(
			blocklib.LibraryMetadataBlock,
			blocklib.Field{Key: "name", Value: "cards (dark)"},
		))

		require.NoError(t, err)
		assert.Equal(t,
			`<table><tr><th colspan="2">Library Metadata</th></tr><tr><td>name</td><td>cards (dark)</td></tr></table>`,
			markup)
	})

	t.Run("keeps metadata values as text", func(t *testing.T) {
		t.Parallel()

		markup, err := goquery.NewBlockBuilder().BuildBlock(blocklib.MetadataTable(
			blocklib.LibraryMetadataBlock,
			blocklib.Field{Key: "name", Value: "cards (a<b)"},
		))

		require.NoError(t, err)
		assert.Contains(t, markup, `<td>cards (a&lt;b)</td>`)
	})

	t.Run("escapes the header text", func(t *testing.T) {
		t.Parallel()

		markup, err := goquery.NewBlockBuilder().BuildBlock(&blocklib.BlockTable{Name: "a<b"})

		require.NoError(t, err)
		assert.Contains(t, markup, "a&lt;b")
	})

	t.Run("rejects unnamed blocks", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewBlockBuilder().BuildBlock(&blocklib.BlockTable{})

		require.Error(t, err)
		assert.Equal(t, blocklib.EINVALID, blocklib.ErrorCode(err))
	})
}
