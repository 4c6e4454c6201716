package blocklib_test

import (
	"testing"

	"github.com/fwojciec/blocklib"
	"github.com/stretchr/testify/assert"
)

func TestClassName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "cards", "cards"},
		{"uppercase", "Cards", "cards"},
		{"spaces collapse", "Hero  Banner", "hero-banner"},
		{"symbol runs collapse", "columns (wide)", "columns-wide"},
		{"leading and trailing symbols", "--teaser--", "teaser"},
		{"digits kept", "grid-3x3", "grid-3x3"},
		{"non-ascii treated as separator", "café menu", "caf-menu"},
		{"empty", "", ""},
		{"only symbols", "%%%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, blocklib.ClassName(tt.input))
		})
	}
}

func TestParseClassList(t *testing.T) {
	t.Parallel()

	t.Run("splits on whitespace runs", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"cards", "dark", "wide"}, blocklib.ParseClassList("cards  dark\twide"))
	})

	t.Run("keeps duplicate tokens", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"cards", "dark", "dark"}, blocklib.ParseClassList("cards dark dark"))
	})

	t.Run("ignores surrounding whitespace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"hero"}, blocklib.ParseClassList("  hero "))
	})

	t.Run("empty attribute has no tokens", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, blocklib.ParseClassList("   "))
	})
}

func TestIsIgnoredBlock(t *testing.T) {
	t.Parallel()

	assert.True(t, blocklib.IsIgnoredBlock("section-metadata"))
	assert.False(t, blocklib.IsIgnoredBlock("cards"))
}

func TestAggregatedBlocks(t *testing.T) {
	t.Parallel()

	t.Run("keeps names in first-encounter order", func(t *testing.T) {
		t.Parallel()

		agg := blocklib.NewAggregatedBlocks()
		agg.Add(
			&blocklib.BlockInstance{BlockName: "hero", SourceURL: "/a"},
			&blocklib.BlockInstance{BlockName: "cards", SourceURL: "/a"},
			&blocklib.BlockInstance{BlockName: "hero", SourceURL: "/b"},
		)

		assert.Equal(t, []string{"hero", "cards"}, agg.Names())
		assert.Equal(t, 2, agg.Len())
		assert.Len(t, agg.Instances("hero"), 2)
		assert.Equal(t, "/b", agg.Instances("hero")[1].SourceURL)
	})

	t.Run("merge appends after existing instances", func(t *testing.T) {
		t.Parallel()

		first := blocklib.NewAggregatedBlocks()
		first.Add(&blocklib.BlockInstance{BlockName: "cards", SourceURL: "/a"})

		second := blocklib.NewAggregatedBlocks()
		second.Add(
			&blocklib.BlockInstance{BlockName: "columns", SourceURL: "/b"},
			&blocklib.BlockInstance{BlockName: "cards", SourceURL: "/b"},
		)

		first.Merge(second)
		first.Merge(nil)

		assert.Equal(t, []string{"cards", "columns"}, first.Names())
		assert.Equal(t, "/a", first.Instances("cards")[0].SourceURL)
		assert.Equal(t, "/b", first.Instances("cards")[1].SourceURL)
	})

	t.Run("unknown name has no instances", func(t *testing.T) {
		t.Parallel()

		agg := blocklib.NewAggregatedBlocks()
		assert.Empty(t, agg.Instances("missing"))
		assert.Empty(t, agg.Names())
	})
}

func TestMetadataTable(t *testing.T) {
	t.Parallel()

	table := blocklib.MetadataTable("Library Metadata", blocklib.Field{Key: "name", Value: "cards (dark)"})

	assert.Equal(t, "Library Metadata", table.Name)
	assert.Empty(t, table.Variants)
	assert.Equal(t, [][]string{{"name", "cards (dark)"}}, table.Rows)
	assert.True(t, table.TextCells)
}
