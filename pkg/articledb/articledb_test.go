package articledb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleArticles() []Article {
	return []Article{
		{
			Title:   "Moon landing hoax exposed",
			Authors: "alice",
			URL:     "https://www.fakenews.com/moon",
			Text:    "the moon landing was staged claims insider",
			Tags:    "space,conspiracy",
			Label:   0,
		},
		{
			Title:   "City council passes budget",
			Authors: "bob",
			URL:     "https://www.localnews.org/budget",
			Text:    "the city council approved the annual budget on tuesday",
			Tags:    "politics",
			Label:   1,
		},
		{
			Title:   "Aliens run the government",
			Authors: "alice,carol",
			URL:     "https://www.fakenews.com/aliens",
			Text:    "sources say aliens secretly run the government",
			Tags:    "conspiracy",
			Label:   0,
		},
	}
}

func TestArticleDBBuild(t *testing.T) {
	db := New(sampleArticles(), WithMisspellings(false))
	require.NoError(t, db.Build())

	X, y := db.X(), db.Y()
	require.Len(t, X, 3)
	require.Equal(t, []int{0, 1, 0}, y)
	for _, row := range X {
		require.Len(t, row, db.NumFeatures())
	}

	names := make([]string, db.NumFeatures())
	for i := range names {
		names[i] = db.ColumnName(i)
		require.NotEmpty(t, names[i])
	}
	joined := strings.Join(names, " ")
	require.Contains(t, joined, "auth_alice")
	require.Contains(t, joined, "tag_conspiracy")
	require.Contains(t, joined, "text_moon")
	require.Contains(t, joined, "title_budget")
	require.Contains(t, joined, "domain_com")
	require.Contains(t, joined, "is_dotcom")
	require.Contains(t, joined, "word_count")
}

func TestArticleDBToggles(t *testing.T) {
	db := New(sampleArticles(),
		WithAuthor(false),
		WithDomainEndings(false),
		WithMisspellings(false),
	)
	require.NoError(t, db.Build())

	for i := 0; i < db.NumFeatures(); i++ {
		name := db.ColumnName(i)
		require.False(t, strings.HasPrefix(name, "auth_"), "author column leaked: %s", name)
		require.False(t, strings.HasPrefix(name, "domain_"), "domain column leaked: %s", name)
		require.NotEqual(t, "is_dotcom", name)
		require.NotEqual(t, "misspellings", name)
	}
}

func TestArticleDBMisspellings(t *testing.T) {
	db := New(sampleArticles(), WithDictionary([]string{"the", "moon", "landing"}))
	require.NoError(t, db.Build())

	idx := -1
	for i := 0; i < db.NumFeatures(); i++ {
		if db.ColumnName(i) == "misspellings" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	// "the moon landing was staged claims insider": 4 tokens off-dictionary.
	require.Equal(t, 4.0, db.X()[0][idx])
}

func TestArticleDBErrors(t *testing.T) {
	require.Error(t, New(nil).Build())

	// Misspelling feature demands a dictionary.
	require.Error(t, New(sampleArticles()).Build())
}

func TestArticleDBColumnNameBounds(t *testing.T) {
	db := New(sampleArticles(), WithMisspellings(false))
	require.NoError(t, db.Build())

	require.Empty(t, db.ColumnName(-1))
	require.Empty(t, db.ColumnName(db.NumFeatures()))
}

func TestArticleDBBuildIdempotent(t *testing.T) {
	db := New(sampleArticles(), WithMisspellings(false))
	require.NoError(t, db.Build())
	n := db.NumFeatures()
	require.NoError(t, db.Build())
	require.Equal(t, n, db.NumFeatures())
}
