package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/blandwms/fake-news/pkg/articledb"
	"github.com/blandwms/fake-news/pkg/logger"
	"github.com/blandwms/fake-news/pkg/stats"
)

var (
	domainEnding = regexp.MustCompile(`\.[a-z]{2,3}$`)
	domainPrefix = regexp.MustCompile(`^[a-z]+\.`)
)

// summarystats prints per-source article counts and word-count statistics
// for the stored corpus.
func main() {
	log := logger.New("summarystats")

	store, err := articledb.Open(getEnv("ARTICLE_DB", "articles.db"))
	if err != nil {
		log.Error("open article store", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	articles, err := store.List(context.Background())
	if err != nil {
		log.Error("load articles", "err", err)
		os.Exit(1)
	}

	counts := map[string]int{}
	wordCounts := make([]float64, 0, len(articles))
	for _, a := range articles {
		counts[newsSource(a.URL)]++
		wordCounts = append(wordCounts, float64(len(strings.Fields(a.Text))))
	}

	type sourceCount struct {
		site string
		n    int
	}
	sources := make([]sourceCount, 0, len(counts))
	for site, n := range counts {
		sources = append(sources, sourceCount{site, n})
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].n != sources[j].n {
			return sources[i].n < sources[j].n
		}
		return sources[i].site < sources[j].site
	})

	for _, s := range sources {
		fmt.Printf("%s has %d articles\n", s.site, s.n)
	}
	fmt.Printf("mean words per article: %.1f\n", stats.Mean(wordCounts))
	fmt.Printf("median words per article: %.1f\n", stats.Median(wordCounts))
}

// newsSource reduces an article URL to its bare source name: the host
// without www., domain endings or a remaining subdomain prefix.
func newsSource(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	netLoc := strings.TrimPrefix(u.Hostname(), "www.")
	for domainEnding.MatchString(netLoc) {
		netLoc = domainEnding.ReplaceAllString(netLoc, "")
	}
	return domainPrefix.ReplaceAllString(netLoc, "")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
