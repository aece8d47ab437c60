package main

import (
	"context"
	"flag"
	"os"

	"github.com/blandwms/fake-news/pkg/articledb"
	"github.com/blandwms/fake-news/pkg/logger"
)

// articleimport seeds the article store from a labeled CSV export with
// columns title,authors,publish_date,url,text,tags,label.
func main() {
	input := flag.String("input", "", "path to labeled article CSV")
	flag.Parse()

	log := logger.New("articleimport")
	if *input == "" {
		log.Error("missing required --input flag")
		os.Exit(1)
	}

	store, err := articledb.Open(getEnv("ARTICLE_DB", "articles.db"))
	if err != nil {
		log.Error("open article store", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	out := make(chan articledb.Article)
	done, err := articledb.StreamCSV(*input, out)
	if err != nil {
		log.Error("stream csv", "err", err)
		os.Exit(1)
	}
	defer close(done)

	ctx := context.Background()
	imported := 0
	for a := range out {
		if err := store.Insert(ctx, a); err != nil {
			log.Warn("skipping article", "url", a.URL, "err", err)
			continue
		}
		imported++
	}
	log.Info("import complete", "articles", imported)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
