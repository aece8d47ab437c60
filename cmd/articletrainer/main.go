package main

import (
	"bufio"
	"context"
	"os"

	"github.com/blandwms/fake-news/pkg/articledb"
	"github.com/blandwms/fake-news/pkg/logger"
	"github.com/blandwms/fake-news/pkg/trainer"
)

// articletrainer runs the fixed three-classifier sweep over the article
// corpus and prints each report to stdout. It takes no arguments; the
// store path comes from ARTICLE_DB.
func main() {
	log := logger.New("articletrainer")

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

	opts := []articledb.Option{
		articledb.WithDomainEndings(false),
		articledb.WithAuthor(false),
	}
	dictPath := getEnv("DICTIONARY_PATH", "/usr/share/dict/words")
	if words, err := loadDictionary(dictPath); err != nil {
		log.Warn("dictionary unavailable, disabling misspelling feature", "path", dictPath, "err", err)
		opts = append(opts, articledb.WithMisspellings(false))
	} else {
		opts = append(opts, articledb.WithDictionary(words))
	}

	db := articledb.New(articles, opts...)
	if err := db.Build(); err != nil {
		log.Error("build feature matrix", "err", err)
		os.Exit(1)
	}
	log.Info("dataset ready", "articles", len(articles), "features", db.NumFeatures())

	if err := trainer.Run(os.Stdout, db, trainer.DefaultSweep()); err != nil {
		log.Error("training failed", "err", err)
		os.Exit(1)
	}
}

func loadDictionary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	return words, sc.Err()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
