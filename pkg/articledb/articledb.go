package articledb

import "errors"

// ArticleDB turns an article corpus into a trainable dataset: a dense
// feature matrix X, aligned validity labels y and a column-name mapping.
// Feature families are toggled at construction time.
type ArticleDB struct {
	articles []Article

	tfidf        bool
	author       bool
	tags         bool
	title        bool
	domains      bool
	wordCount    bool
	misspellings bool
	ngram        int
	dictionary   map[string]struct{}

	built    bool
	x        [][]float64
	y        []int
	colNames []string
}

// Option is functional config for ArticleDB.
type Option func(*ArticleDB)

func WithTFIDF(on bool) Option { return func(db *ArticleDB) { db.tfidf = on } }

func WithAuthor(on bool) Option { return func(db *ArticleDB) { db.author = on } }

func WithTags(on bool) Option { return func(db *ArticleDB) { db.tags = on } }

func WithTitle(on bool) Option { return func(db *ArticleDB) { db.title = on } }

func WithDomainEndings(on bool) Option { return func(db *ArticleDB) { db.domains = on } }

func WithWordCount(on bool) Option { return func(db *ArticleDB) { db.wordCount = on } }

func WithMisspellings(on bool) Option { return func(db *ArticleDB) { db.misspellings = on } }

func WithNgram(n int) Option { return func(db *ArticleDB) { db.ngram = n } }

// WithDictionary supplies the known-word list for the misspelling count.
func WithDictionary(words []string) Option {
	return func(db *ArticleDB) {
		db.dictionary = make(map[string]struct{}, len(words))
		for _, w := range words {
			db.dictionary[w] = struct{}{}
		}
	}
}

// New builds an ArticleDB over articles with every feature family enabled
// except where options say otherwise.
func New(articles []Article, opts ...Option) *ArticleDB {
	db := &ArticleDB{
		articles:     articles,
		tfidf:        true,
		author:       true,
		tags:         true,
		title:        true,
		domains:      true,
		wordCount:    true,
		misspellings: true,
		ngram:        1,
	}
	for _, o := range opts {
		o(db)
	}
	return db
}

// Build assembles the feature matrix. It must be called before X, Y or
// ColumnName; calling it twice is a no-op.
func (db *ArticleDB) Build() error {
	if db.built {
		return nil
	}
	n := len(db.articles)
	if n == 0 {
		return errors.New("articledb: no articles")
	}
	if db.misspellings && len(db.dictionary) == 0 {
		return errors.New("articledb: misspelling feature enabled without a dictionary")
	}

	texts := make([]string, n)
	titles := make([]string, n)
	authors := make([]string, n)
	tags := make([]string, n)
	urls := make([]string, n)
	db.y = make([]int, n)
	for i, a := range db.articles {
		texts[i] = a.Text
		titles[i] = a.Title
		authors[i] = a.Authors
		tags[i] = a.Tags
		urls[i] = a.URL
		db.y[i] = a.Label
	}

	var blocks []block
	if db.author {
		blocks = append(blocks, multiHotEncode(authors, "auth"))
	}
	if db.tags {
		blocks = append(blocks, multiHotEncode(tags, "tag"))
	}
	if db.tfidf {
		blocks = append(blocks, tfidfVectorize(texts, "text", db.ngram))
	}
	if db.title {
		blocks = append(blocks, tfidfVectorize(titles, "title", db.ngram))
	}
	if db.domains {
		blocks = append(blocks, domainEndings(urls))
	}
	if db.wordCount {
		blocks = append(blocks, scalarBlock("word_count", wordCounts(texts)))
	}
	if db.misspellings {
		blocks = append(blocks, scalarBlock("misspellings", misspellingCounts(texts, db.dictionary)))
	}

	m, names := hstack(n, blocks)
	if m == nil {
		return errors.New("articledb: no features produced")
	}

	db.x = make([][]float64, n)
	for i := range db.x {
		db.x[i] = m.RawRowView(i)
	}
	db.colNames = names
	db.built = true
	return nil
}

// X returns the feature matrix; rows align with Y.
func (db *ArticleDB) X() [][]float64 { return db.x }

// Y returns the validity labels.
func (db *ArticleDB) Y() []int { return db.y }

// ColumnName maps a feature column index to its human-readable name.
func (db *ArticleDB) ColumnName(i int) string {
	if i < 0 || i >= len(db.colNames) {
		return ""
	}
	return db.colNames[i]
}

// NumFeatures reports the feature count after Build.
func (db *ArticleDB) NumFeatures() int { return len(db.colNames) }
