package articledb

import (
	"math"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// block couples a dense feature matrix with its column names. An empty
// block (no columns) has a nil matrix and is dropped during assembly.
type block struct {
	m     *mat.Dense
	names []string // column index -> name
}

// tokenize lowercases s, splits it on non-alphanumeric runes and emits
// word n-grams up to maxNgram. Single-letter tokens are dropped, matching
// the usual vectorizer token pattern.
func tokenize(s string, maxNgram int) []string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	kept := words[:0]
	for _, w := range words {
		if len(w) >= 2 {
			kept = append(kept, w)
		}
	}
	if maxNgram <= 1 {
		return kept
	}
	out := make([]string, 0, len(kept)*maxNgram)
	out = append(out, kept...)
	for n := 2; n <= maxNgram; n++ {
		for i := 0; i+n <= len(kept); i++ {
			out = append(out, strings.Join(kept[i:i+n], " "))
		}
	}
	return out
}

// multiHotEncode turns comma-separated categorical strings into 0/1
// columns named <prefix>_<category>. Columns are assigned in first-seen
// order, one per distinct category.
func multiHotEncode(values []string, prefix string) block {
	col := map[string]int{}
	var names []string
	type cell struct{ row, col int }
	var cells []cell

	for row, cats := range values {
		for _, cat := range strings.Split(cats, ",") {
			cat = strings.TrimSpace(cat)
			if cat == "" {
				continue
			}
			name := prefix + "_" + cat
			c, ok := col[name]
			if !ok {
				c = len(names)
				col[name] = c
				names = append(names, name)
			}
			cells = append(cells, cell{row, c})
		}
	}
	if len(names) == 0 {
		return block{}
	}
	m := mat.NewDense(len(values), len(names), nil)
	for _, c := range cells {
		m.Set(c.row, c.col, 1)
	}
	return block{m: m, names: names}
}

// tfidfVectorize builds a TF-IDF matrix over docs with smoothed inverse
// document frequency and l2-normalized rows. Column names are
// <prefix>_<token>, tokens in sorted order.
func tfidfVectorize(docs []string, prefix string, maxNgram int) block {
	n := len(docs)
	counts := make([]map[string]float64, n)
	df := map[string]int{}
	for i, doc := range docs {
		c := map[string]float64{}
		for _, tok := range tokenize(doc, maxNgram) {
			c[tok]++
		}
		counts[i] = c
		for tok := range c {
			df[tok]++
		}
	}

	vocab := make([]string, 0, len(df))
	for tok := range df {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)
	if len(vocab) == 0 {
		return block{}
	}

	col := make(map[string]int, len(vocab))
	names := make([]string, len(vocab))
	idf := make([]float64, len(vocab))
	for j, tok := range vocab {
		col[tok] = j
		names[j] = prefix + "_" + tok
		idf[j] = smoothIDF(n, df[tok])
	}

	m := mat.NewDense(n, len(vocab), nil)
	for i, c := range counts {
		row := m.RawRowView(i)
		for tok, tf := range c {
			j := col[tok]
			row[j] = tf * idf[j]
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
	}
	return block{m: m, names: names}
}

func smoothIDF(nDocs, df int) float64 {
	return math.Log(float64(1+nDocs)/float64(1+df)) + 1
}

// scalarBlock wraps one numeric column.
func scalarBlock(name string, vals []float64) block {
	return block{m: mat.NewDense(len(vals), 1, vals), names: []string{name}}
}

// wordCounts returns the token count of each text.
func wordCounts(texts []string) []float64 {
	out := make([]float64, len(texts))
	for i, t := range texts {
		out[i] = float64(len(tokenize(t, 1)))
	}
	return out
}

// misspellingCounts counts tokens absent from dict in each text.
func misspellingCounts(texts []string, dict map[string]struct{}) []float64 {
	out := make([]float64, len(texts))
	for i, t := range texts {
		n := 0.0
		for _, tok := range tokenize(t, 1) {
			if _, ok := dict[tok]; !ok {
				n++
			}
		}
		out[i] = n
	}
	return out
}

// hostOf extracts the hostname without a leading www. prefix.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// domainEndings multi-hot encodes the top-level domain of each URL and
// appends an is_dotcom indicator column.
func domainEndings(urls []string) block {
	tlds := make([]string, len(urls))
	dotcom := make([]float64, len(urls))
	for i, raw := range urls {
		host := hostOf(raw)
		if dot := strings.LastIndex(host, "."); dot >= 0 && dot < len(host)-1 {
			tlds[i] = host[dot+1:]
		}
		if strings.HasSuffix(host, ".com") {
			dotcom[i] = 1
		}
	}
	b := multiHotEncode(tlds, "domain")
	return appendBlocks(len(urls), b, scalarBlock("is_dotcom", dotcom))
}

// appendBlocks is a two-block hstack used when a feature family spans
// several sub-blocks.
func appendBlocks(rows int, blocks ...block) block {
	m, names := hstack(rows, blocks)
	return block{m: m, names: names}
}

// hstack concatenates blocks column-wise, skipping empty ones, and
// returns the combined matrix with its column names, offset like the
// transformer's combined category map.
func hstack(rows int, blocks []block) (*mat.Dense, []string) {
	total := 0
	for _, b := range blocks {
		total += len(b.names)
	}
	if total == 0 {
		return nil, nil
	}
	out := mat.NewDense(rows, total, nil)
	names := make([]string, 0, total)
	offset := 0
	for _, b := range blocks {
		if b.m == nil {
			continue
		}
		_, cols := b.m.Dims()
		for i := 0; i < rows; i++ {
			dst := out.RawRowView(i)
			copy(dst[offset:offset+cols], b.m.RawRowView(i))
		}
		names = append(names, b.names...)
		offset += cols
	}
	return out, names
}
