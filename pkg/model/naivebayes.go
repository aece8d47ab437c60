package model

import (
	"errors"
	"math"
	"sort"
)

// MultinomialNB is a multinomial naive Bayes classifier with additive
// smoothing. Features must be non-negative counts or TF-IDF weights.
type MultinomialNB struct {
	Alpha float64 // additive smoothing; 1.0 is Laplace smoothing

	// internals, resolved by Fit
	classes     []int       // sorted class labels
	logPriors   []float64   // log p(class)
	featLogProb [][]float64 // [class][feature] log p(feature | class)
}

// NBOption is functional config for MultinomialNB.
type NBOption func(*MultinomialNB)

func WithAlpha(a float64) NBOption { return func(m *MultinomialNB) { m.Alpha = a } }

// NewMultinomialNB returns a classifier with Laplace smoothing by default.
func NewMultinomialNB(opts ...NBOption) *MultinomialNB {
	m := &MultinomialNB{Alpha: 1.0}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *MultinomialNB) Name() string { return "MultinomialNB" }

// Fit estimates class priors and smoothed per-class feature probabilities.
func (m *MultinomialNB) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("naivebayes: empty X")
	}
	if len(y) != len(X) {
		return errors.New("naivebayes: X and y length mismatch")
	}
	p := len(X[0])

	classSet := map[int]struct{}{}
	for _, lab := range y {
		classSet[lab] = struct{}{}
	}
	m.classes = make([]int, 0, len(classSet))
	for lab := range classSet {
		m.classes = append(m.classes, lab)
	}
	sort.Ints(m.classes)

	nc := len(m.classes)
	index := make(map[int]int, nc)
	for i, lab := range m.classes {
		index[lab] = i
	}

	featCount := make([][]float64, nc)
	for c := range featCount {
		featCount[c] = make([]float64, p)
	}
	docCount := make([]float64, nc)

	for i, row := range X {
		if len(row) != p {
			return errors.New("naivebayes: inconsistent number of features in X rows")
		}
		c := index[y[i]]
		docCount[c]++
		for j, v := range row {
			if v < 0 {
				return errors.New("naivebayes: negative feature value")
			}
			featCount[c][j] += v
		}
	}

	m.logPriors = make([]float64, nc)
	m.featLogProb = make([][]float64, nc)
	n := float64(len(X))
	for c := 0; c < nc; c++ {
		m.logPriors[c] = math.Log(docCount[c] / n)
		total := 0.0
		for _, v := range featCount[c] {
			total += v
		}
		denom := total + m.Alpha*float64(p)
		probs := make([]float64, p)
		for j, v := range featCount[c] {
			probs[j] = math.Log((v + m.Alpha) / denom)
		}
		m.featLogProb[c] = probs
	}
	return nil
}

// Predict returns the class with the highest posterior for each row.
func (m *MultinomialNB) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		best, bestScore := 0, math.Inf(-1)
		for c := range m.classes {
			score := m.logPriors[c]
			for j, v := range row {
				if v != 0 {
					score += v * m.featLogProb[c][j]
				}
			}
			if score > bestScore {
				best, bestScore = c, score
			}
		}
		out[i] = m.classes[best]
	}
	return out
}

// Importance reports the feature log-probabilities of the highest class,
// the multinomial analogue of linear coefficients for a binary problem.
func (m *MultinomialNB) Importance() Importance {
	if m.featLogProb == nil {
		return Importance{Kind: Unsupported}
	}
	return Importance{Kind: LinearImportance, Scores: m.featLogProb[len(m.featLogProb)-1]}
}
