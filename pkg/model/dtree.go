package model

import (
	"errors"
	"math"
	"sort"
	"sync"
)

// DecisionTreeClassifier is a CART-style classifier over dense numeric
// features. Article feature matrices (TF-IDF weights, multi-hot flags,
// counts) are dense and finite, so splits are numeric thresholds only.
type DecisionTreeClassifier struct {
	// Hyperparameters
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // "gini" (default) or "entropy"
	MinImpurityDecrease float64 // minimal weighted gain to accept a split

	// internals
	root        *dtNode
	classes     []int
	importances []float64
}

// dtNode holds a node in the tree.
type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	left      *dtNode
	right     *dtNode

	// leaf data
	n         int
	predIndex int // index into classes for the majority class
}

// DTOption is functional config for the tree.
type DTOption func(*DecisionTreeClassifier)

func WithMaxDepth(d int) DTOption { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) DTOption {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) DTOption {
	return func(t *DecisionTreeClassifier) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) DTOption { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMinImpurityDecrease(v float64) DTOption {
	return func(t *DecisionTreeClassifier) { t.MinImpurityDecrease = v }
}

// NewDecisionTreeClassifier returns a classifier with sensible defaults.
func NewDecisionTreeClassifier(opts ...DTOption) *DecisionTreeClassifier {
	d := &DecisionTreeClassifier{
		MaxDepth:            0,
		MinSamplesSplit:     2,
		MinSamplesLeaf:      1,
		Criterion:           "gini",
		MinImpurityDecrease: 0.0,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (t *DecisionTreeClassifier) Name() string { return "DecisionTreeClassifier" }

// Fit trains the decision tree on X (n x p) and integer labels y.
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("dtree: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("dtree: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("dtree: inconsistent number of features in X rows")
		}
	}

	classMap := map[int]int{}
	t.classes = nil
	for _, lab := range y {
		if _, ok := classMap[lab]; !ok {
			classMap[lab] = len(t.classes)
			t.classes = append(t.classes, lab)
		}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	impurity := giniFromCounts
	if t.Criterion == "entropy" {
		impurity = entropyFromCounts
	}

	t.importances = make([]float64, p)
	t.root = t.buildNode(X, y, idx, 0, p, len(t.classes), n, impurity)
	normalize(t.importances)
	return nil
}

// Predict returns predicted class labels.
func (t *DecisionTreeClassifier) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		out[i] = t.classes[t.leafFor(X[i]).predIndex]
	}
	return out
}

// Importance reports impurity-decrease importances, normalized to sum to 1.
func (t *DecisionTreeClassifier) Importance() Importance {
	if t.root == nil {
		return Importance{Kind: Unsupported}
	}
	return Importance{Kind: TreeImportance, Scores: t.importances}
}

// splitResult holds the best split found for a single feature.
type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	leftIdx   []int
	rightIdx  []int
}

func (t *DecisionTreeClassifier) buildNode(X [][]float64, y []int, idx []int, depth, p, nClasses, nTotal int, impurity func([]int) float64) *dtNode {
	node := &dtNode{n: len(idx)}

	counts := make([]int, nClasses)
	for _, ii := range idx {
		counts[classIndex(y[ii], t.classes)]++
	}
	node.predIndex = argmax(counts)

	if isPure(counts) || len(idx) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		node.isLeaf = true
		return node
	}

	parentImpurity := impurity(counts)

	// Search for the best split of each feature in parallel.
	results := make(chan splitResult, p)
	var wg sync.WaitGroup
	for f := 0; f < p; f++ {
		wg.Add(1)
		go func(f int) {
			defer wg.Done()
			results <- t.bestSplitForFeature(X, y, idx, f, nClasses, parentImpurity, impurity)
		}(f)
	}
	wg.Wait()
	close(results)

	best := splitResult{feature: -1}
	for r := range results {
		if r.feature == -1 {
			continue
		}
		// Lower feature index wins ties so the tree is reproducible.
		if r.gain > best.gain || (r.gain == best.gain && (best.feature == -1 || r.feature < best.feature)) {
			best = r
		}
	}

	if best.feature == -1 || best.gain <= t.MinImpurityDecrease {
		node.isLeaf = true
		return node
	}

	// Importance is the achieved gain weighted by the fraction of samples
	// reaching this node, so deeper splits contribute less.
	t.importances[best.feature] += float64(len(idx)) / float64(nTotal) * best.gain

	node.feature = best.feature
	node.threshold = best.threshold
	node.left = t.buildNode(X, y, best.leftIdx, depth+1, p, nClasses, nTotal, impurity)
	node.right = t.buildNode(X, y, best.rightIdx, depth+1, p, nClasses, nTotal, impurity)
	return node
}

// pair is a feature value with its row index.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeClassifier) bestSplitForFeature(X [][]float64, y []int, idx []int, f, nClasses int, parentImpurity float64, impurity func([]int) float64) splitResult {
	result := splitResult{feature: -1}

	vals := make([]pair, 0, len(idx))
	for _, ii := range idx {
		vals = append(vals, pair{X[ii][f], ii})
	}
	sort.Slice(vals, func(a, b int) bool { return vals[a].v < vals[b].v })

	// Scan thresholds between distinct adjacent values, keeping running
	// class counts so each candidate costs O(classes).
	leftCounts := make([]int, nClasses)
	rightCounts := make([]int, nClasses)
	for _, pv := range vals {
		rightCounts[classIndex(y[pv.i], t.classes)]++
	}
	total := float64(len(vals))

	for s := 1; s < len(vals); s++ {
		ci := classIndex(y[vals[s-1].i], t.classes)
		leftCounts[ci]++
		rightCounts[ci]--
		if vals[s].v == vals[s-1].v {
			continue
		}
		if s < t.MinSamplesLeaf || len(vals)-s < t.MinSamplesLeaf {
			continue
		}
		weighted := float64(s)/total*impurity(leftCounts) + float64(len(vals)-s)/total*impurity(rightCounts)
		gain := parentImpurity - weighted
		if gain > result.gain {
			result.gain = gain
			result.feature = f
			result.threshold = (vals[s-1].v + vals[s].v) / 2.0
			result.leftIdx = indicesFromPairs(vals[:s])
			result.rightIdx = indicesFromPairs(vals[s:])
		}
	}
	return result
}

func (t *DecisionTreeClassifier) leafFor(x []float64) *dtNode {
	node := t.root
	for !node.isLeaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node
}

// ---------------------------
// Utilities: impurity & misc
// ---------------------------

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func argmax(counts []int) int {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best
}

// classIndex returns index of label in classes slice.
func classIndex(label int, classes []int) int {
	for i, v := range classes {
		if v == label {
			return i
		}
	}
	return 0
}

func indicesFromPairs(pairs []pair) []int {
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.i)
	}
	return out
}

func normalize(x []float64) {
	s := 0.0
	for _, v := range x {
		s += v
	}
	if s == 0 {
		return
	}
	for i := range x {
		x[i] /= s
	}
}
