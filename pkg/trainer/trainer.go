package trainer

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/blandwms/fake-news/pkg/loader"
	"github.com/blandwms/fake-news/pkg/model"
	"github.com/blandwms/fake-news/pkg/search"
)

const (
	testRatio   = 0.2
	cvFolds     = 5
	topFeatures = 10
)

// Dataset is the collaborator surface the trainer consumes: a feature
// matrix, aligned labels and a column-index-to-name mapping.
type Dataset interface {
	X() [][]float64
	Y() []int
	ColumnName(i int) string
}

// Kind selects a learning algorithm.
type Kind int

const (
	DecisionTree Kind = iota
	NaiveBayes
	Logistic
)

// Spec pairs a classifier kind with the hyperparameter grid to search.
type Spec struct {
	Kind Kind
	Grid search.Grid
}

// DefaultSweep is the fixed three-classifier sweep run by the article
// trainer: a default decision tree, naive Bayes over smoothing strengths
// and logistic regression over inverse regularization strengths.
func DefaultSweep() []Spec {
	return []Spec{
		{Kind: DecisionTree, Grid: search.Grid{}},
		{Kind: NaiveBayes, Grid: search.Grid{"alpha": {0.1, 1.0, 10.0, 100.0}}},
		{Kind: Logistic, Grid: search.Grid{"C": {0.01, 0.1, 1, 10, 100}}},
	}
}

// gridParams lists the hyperparameter names each kind accepts.
var gridParams = map[Kind]map[string]struct{}{
	DecisionTree: {"max_depth": {}, "min_samples_split": {}, "min_samples_leaf": {}, "min_impurity_decrease": {}},
	NaiveBayes:   {"alpha": {}},
	Logistic:     {"C": {}},
}

// newClassifier instantiates kind with params applied over its defaults.
func newClassifier(kind Kind, params search.Params) model.Classifier {
	switch kind {
	case DecisionTree:
		var opts []model.DTOption
		if v, ok := params["max_depth"]; ok {
			opts = append(opts, model.WithMaxDepth(int(v)))
		}
		if v, ok := params["min_samples_split"]; ok {
			opts = append(opts, model.WithMinSamplesSplit(int(v)))
		}
		if v, ok := params["min_samples_leaf"]; ok {
			opts = append(opts, model.WithMinSamplesLeaf(int(v)))
		}
		if v, ok := params["min_impurity_decrease"]; ok {
			opts = append(opts, model.WithMinImpurityDecrease(v))
		}
		return model.NewDecisionTreeClassifier(opts...)
	case NaiveBayes:
		var opts []model.NBOption
		if v, ok := params["alpha"]; ok {
			opts = append(opts, model.WithAlpha(v))
		}
		return model.NewMultinomialNB(opts...)
	case Logistic:
		var opts []model.LROption
		if v, ok := params["C"]; ok {
			opts = append(opts, model.WithC(v))
		}
		return model.NewLogisticRegression(opts...)
	default:
		panic(fmt.Sprintf("trainer: unknown classifier kind %d", kind))
	}
}

// Train fits one classifier kind over its grid on ds and writes the report
// to w: chosen parameters, validation and test accuracy and the top-10
// most important features.
func Train(w io.Writer, ds Dataset, spec Spec) error {
	X, y := ds.X(), ds.Y()
	if len(X) == 0 {
		return errors.New("trainer: empty dataset")
	}
	if len(X) != len(y) {
		return errors.New("trainer: X and y row counts differ")
	}
	for name := range spec.Grid {
		if _, ok := gridParams[spec.Kind][name]; !ok {
			return fmt.Errorf("trainer: grid parameter %q not supported by %s", name, newClassifier(spec.Kind, nil).Name())
		}
	}

	XTrain, XTest, yTrain, yTest := loader.TrainTestSplit(X, y, testRatio)

	factory := func(p search.Params) search.Estimator { return newClassifier(spec.Kind, p) }
	res, err := search.GridSearchCV(factory, spec.Grid, XTrain, yTrain, cvFolds)
	if err != nil {
		return fmt.Errorf("trainer: grid search: %w", err)
	}
	best := res.Best.(model.Classifier)

	accuracy := model.Accuracy(yTest, best.Predict(XTest))

	fmt.Fprintf(w, "%s with parameters %s:\n", best.Name(), res.BestParams)
	fmt.Fprintf(w, "\tval-accuracy: %v\n", res.BestScore)
	fmt.Fprintf(w, "\ttest-accuracy: %v\n", accuracy)

	imp := best.Importance()
	if imp.Kind == model.Unsupported {
		return fmt.Errorf("trainer: %s exposes no feature importances", best.Name())
	}
	fmt.Fprintln(w, "\tmost important features:")
	for rank, col := range TopFeatures(imp.Scores, topFeatures) {
		fmt.Fprintf(w, "\t\t%d: %s %v\n", rank+1, ds.ColumnName(col), imp.Scores[col])
	}
	return nil
}

// Run executes the sweep sequentially, writing one report block per spec.
func Run(w io.Writer, ds Dataset, specs []Spec) error {
	for _, spec := range specs {
		if err := Train(w, ds, spec); err != nil {
			return err
		}
	}
	return nil
}

// TopFeatures returns the indices of the k largest scores, descending by
// raw score with ties broken by ascending column index. Scores are
// compared as-is, so large negative linear coefficients rank last.
func TopFeatures(scores []float64, k int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if scores[idx[a]] != scores[idx[b]] {
			return scores[idx[a]] > scores[idx[b]]
		}
		return idx[a] < idx[b]
	})
	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k]
}
