package search

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/blandwms/fake-news/pkg/loader"
	"github.com/blandwms/fake-news/pkg/model"
)

// Estimator is the minimal surface grid search needs from a model.
type Estimator interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
}

// Factory builds a fresh estimator configured with the given parameters.
// Grid search never refits an estimator it already used.
type Factory func(Params) Estimator

// Result holds the winning combination of a grid search.
type Result struct {
	BestParams Params
	BestScore  float64 // mean cross-validated accuracy
	Best       Estimator
}

// GridSearchCV evaluates every combination of grid with k-fold
// cross-validation on (X, y), picks the one with the best mean accuracy
// and refits it on all of (X, y). Combinations are tried in deterministic
// order and the first best wins ties.
func GridSearchCV(factory Factory, grid Grid, X [][]float64, y []int, k int) (*Result, error) {
	n := len(X)
	if n == 0 {
		return nil, errors.New("search: empty X")
	}
	if len(y) != n {
		return nil, errors.New("search: X and y length mismatch")
	}
	if k < 2 {
		return nil, errors.New("search: need at least 2 folds")
	}
	if k > n {
		k = n
	}

	folds := loader.KFoldSplit(n, k)

	best := Result{BestScore: -1}
	for _, params := range grid.Combinations() {
		score, err := crossValidate(factory, params, X, y, folds)
		if err != nil {
			return nil, fmt.Errorf("search: params %s: %w", params, err)
		}
		if score > best.BestScore {
			best.BestScore = score
			best.BestParams = params
		}
	}

	best.Best = factory(best.BestParams)
	if err := best.Best.Fit(X, y); err != nil {
		return nil, fmt.Errorf("search: refit %s: %w", best.BestParams, err)
	}
	return &best, nil
}

// crossValidate returns the mean held-out accuracy across folds. Folds are
// evaluated concurrently; the first failing fold aborts the rest.
func crossValidate(factory Factory, params Params, X [][]float64, y []int, folds [][]int) (float64, error) {
	scores := make([]float64, len(folds))
	var g errgroup.Group

	for fi := range folds {
		fi := fi
		g.Go(func() error {
			XTrain, yTrain, XTest, yTest := holdOut(X, y, folds, fi)

			est := factory(params)
			if err := est.Fit(XTrain, yTrain); err != nil {
				return err
			}
			scores[fi] = model.Accuracy(yTest, est.Predict(XTest))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	return mean / float64(len(folds)), nil
}

// holdOut assembles train/test partitions with fold q held out.
func holdOut(X [][]float64, y []int, folds [][]int, q int) (XTrain [][]float64, yTrain []int, XTest [][]float64, yTest []int) {
	for fi, fold := range folds {
		for _, i := range fold {
			if fi == q {
				XTest = append(XTest, X[i])
				yTest = append(yTest, y[i])
			} else {
				XTrain = append(XTrain, X[i])
				yTrain = append(yTrain, y[i])
			}
		}
	}
	return
}
