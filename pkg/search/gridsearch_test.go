package search

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// thresholdStub predicts 1 when column 0 is at or above its threshold.
type thresholdStub struct {
	threshold float64
}

func (s *thresholdStub) Fit(X [][]float64, y []int) error { return nil }

func (s *thresholdStub) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		if row[0] >= s.threshold {
			out[i] = 1
		}
	}
	return out
}

func thresholdData() ([][]float64, []int) {
	X := make([][]float64, 20)
	y := make([]int, 20)
	for i := range X {
		X[i] = []float64{float64(i)}
		if i >= 10 {
			y[i] = 1
		}
	}
	return X, y
}

func TestGridSearchCVPicksBest(t *testing.T) {
	X, y := thresholdData()
	factory := func(p Params) Estimator { return &thresholdStub{threshold: p["t"]} }
	grid := Grid{"t": {0, 10, 19}}

	res, err := GridSearchCV(factory, grid, X, y, 5)
	require.NoError(t, err)
	require.Equal(t, Params{"t": 10}, res.BestParams)
	require.Equal(t, 1.0, res.BestScore)
	require.Equal(t, 10.0, res.Best.(*thresholdStub).threshold)
}

func TestGridSearchCVEmptyGrid(t *testing.T) {
	X, y := thresholdData()

	var instantiated atomic.Int32
	factory := func(p Params) Estimator {
		instantiated.Add(1)
		require.Empty(t, p)
		return &thresholdStub{threshold: 10}
	}

	res, err := GridSearchCV(factory, Grid{}, X, y, 4)
	require.NoError(t, err)
	require.Empty(t, res.BestParams)
	require.Equal(t, 1.0, res.BestScore)
	// One estimator per fold plus the final refit, all with defaults.
	require.Equal(t, int32(5), instantiated.Load())
}

func TestGridSearchCVInputErrors(t *testing.T) {
	X, y := thresholdData()
	factory := func(p Params) Estimator { return &thresholdStub{} }

	_, err := GridSearchCV(factory, Grid{}, nil, nil, 5)
	require.Error(t, err)

	_, err = GridSearchCV(factory, Grid{}, X, y[:5], 5)
	require.Error(t, err)

	_, err = GridSearchCV(factory, Grid{}, X, y, 1)
	require.Error(t, err)
}

// failingStub always fails to fit.
type failingStub struct{}

func (failingStub) Fit(X [][]float64, y []int) error { return errors.New("boom") }
func (failingStub) Predict(X [][]float64) []int      { return make([]int, len(X)) }

func TestGridSearchCVPropagatesFitError(t *testing.T) {
	X, y := thresholdData()
	factory := func(p Params) Estimator { return failingStub{} }

	_, err := GridSearchCV(factory, Grid{}, X, y, 4)
	require.ErrorContains(t, err, "boom")
}
