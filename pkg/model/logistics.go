package model

import (
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/blandwms/fake-news/pkg/optim"
)

// LogisticRegression is a binary classifier trained with mini-batch
// gradient descent and an L2 penalty. C is the inverse regularization
// strength: smaller values regularize harder.
type LogisticRegression struct {
	W []float64 // weights, resolved by Fit
	b float64   // bias

	C         float64
	Lr        float64
	Epochs    int
	BatchSize int
}

// LROption is functional config for LogisticRegression.
type LROption func(*LogisticRegression)

func WithC(c float64) LROption             { return func(m *LogisticRegression) { m.C = c } }
func WithLearningRate(lr float64) LROption { return func(m *LogisticRegression) { m.Lr = lr } }
func WithEpochs(n int) LROption            { return func(m *LogisticRegression) { m.Epochs = n } }
func WithBatchSize(n int) LROption         { return func(m *LogisticRegression) { m.BatchSize = n } }

// NewLogisticRegression returns a classifier with sensible defaults.
func NewLogisticRegression(opts ...LROption) *LogisticRegression {
	m := &LogisticRegression{
		C:         1.0,
		Lr:        0.1,
		Epochs:    100,
		BatchSize: 32,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *LogisticRegression) Name() string { return "LogisticRegression" }

// Fit trains the model on X and binary labels y (0/1).
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("logistic: empty X")
	}
	if len(y) != len(X) {
		return errors.New("logistic: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("logistic: inconsistent number of features in X rows")
		}
	}
	for _, lab := range y {
		if lab != 0 && lab != 1 {
			return errors.New("logistic: labels must be 0 or 1")
		}
	}

	// Small random init to break symmetry.
	m.W = make([]float64, p)
	for i := range m.W {
		m.W[i] = rand.NormFloat64() * 0.01
	}
	m.b = 0

	yf := make([]float64, len(y))
	for i, lab := range y {
		yf[i] = float64(lab)
	}

	opt := optim.NewSGD(m.Lr)
	n := len(X)
	batch := m.BatchSize
	if batch <= 0 || batch > n {
		batch = n
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	for ep := 0; ep < m.Epochs; ep++ {
		rand.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		for start := 0; start < n; start += batch {
			end := start + batch
			if end > n {
				end = n
			}
			rows := order[start:end]

			gW := make([]float64, p)
			gb := 0.0
			for _, i := range rows {
				d := (m.sigmoidRow(X[i]) - yf[i]) / float64(len(rows))
				for j, xij := range X[i] {
					gW[j] += d * xij
				}
				gb += d
			}
			// L2 penalty scaled by 1/C.
			for j := range gW {
				gW[j] += m.W[j] / (m.C * float64(n))
			}

			opt.Step(m.W, gW)
			m.b -= m.Lr * gb
		}
	}
	return nil
}

// PredictProba returns p(y=1) for each input row, computed in parallel
// across CPU cores.
func (m *LogisticRegression) PredictProba(X [][]float64) []float64 {
	if len(X) == 0 {
		return nil
	}
	out := make([]float64, len(X))
	var wg sync.WaitGroup

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(X) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if end > len(X) {
			end = len(X)
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = m.sigmoidRow(X[i])
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

// Predict returns class labels using a 0.5 probability threshold.
func (m *LogisticRegression) Predict(X [][]float64) []int {
	proba := m.PredictProba(X)
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// Importance reports the raw signed coefficients. Large negative weights
// rank low even when highly predictive; that matches the original report.
func (m *LogisticRegression) Importance() Importance {
	if m.W == nil {
		return Importance{Kind: Unsupported}
	}
	return Importance{Kind: LinearImportance, Scores: m.W}
}

func (m *LogisticRegression) sigmoidRow(row []float64) float64 {
	sum := m.b
	for j, v := range row {
		sum += m.W[j] * v
	}
	return sigmoid(sum)
}

func sigmoid(x float64) float64 { return 1.0 / (1.0 + math.Exp(-x)) }
