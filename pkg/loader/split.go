package loader

import "math/rand"

// TrainTestSplit splits X, y into train and test sets by ratio. The split
// is a fresh random permutation on every call.
func TrainTestSplit(X [][]float64, y []int, testRatio float64) (XTrain, XTest [][]float64, yTrain, yTest []int) {
	n := len(X)
	indices := rand.Perm(n)
	nTest := int(float64(n) * testRatio)
	for i := 0; i < n; i++ {
		if i < nTest {
			XTest = append(XTest, X[indices[i]])
			yTest = append(yTest, y[indices[i]])
		} else {
			XTrain = append(XTrain, X[indices[i]])
			yTrain = append(yTrain, y[indices[i]])
		}
	}
	return
}

// ShuffleData shuffles X and y in unison.
func ShuffleData(X [][]float64, y []int) ([][]float64, []int) {
	n := len(X)
	indices := rand.Perm(n)
	XShuf := make([][]float64, n)
	yShuf := make([]int, n)
	for i, idx := range indices {
		XShuf[i] = X[idx]
		yShuf[i] = y[idx]
	}
	return XShuf, yShuf
}

// KFoldSplit partitions n sample indices into k folds at random.
func KFoldSplit(n, k int) [][]int {
	indices := rand.Perm(n)
	folds := make([][]int, k)
	for i := 0; i < n; i++ {
		folds[i%k] = append(folds[i%k], indices[i])
	}
	return folds
}
