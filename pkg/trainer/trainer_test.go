package trainer

import (
	"bytes"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blandwms/fake-news/pkg/search"
)

// syntheticDataset is a Dataset with one perfectly separating column.
type syntheticDataset struct {
	x [][]float64
	y []int
}

func newSyntheticDataset(n, p, signalCol int) *syntheticDataset {
	ds := &syntheticDataset{
		x: make([][]float64, n),
		y: make([]int, n),
	}
	for i := range ds.x {
		row := make([]float64, p)
		for j := range row {
			row[j] = rand.Float64()
		}
		ds.y[i] = i % 2
		row[signalCol] = float64(ds.y[i])
		ds.x[i] = row
	}
	return ds
}

func (d *syntheticDataset) X() [][]float64 { return d.x }

func (d *syntheticDataset) Y() []int { return d.y }

func (d *syntheticDataset) ColumnName(i int) string { return fmt.Sprintf("f%d", i) }

func TestTopFeatures(t *testing.T) {
	scores := []float64{0.1, 0.9, 0.5, 0.5, -2, 0.5, 0, 0.9, 0.3, 0.2, 0.15, 0.05, 0.02, 0.01, 0.005}

	top := TopFeatures(scores, 10)
	require.Len(t, top, 10)

	// Descending by score, ascending index on ties.
	require.Equal(t, []int{1, 7, 2, 3, 5, 8, 9, 10, 0, 11}, top)

	seen := map[int]bool{}
	for _, i := range top {
		require.False(t, seen[i])
		seen[i] = true
	}
}

func TestTopFeaturesShortVector(t *testing.T) {
	top := TopFeatures([]float64{0.2, 0.8}, 10)
	require.Equal(t, []int{1, 0}, top)
}

func TestTrainDecisionTreeEndToEnd(t *testing.T) {
	ds := newSyntheticDataset(100, 15, 7)

	var buf bytes.Buffer
	require.NoError(t, Train(&buf, ds, Spec{Kind: DecisionTree, Grid: search.Grid{}}))
	out := buf.String()

	require.Contains(t, out, "DecisionTreeClassifier with parameters {}:")
	require.Contains(t, out, "\tval-accuracy: ")
	require.Contains(t, out, "\ttest-accuracy: ")
	require.Contains(t, out, "\tmost important features:")

	// The separating column must appear in the printed top 10.
	require.Contains(t, out, " f7 ")

	// Exactly ten ranked feature lines.
	ranked := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "\t\t") {
			ranked++
		}
	}
	require.Equal(t, 10, ranked)

	require.GreaterOrEqual(t, testAccuracyFrom(t, out), 0.9)
}

// testAccuracyFrom extracts the reported test accuracy from a report.
func testAccuracyFrom(t *testing.T, out string) float64 {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "\ttest-accuracy: "); ok {
			v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
			require.NoError(t, err)
			return v
		}
	}
	t.Fatal("no test-accuracy line in report")
	return 0
}

func TestTrainRejectsUnknownGridParameter(t *testing.T) {
	ds := newSyntheticDataset(40, 5, 2)

	err := Train(&bytes.Buffer{}, ds, Spec{Kind: NaiveBayes, Grid: search.Grid{"C": {1}}})
	require.ErrorContains(t, err, `grid parameter "C" not supported`)
}

func TestTrainInputErrors(t *testing.T) {
	empty := &syntheticDataset{}
	require.Error(t, Train(&bytes.Buffer{}, empty, Spec{Kind: DecisionTree}))

	bad := newSyntheticDataset(10, 3, 0)
	bad.y = bad.y[:5]
	require.Error(t, Train(&bytes.Buffer{}, bad, Spec{Kind: DecisionTree}))
}

func TestRunDefaultSweep(t *testing.T) {
	ds := newSyntheticDataset(100, 15, 7)

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, ds, DefaultSweep()))
	out := buf.String()

	require.Contains(t, out, "DecisionTreeClassifier with parameters {}:")
	require.Contains(t, out, "MultinomialNB with parameters {alpha: ")
	require.Contains(t, out, "LogisticRegression with parameters {C: ")
}

func TestDefaultSweep(t *testing.T) {
	sweep := DefaultSweep()
	require.Len(t, sweep, 3)
	require.Equal(t, DecisionTree, sweep[0].Kind)
	require.Empty(t, sweep[0].Grid)
	require.Equal(t, search.Grid{"alpha": {0.1, 1.0, 10.0, 100.0}}, sweep[1].Grid)
	require.Equal(t, search.Grid{"C": {0.01, 0.1, 1, 10, 100}}, sweep[2].Grid)
}
