package model

// Classifier is the supervised learning interface shared by every model in
// this package. Labels are small non-negative integers (0/1 for the article
// validity task).
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int

	// Importance reports per-feature importances for the fitted model.
	// It is resolved once by Fit; calling it before Fit yields Unsupported.
	Importance() Importance

	// Name identifies the classifier in reports.
	Name() string
}

// ImportanceKind discriminates how a model expresses feature importance.
type ImportanceKind int

const (
	// Unsupported means the model exposes no usable importance vector.
	Unsupported ImportanceKind = iota
	// LinearImportance means Scores are raw model coefficients.
	LinearImportance
	// TreeImportance means Scores are impurity-decrease importances.
	TreeImportance
)

func (k ImportanceKind) String() string {
	switch k {
	case LinearImportance:
		return "linear"
	case TreeImportance:
		return "tree"
	default:
		return "unsupported"
	}
}

// Importance is a tagged importance result. Scores is nil when Kind is
// Unsupported; otherwise it has one entry per input feature column.
type Importance struct {
	Kind   ImportanceKind
	Scores []float64
}
