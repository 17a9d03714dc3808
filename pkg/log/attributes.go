// Standard attribute keys for export and scoring records. Keys follow a
// dotted hierarchy ("model.kind", "tree.depth") so records can be filtered
// by prefix.

package log

// Model and operation context.
const (
	// ModelKindKey is the document type tag: "linear", "forest" or "gbm".
	ModelKindKey = "model.kind"

	// ModelPathKey is the file a document was read from or written to.
	ModelPathKey = "model.path"

	// OperationKey names the operation: "export", "score", "verify", "sweep".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"
)

// Ensemble shape.
const (
	// TreesKey is the number of trees in an ensemble.
	TreesKey = "ensemble.trees"

	// TreeDepthKey is the maximum depth across the exported trees.
	TreeDepthKey = "tree.depth"

	// TreeLeavesKey is the total number of leaves across the exported trees.
	TreeLeavesKey = "tree.leaves"

	// LearningRateKey records a boosting ensemble's learning rate.
	LearningRateKey = "gbm.learning_rate"

	// InitScoreKey records a boosting ensemble's baseline prediction.
	InitScoreKey = "gbm.init_score"
)

// Data shape and results.
const (
	// SamplesKey is the number of feature vectors processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature slots.
	FeaturesKey = "data.features"

	// ScoreKey is a raw model output.
	ScoreKey = "score.raw"

	// CreditScoreKey is a score mapped onto the 300-900 credit scale.
	CreditScoreKey = "score.credit"

	// MaxAbsErrorKey is the largest absolute deviation found by a parity check.
	MaxAbsErrorKey = "parity.max_abs_error"

	// MSEKey is the mean squared deviation found by a parity check.
	MSEKey = "parity.mse"
)

// Error context.
const (
	// ErrorTypeKey categorizes the error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)
