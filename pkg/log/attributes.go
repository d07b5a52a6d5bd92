// This file defines the attribute keys used in structured log records of a
// tree search. Keys are hierarchical ("search.rows") so records can be
// filtered by prefix.

package log

// Search context.
const (
	// ComponentKey identifies the package or engine emitting the record.
	// Examples: "cart.optimize", "cart.enumerate", "pcart.cli"
	ComponentKey = "search.component"

	// OperationKey specifies the engine operation being performed.
	OperationKey = "search.operation"

	// PredictorsKey is the number of predictor variables in a search.
	PredictorsKey = "search.predictors"

	// ResponseKey is the name of the response variable.
	ResponseKey = "search.response"

	// RowsKey is the number of dataset rows a search runs over.
	RowsKey = "search.rows"

	// ColumnsKey is the number of dataset columns.
	ColumnsKey = "search.columns"

	// ParallelismKey is the number of workers used for the root fan-out.
	ParallelismKey = "search.parallelism"
)

// Results.
const (
	// ShapesKey is the number of tree shapes produced by an enumeration.
	ShapesKey = "result.shapes"

	// LeavesKey is the number of leaves of a result tree.
	LeavesKey = "result.leaves"

	// DataScoreKey is the log marginal likelihood of a result.
	DataScoreKey = "result.data_score"

	// StructureScoreKey is the log structure prior of a result.
	StructureScoreKey = "result.structure_score"

	// TotalScoreKey is DataScoreKey + StructureScoreKey.
	TotalScoreKey = "result.total_score"

	// StructureMassKey is the summed prior probability over enumerated shapes.
	StructureMassKey = "result.structure_mass"

	// LeafPenaltyKey and NormalizerKey describe the structure prior terms.
	LeafPenaltyKey = "prior.leaf_penalty"
	NormalizerKey  = "prior.normalizer"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Errors.
const (
	// ErrorKey holds the error attached to a record.
	ErrorKey = "error"

	// StacktraceKey contains the stack trace recorded by cockroachdb/errors.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationEnumerate = "enumerate"
	OperationOptimize  = "optimize"
	OperationVerify    = "verify"
	OperationDemo      = "demo"
)
