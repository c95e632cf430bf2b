package metrics

const (
	LabelChain     = "chain"
	LabelErrorCode = "error_code"
	LabelRole      = "role"
	LabelAlgorithm = "algorithm"
)
