package models

// OrderStatus represents a stage in the production pipeline
type OrderStatus string

const (
	StageOrderReceived   OrderStatus = "Order Received"
	StagePatternDrafting OrderStatus = "Pattern Drafting"
	StageCutting         OrderStatus = "Cutting"
	StageSewing          OrderStatus = "Sewing"
	StageFinishing       OrderStatus = "Finishing"
	StageQC              OrderStatus = "QC"
	StageShipped         OrderStatus = "Shipped"
)

// PipelineOrder is the fixed sequence of production stages. Orders only
// ever move forward through this list; Shipped is terminal.
var PipelineOrder = []OrderStatus{
	StageOrderReceived,
	StagePatternDrafting,
	StageCutting,
	StageSewing,
	StageFinishing,
	StageQC,
	StageShipped,
}

// StageIndex returns the position of a stage in the pipeline, or -1 if
// the stage is not a known pipeline stage
func StageIndex(stage OrderStatus) int {
	for i, s := range PipelineOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

// IsForwardTransition reports whether moving from one stage to another
// is a strictly forward move in the pipeline. Equal stages are not
// forward moves.
func IsForwardTransition(from, to OrderStatus) bool {
	fromIdx := StageIndex(from)
	toIdx := StageIndex(to)
	if fromIdx < 0 || toIdx < 0 {
		return false
	}
	return toIdx > fromIdx
}

// NextStage returns the stage immediately after the given one, or an
// empty status if the stage is terminal or unknown
func NextStage(stage OrderStatus) (OrderStatus, bool) {
	idx := StageIndex(stage)
	if idx < 0 || idx >= len(PipelineOrder)-1 {
		return "", false
	}
	return PipelineOrder[idx+1], true
}
