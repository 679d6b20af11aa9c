package services

import "errors"

// Sentinel errors returned by the pipeline and inventory services.
// Controllers translate these into HTTP responses.
var (
	// ErrNotFound indicates the requested order or fabric roll does not exist
	ErrNotFound = errors.New("record not found")

	// ErrBackwardTransition indicates an attempt to move an order to a
	// stage that is not strictly after its current one. Orders never move
	// backward: cutting and sewing are not reversible.
	ErrBackwardTransition = errors.New("cannot move orders backward in the pipeline")

	// ErrUnknownStage indicates a stage name outside the pipeline
	ErrUnknownStage = errors.New("unknown pipeline stage")

	// ErrNoOpenStage indicates the ledger has no open stage entry to
	// close for the order's current status. This is a data-integrity
	// failure, not a user error; it is never repaired automatically.
	ErrNoOpenStage = errors.New("no open pipeline stage entry for order")

	// ErrInsufficientStock indicates a deduction asked for more yardage
	// than the roll has left
	ErrInsufficientStock = errors.New("insufficient yardage on fabric roll")
)
