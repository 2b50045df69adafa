package types

import "errors"

// Sentinel errors for the pipeline.
var (
	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownFeed   = errors.New("unknown feed type")
	ErrUnknownRule   = errors.New("unknown rule type")

	// Data errors
	ErrInvalidData = errors.New("invalid input data")

	// Persistence errors
	ErrRunNotFound = errors.New("run not found")
)
