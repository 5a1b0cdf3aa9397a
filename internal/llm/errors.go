package llm

import "errors"

var (
	// ErrUnavailable means the model server could not be reached.
	ErrUnavailable = errors.New("llm server unavailable")

	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput means the response held no usable structured data.
	ErrInvalidOutput = errors.New("invalid llm output format")

	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
