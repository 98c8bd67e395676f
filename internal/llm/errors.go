package llm

import "errors"

var (
	// ErrUnavailable indicates the model endpoint is unreachable.
	ErrUnavailable = errors.New("llm endpoint unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrNotConfigured indicates no usable provider or credentials are set.
	ErrNotConfigured = errors.New("llm not configured")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrEmptyResult indicates the model answered with no usable text.
	ErrEmptyResult = errors.New("empty llm response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

// FailureKind classifies an LLM error into the three recoverable kinds
// the services fall back on.
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureParse     FailureKind = "parse"
	FailureEmpty     FailureKind = "empty"
)

// Classify maps an error returned by a client or by ExtractJSON to its
// failure kind. Anything unrecognised is treated as a transport failure.
func Classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrInvalidOutput):
		return FailureParse
	case errors.Is(err, ErrEmptyResult):
		return FailureEmpty
	default:
		return FailureTransport
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrEmptyResult):
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}
