package ai

import (
	"errors"
	"fmt"
)

const (
	CodeLLMFailed  = "llmFailed"
	CodeParseError = "parseError"
)

// ExtractionError reports why a message could not be turned into an intent.
type ExtractionError struct {
	Code    string
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is matches on the error code so callers can compare against the sentinels.
func (e *ExtractionError) Is(target error) bool {
	t, ok := target.(*ExtractionError)
	return ok && t.Code == e.Code
}

var (
	// ErrUnparseableIntent covers completions that are not a usable intent.
	ErrUnparseableIntent = &ExtractionError{Code: CodeParseError, Message: "unparseable intent"}
	// ErrLLMFailed covers transport and provider failures.
	ErrLLMFailed = &ExtractionError{Code: CodeLLMFailed, Message: "language model call failed"}
	// ErrEmptyCompletion is returned by clients when the model produced no text.
	ErrEmptyCompletion = errors.New("model returned no content")
)

func newParseError(msg string, err error) error {
	return &ExtractionError{Code: CodeParseError, Message: msg, Err: err}
}

func newLLMError(err error) error {
	return &ExtractionError{Code: CodeLLMFailed, Message: "language model call failed", Err: err}
}
