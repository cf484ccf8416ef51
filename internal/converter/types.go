package converter

import "fmt"

// Request is one user-initiated conversion
type Request struct {
	Text         string
	LanguageCode string
	Slow         bool
}

// Result is the outcome of a conversion. Exactly one of FilePath or Err is set.
type Result struct {
	FilePath string // Path of the saved audio file on success
	Message  string // Text to show the user on failure
	Err      error  // *ValidationError or *ExternalServiceError on failure
}

// Success builds a successful result
func Success(path string) Result {
	return Result{FilePath: path}
}

// Failure builds a failed result whose message is err's text
func Failure(err error) Result {
	return Result{Message: err.Error(), Err: err}
}

// OK reports whether the conversion produced a file
func (r Result) OK() bool {
	return r.Err == nil
}

// ErrNoText is the validation message for blank input
const ErrNoText = "Please enter some text!"

// ValidationError is returned when a request is rejected before any external call
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ExternalServiceError wraps failures of the synthesis service or the output store.
// Its message is the wrapped error's text, unchanged.
type ExternalServiceError struct {
	Op  string // "synthesize" or "save"
	Err error
}

func (e *ExternalServiceError) Error() string {
	return e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func unsupportedLanguage(code string) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf("Language not supported: %s", code)}
}
