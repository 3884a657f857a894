// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Status is the three-valued outcome every shim operation reports. Legacy
// hosts branch on the numeric value, so the constants must not change.
type Status int

const (
	// StatusSuccess means the operation produced what it was asked to.
	StatusSuccess Status = 1
	// StatusFailure is a soft failure: the external tool ran but no output
	// file resulted.
	StatusFailure Status = 0
	// StatusError is a hard error: invalid arguments, a missing precondition,
	// or an unexpected condition during execution.
	StatusError Status = -1
)

// String returns the status name used in logs and CLI output.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result carries a status and the human-readable message that goes with it.
// Message is empty on success unless an operation chooses to report detail.
type Result struct {
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// OK reports whether the result is StatusSuccess.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Succeeded builds a success result.
func Succeeded() Result {
	return Result{Status: StatusSuccess}
}

// Failed builds a soft-failure result with a formatted message.
func Failed(format string, args ...any) Result {
	return Result{Status: StatusFailure, Message: fmt.Sprintf(format, args...)}
}

// Errored builds a hard-error result with a formatted message.
func Errored(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Request is a single conversion request. It is consumed synchronously and
// not retained after the call returns.
type Request struct {
	// InputPath is the document to convert. Required.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is where the external tool writes its result. Required.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// InputFormat is accepted for API compatibility but is not passed to the
	// external tool, which detects the input type itself.
	InputFormat string `json:"input_format,omitempty" yaml:"input_format,omitempty"`

	// OutputFormat is passed as the target-format flag when non-empty. When
	// empty the tool infers the format from OutputPath's extension.
	OutputFormat string `json:"output_format,omitempty" yaml:"output_format,omitempty"`
}
