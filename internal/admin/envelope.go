package admin

import "fmt"

// ErrorCode is the envelope-level failure taxonomy. Every admin operation
// reports failure through one of these; adapter exceptions never cross the
// admin boundary raw.
type ErrorCode string

const (
	// CodeDatabaseError: an adapter raised (network, syntax, constraint).
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
	// CodeNotFound: an existence check failed before a mutation was issued.
	CodeNotFound ErrorCode = "NOT_FOUND"
	// CodeInvalidAction: the caller requested an operation this module does
	// not recognize.
	CodeInvalidAction ErrorCode = "INVALID_ACTION"
	// CodeActionError: a named sub-step of a composite operation failed after
	// the operation was otherwise accepted.
	CodeActionError ErrorCode = "ACTION_ERROR"
	// CodeValidationError: required input missing or malformed.
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
)

type OpError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Result is the uniform envelope returned by every admin operation.
type Result struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   *OpError `json:"error,omitempty"`
}

func OK(data any) Result {
	return Result{Success: true, Data: data}
}

func Fail(code ErrorCode, format string, args ...any) Result {
	return Result{
		Success: false,
		Error:   &OpError{Code: code, Message: fmt.Sprintf(format, args...)},
	}
}

// FailWith keeps partial data alongside the error, used by composite
// operations whose first steps succeeded.
func FailWith(data any, code ErrorCode, format string, args ...any) Result {
	r := Fail(code, format, args...)
	r.Data = data
	return r
}

// BulkItemResult reports the outcome of one identifier within a bulk action.
type BulkItemResult struct {
	ID      string   `json:"id"`
	Success bool     `json:"success"`
	Error   *OpError `json:"error,omitempty"`
}

// BulkOutcome is the Data payload of a bulk action envelope.
type BulkOutcome struct {
	Action    string           `json:"action"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []BulkItemResult `json:"results"`
}
