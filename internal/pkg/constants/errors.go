package constants

import "net/http"

// CodedError is an error that carries the http status code it should be
// reported with. The api error handler unwraps to the first CodedError in
// the chain.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	// ErrDataUnavailable means the remote fetch and the cache fallback both
	// failed. At startup this aborts the process.
	ErrDataUnavailable = NewCodedError(http.StatusServiceUnavailable, "dataset unavailable: remote fetch and cache fallback both failed")

	// ErrSchema means the source csv is missing required columns.
	ErrSchema = NewCodedError(http.StatusBadGateway, "incompatible source schema")

	// ErrNotFound is the normal outcome for a location with no usable data.
	ErrNotFound = NewCodedError(http.StatusNotFound, "not found")

	ErrUnknownMetric = NewCodedError(http.StatusBadRequest, "unknown metric")

	ErrUnauthorized = NewCodedError(http.StatusUnauthorized, "unauthorized")
)
