package ads

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldPathElement names one step of the request path an error points at
type FieldPathElement struct {
	FieldName string `json:"fieldName"`
	Index     *int   `json:"index,omitempty"`
}

// ErrorLocation locates an error inside the request
type ErrorLocation struct {
	FieldPathElements []FieldPathElement `json:"fieldPathElements"`
}

// GoogleAdsError is one entry of a GoogleAdsFailure
type GoogleAdsError struct {
	ErrorCode map[string]interface{} `json:"errorCode,omitempty"`
	Message   string                 `json:"message"`
	Location  *ErrorLocation         `json:"location,omitempty"`
}

// FieldPath returns the field names of the error location, or nil
func (e GoogleAdsError) FieldPath() []string {
	if e.Location == nil || len(e.Location.FieldPathElements) == 0 {
		return nil
	}
	path := make([]string, 0, len(e.Location.FieldPathElements))
	for _, el := range e.Location.FieldPathElements {
		path = append(path, el.FieldName)
	}
	return path
}

// Fault is a structured API failure
type Fault struct {
	RequestID      string
	Status         string
	HTTPStatusCode int
	Errors         []GoogleAdsError
}

func (f *Fault) Error() string {
	messages := make([]string, 0, len(f.Errors))
	for _, e := range f.Errors {
		messages = append(messages, e.Message)
	}
	return fmt.Sprintf("google ads request %q failed with status %s: %s",
		f.RequestID, f.Status, strings.Join(messages, "; "))
}

// HTTPStatus maps the fault's status code onto an HTTP status for callers
// that re-expose faults over HTTP
func (f *Fault) HTTPStatus() int {
	switch f.Status {
	case "INVALID_ARGUMENT", "FAILED_PRECONDITION", "OUT_OF_RANGE":
		return http.StatusBadRequest
	case "UNAUTHENTICATED":
		return http.StatusUnauthorized
	case "PERMISSION_DENIED":
		return http.StatusForbidden
	case "NOT_FOUND":
		return http.StatusNotFound
	case "RESOURCE_EXHAUSTED":
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}
