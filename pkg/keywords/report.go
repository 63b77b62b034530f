package keywords

import (
	"fmt"
	"io"

	"keyword-planner/pkg/ads"
)

// ReportFault writes a human-readable account of an API fault: the request
// id and status, then every error message with the request fields it
// points at.
func ReportFault(w io.Writer, fault *ads.Fault) {
	fmt.Fprintf(w, "Request with ID \"%s\" failed with status \"%s\" and includes the following errors:\n",
		fault.RequestID, fault.Status)
	for _, e := range fault.Errors {
		fmt.Fprintf(w, "\tError with message \"%s\".\n", e.Message)
		for _, field := range e.FieldPath() {
			fmt.Fprintf(w, "\t\tOn field: %s\n", field)
		}
	}
}
