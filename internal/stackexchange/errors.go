package stackexchange

import (
	"fmt"
	"strings"
)

// FetchError is returned when a query cannot produce a result page: the request
// failed, the API answered with a non-success status, or the body was undecodable.
type FetchError struct {
	Op         string
	StatusCode int
	APIError   string
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	switch {
	case e.StatusCode != 0 && e.APIError != "":
		fmt.Fprintf(&b, " failed with status %d: %s", e.StatusCode, e.APIError)
	case e.StatusCode != 0:
		fmt.Fprintf(&b, " failed with status %d", e.StatusCode)
	default:
		b.WriteString(" failed")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
