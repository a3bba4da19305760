package fundapi

import "fmt"

// DataFetchError reports a provider call that failed: transport error,
// non-2xx status or an undecodable body. StatusCode is 0 when no response
// was received.
type DataFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DataFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fund data fetch from %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fund data fetch from %s failed: %v", e.URL, e.Err)
}

func (e *DataFetchError) Unwrap() error {
	return e.Err
}
