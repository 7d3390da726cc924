package mealie

import "fmt"

// StatusError captures non-2xx responses from the Mealie API.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("api %s returned status %d", e.Operation, e.StatusCode)
}
