package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCountryNotFound = errors.New("country not found")
)

// ExternalSourceError means one of the upstream APIs could not deliver data:
// timeout, connection failure, non-success status or an explicit failure
// payload. The refresh aborts before any writes when it sees one.
type ExternalSourceError struct {
	Source string
	Reason string
	Err    error
}

func (e *ExternalSourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

func (e *ExternalSourceError) Unwrap() error {
	return e.Err
}

// InvalidQueryError rejects a /countries request carrying unrecognized
// query parameter keys.
type InvalidQueryError struct {
	Invalid []string
	Valid   []string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query parameters: %s", strings.Join(e.Invalid, ", "))
}
