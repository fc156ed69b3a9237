package report

import (
	"errors"
	"fmt"
)

// ErrNoReportsFound signals that the run found nothing to aggregate.
var ErrNoReportsFound = errors.New("no test reports found")

// ParseError reports a test report file that could not be turned into a SuiteRecord.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<unknown>"
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to parse test report (%s): %s: %s", path, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse test report (%s): %s", path, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
