// Package report turns decoded JUnit test suites into a single cross-linked
// report document: a summary table with a totals row and per-group detail
// tables for failed and skipped test cases.
package report

// NotAvailable is shown for text fields missing from the source report.
const NotAvailable = "N/A"

// SuiteRecord is one decoded test suite report file.
type SuiteRecord struct {
	Name      string
	Tests     int
	Skipped   int
	Failures  int
	Errors    int
	Timestamp string
	Time      float64

	Cases []TestCase
	// HasCases is false when the source carried no test case sequence at all,
	// which is different from an empty sequence.
	HasCases bool

	// Path is the file the record was decoded from, if any.
	Path string
}

// TestCase is one test method result within a suite.
type TestCase struct {
	Name      string
	ClassName string
	Time      float64
	Outcome   Outcome
}

// Outcome is one of Passed, Failed or Skipped.
type Outcome interface {
	outcome()
}

// Passed ...
type Passed struct{}

// Failed carries the failure element of a test case. Any field may be empty.
type Failed struct {
	Message    string
	Type       string
	StackTrace string
}

// Skipped carries the raw attributes of a skipped element.
type Skipped struct {
	Attributes map[string]string
}

func (Passed) outcome()  {}
func (Failed) outcome()  {}
func (Skipped) outcome() {}
