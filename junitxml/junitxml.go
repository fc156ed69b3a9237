// Package junitxml finds JUnit XML test reports on disk and decodes them into report.SuiteRecord values.
package junitxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-android-test-report/report"
)

const (
	testSuitesElement = "testsuites"
	testSuiteElement  = "testsuite"
)

// Reader ...
type Reader interface {
	Discover(root string, patterns []string) ([]string, error)
	Load(path string) ([]report.SuiteRecord, error)
}

type reader struct {
	logger log.Logger
}

// NewReader ...
func NewReader(logger log.Logger) Reader {
	return &reader{logger: logger}
}

type xmlTestSuites struct {
	Suites []xmlTestSuite `xml:"testsuite"`
}

type xmlTestSuite struct {
	Name      string        `xml:"name,attr"`
	Tests     string        `xml:"tests,attr"`
	Skipped   string        `xml:"skipped,attr"`
	Failures  string        `xml:"failures,attr"`
	Errors    string        `xml:"errors,attr"`
	Timestamp string        `xml:"timestamp,attr"`
	Time      string        `xml:"time,attr"`
	TestCases []xmlTestCase `xml:"testcase"`
}

type xmlTestCase struct {
	Name      string      `xml:"name,attr"`
	ClassName string      `xml:"classname,attr"`
	Time      string      `xml:"time,attr"`
	Failure   *xmlFailure `xml:"failure"`
	Error     *xmlFailure `xml:"error"`
	Skipped   *xmlSkipped `xml:"skipped"`
}

type xmlFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

type xmlSkipped struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// Load decodes every test suite of the report at path.
func (r reader) Load(path string) ([]report.SuiteRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &report.ParseError{Path: path, Reason: "failed to open file", Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.Warnf("Failed to close %s: %s", path, err)
		}
	}()

	suites, err := Decode(f)
	if err != nil {
		var parseErr *report.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
			return nil, parseErr
		}
		return nil, &report.ParseError{Path: path, Reason: "invalid XML", Err: err}
	}

	for i := range suites {
		suites[i].Path = path
	}

	r.logger.Debugf("%s: %d test suite(s)", path, len(suites))

	return suites, nil
}

// Decode reads a single report document with either a testsuite or a testsuites root element.
// Every call uses its own decoder.
func Decode(input io.Reader) ([]report.SuiteRecord, error) {
	decoder := xml.NewDecoder(input)

	root, err := rootElement(decoder)
	if err != nil {
		return nil, err
	}

	var suites []xmlTestSuite
	switch root.Name.Local {
	case testSuiteElement:
		var suite xmlTestSuite
		if err := decoder.DecodeElement(&suite, &root); err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	case testSuitesElement:
		var wrapper xmlTestSuites
		if err := decoder.DecodeElement(&wrapper, &root); err != nil {
			return nil, err
		}
		if len(wrapper.Suites) == 0 {
			return nil, &report.ParseError{Reason: "testsuites element has no testsuite child"}
		}
		suites = wrapper.Suites
	default:
		return nil, &report.ParseError{Reason: fmt.Sprintf("unexpected root element: %s", root.Name.Local)}
	}

	records := make([]report.SuiteRecord, 0, len(suites))
	for _, suite := range suites {
		record, err := suite.record()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func rootElement(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return xml.StartElement{}, &report.ParseError{Reason: "missing testsuite root element"}
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := token.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func (s xmlTestSuite) record() (report.SuiteRecord, error) {
	tests, err := parseCount("tests", s.Tests)
	if err != nil {
		return report.SuiteRecord{}, err
	}
	skipped, err := parseCount("skipped", s.Skipped)
	if err != nil {
		return report.SuiteRecord{}, err
	}
	failures, err := parseCount("failures", s.Failures)
	if err != nil {
		return report.SuiteRecord{}, err
	}
	errorCount, err := parseCount("errors", s.Errors)
	if err != nil {
		return report.SuiteRecord{}, err
	}
	elapsed, err := parseSeconds("time", s.Time)
	if err != nil {
		return report.SuiteRecord{}, err
	}

	record := report.SuiteRecord{
		Name:      s.Name,
		Tests:     tests,
		Skipped:   skipped,
		Failures:  failures,
		Errors:    errorCount,
		Timestamp: s.Timestamp,
		Time:      elapsed,
		// An explicit tests="0" stands for an empty case list, otherwise the cases are missing.
		HasCases: len(s.TestCases) > 0 || strings.TrimSpace(s.Tests) == "0",
	}

	for _, testCase := range s.TestCases {
		c, err := testCase.testCase()
		if err != nil {
			return report.SuiteRecord{}, err
		}
		record.Cases = append(record.Cases, c)
	}

	return record, nil
}

func (c xmlTestCase) testCase() (report.TestCase, error) {
	elapsed, err := parseSeconds("testcase time", c.Time)
	if err != nil {
		return report.TestCase{}, err
	}

	testCase := report.TestCase{
		Name:      c.Name,
		ClassName: c.ClassName,
		Time:      elapsed,
		Outcome:   report.Passed{},
	}

	failure := c.Failure
	if failure == nil {
		failure = c.Error
	}

	switch {
	case failure != nil:
		testCase.Outcome = report.Failed{
			Message:    failure.Message,
			Type:       failure.Type,
			StackTrace: strings.TrimSpace(failure.Text),
		}
	case c.Skipped != nil:
		attributes := map[string]string{}
		for _, attr := range c.Skipped.Attrs {
			attributes[attr.Name.Local] = attr.Value
		}
		testCase.Outcome = report.Skipped{Attributes: attributes}
	}

	return testCase, nil
}

func parseCount(name, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	count, err := strconv.Atoi(value)
	if err != nil || count < 0 {
		return 0, &report.ParseError{Reason: fmt.Sprintf("invalid %s attribute: %q", name, value), Err: err}
	}
	return count, nil
}

func parseSeconds(name, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	seconds, err := strconv.ParseFloat(normalizeSeconds(value), 64)
	if err != nil || seconds < 0 {
		return 0, &report.ParseError{Reason: fmt.Sprintf("invalid %s attribute: %q", name, value), Err: err}
	}
	return seconds, nil
}

// normalizeSeconds rewrites locale formatted durations to the plain decimal form.
// A lone comma is the decimal separator ("1,5"), any other comma groups thousands ("1,234.5", "1,234,567").
func normalizeSeconds(value string) string {
	if strings.Count(value, ",") == 1 && !strings.Contains(value, ".") {
		return strings.Replace(value, ",", ".", 1)
	}
	return strings.ReplaceAll(value, ",", "")
}
