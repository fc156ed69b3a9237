package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	summaryHeader = []string{"Suite", "Tests", "Skipped", "Failures", "Errors", "Timestamp", "Time"}
	failureHeader = []string{"Test", "Message", "Type", "Time", "Stack trace"}
	skippedHeader = []string{"Test", "Class", "Time", "Details"}
)

// Anchor is a link target pair: Link is where a cell points to,
// ID is what the opposite end links back to.
type Anchor struct {
	ID   string
	Link string
}

// SummaryRow is one line of the summary table.
type SummaryRow struct {
	Suite     string
	Tests     int
	Skipped   int
	Failures  int
	Errors    int
	Timestamp string
	Time      string

	elapsed float64

	FailureAnchor *Anchor
	SkipAnchor    *Anchor
}

// Cells renders the row with the summary table's column shape.
func (r SummaryRow) Cells() []Cell {
	cells := []Cell{TextCell(r.Suite), TextCell(strconv.Itoa(r.Tests))}

	cells = append(cells, countCell(r.Skipped, r.SkipAnchor, true))
	// Failures and errors share the same detail table, only one of them may carry the id.
	cells = append(cells, countCell(r.Failures, r.FailureAnchor, true))
	cells = append(cells, countCell(r.Errors, r.FailureAnchor, r.Failures == 0))

	return append(cells, TextCell(r.Timestamp), TextCell(r.Time))
}

func countCell(count int, anchor *Anchor, withID bool) Cell {
	cell := TextCell(strconv.Itoa(count))
	if count > 0 && anchor != nil {
		cell.Link = anchor.Link
		if withID {
			cell.AnchorID = anchor.ID
		}
	}
	return cell
}

// DetailTable lists the failed or skipped cases filed under Where.
type DetailTable struct {
	Where   string
	Postfix string
	Table   Table
}

// TransformedSuite ...
type TransformedSuite struct {
	Row      SummaryRow
	Failures *DetailTable
	Skipped  *DetailTable
}

// Transformer converts a SuiteRecord into a summary row and its detail tables.
type Transformer struct {
	Namer       Namer
	ShowSkipped bool
}

// Transform ...
func (t Transformer) Transform(suite SuiteRecord) (TransformedSuite, error) {
	if !suite.HasCases {
		return TransformedSuite{}, &ParseError{Path: suite.Path, Reason: "test suite has no test cases element"}
	}

	row := SummaryRow{
		Suite:     textOrDefault(suite.Name),
		Tests:     nonNegative(suite.Tests),
		Skipped:   nonNegative(suite.Skipped),
		Failures:  nonNegative(suite.Failures),
		Errors:    nonNegative(suite.Errors),
		Timestamp: textOrDefault(suite.Timestamp),
		Time:      formatSeconds(suite.Time),
		elapsed:   suite.Time,
	}

	var failureRows, skippedRows [][]Cell
	for _, testCase := range suite.Cases {
		switch outcome := testCase.Outcome.(type) {
		case Failed:
			if failureRows == nil {
				failureRows = [][]Cell{headerCells(failureHeader)}
			}
			failureRows = append(failureRows, []Cell{
				TextCell(textOrDefault(testCase.Name)),
				TextCell(outcome.Message),
				TextCell(outcome.Type),
				TextCell(formatSeconds(testCase.Time)),
				TextCell(outcome.StackTrace),
			})
		case Skipped:
			if !t.ShowSkipped {
				continue
			}
			if skippedRows == nil {
				skippedRows = [][]Cell{headerCells(skippedHeader)}
			}
			skippedRows = append(skippedRows, []Cell{
				TextCell(textOrDefault(testCase.Name)),
				TextCell(testCase.ClassName),
				TextCell(formatSeconds(testCase.Time)),
				TextCell(formatAttributes(outcome.Attributes)),
			})
		}
	}

	result := TransformedSuite{}
	if failureRows != nil {
		result.Failures = t.detailTable(failureRows, FailuresPostfix)
		row.FailureAnchor = t.anchor(result.Failures)
	}
	if skippedRows != nil {
		result.Skipped = t.detailTable(skippedRows, SkippedPostfix)
		row.SkipAnchor = t.anchor(result.Skipped)
	}
	result.Row = row

	return result, nil
}

// detailTable files rows under the first data row's first column.
func (t Transformer) detailTable(rows [][]Cell, postfix string) *DetailTable {
	return &DetailTable{
		Where:   rows[1][0].Text,
		Postfix: postfix,
		Table:   Table{Rows: rows},
	}
}

func (t Transformer) anchor(table *DetailTable) *Anchor {
	return &Anchor{
		ID:   t.Namer.AnchorID(table.Where, table.Postfix, true),
		Link: t.Namer.JumpLink(table.Where, table.Postfix),
	}
}

func headerCells(header []string) []Cell {
	cells := make([]Cell, 0, len(header))
	for _, h := range header {
		cells = append(cells, TextCell(h))
	}
	return cells
}

func textOrDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "0"
	}
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

func formatAttributes(attributes map[string]string) string {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, attributes[key]))
	}
	return strings.Join(pairs, ", ")
}
