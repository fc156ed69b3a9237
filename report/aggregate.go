package report

import (
	"math"
	"strconv"
)

// DefaultTitle is the top-level heading of every report.
const DefaultTitle = "Android Test Report"

// NoReportsNotice replaces the report body when no suites were found.
const NoReportsNotice = "No test reports found."

const totalsLabel = "Total"

// Totals are the summed counts of all aggregated suites.
type Totals struct {
	Tests    int
	Skipped  int
	Failures int
	Errors   int
	Time     float64
}

// HasFailures ...
func (t Totals) HasFailures() bool {
	return t.Failures > 0 || t.Errors > 0
}

func (t *Totals) add(row SummaryRow) {
	t.Tests += row.Tests
	t.Skipped += row.Skipped
	t.Failures += row.Failures
	t.Errors += row.Errors
	t.Time += row.elapsed
}

func (t Totals) cells() []Cell {
	return []Cell{
		TextCell(totalsLabel),
		TextCell(strconv.Itoa(t.Tests)),
		TextCell(strconv.Itoa(t.Skipped)),
		TextCell(strconv.Itoa(t.Failures)),
		TextCell(strconv.Itoa(t.Errors)),
		TextCell(""),
		// rounded to milliseconds to hide float summation noise
		TextCell(formatSeconds(math.Round(t.Time*1000) / 1000)),
	}
}

// Aggregator folds suites into a single Report.
type Aggregator struct {
	Transformer  Transformer
	HeaderSuffix string
}

// NewAggregator ...
func NewAggregator(namer Namer, showSkipped bool, headerSuffix string) Aggregator {
	return Aggregator{
		Transformer: Transformer{
			Namer:       namer,
			ShowSkipped: showSkipped,
		},
		HeaderSuffix: headerSuffix,
	}
}

// Aggregate transforms suites in the given order and assembles the Report.
// With no suites it returns the heading-and-notice report together with ErrNoReportsFound.
// A suite that fails to transform aborts the aggregation, the returned Report then only holds the heading.
func (a Aggregator) Aggregate(suites []SuiteRecord) (Report, error) {
	builder := a.NewBuilder()
	if len(suites) == 0 {
		doc := builder.Report()
		doc.Blocks = append(doc.Blocks, RawText{Text: NoReportsNotice})
		return doc, ErrNoReportsFound
	}

	for _, suite := range suites {
		if err := builder.Add(suite); err != nil {
			return a.NewBuilder().Report(), err
		}
	}

	return builder.Report(), nil
}

// Builder assembles a Report one suite at a time.
type Builder struct {
	aggregator Aggregator
	summary    [][]Cell
	totals     Totals
	count      int
	failures   *tableIndex
	skipped    *tableIndex
}

// NewBuilder ...
func (a Aggregator) NewBuilder() *Builder {
	return &Builder{
		aggregator: a,
		summary:    [][]Cell{headerCells(summaryHeader)},
		failures:   newTableIndex(),
		skipped:    newTableIndex(),
	}
}

// Add transforms suite and files its summary row and detail tables.
// A suite that fails to transform leaves the Builder unchanged.
func (b *Builder) Add(suite SuiteRecord) error {
	transformed, err := b.aggregator.Transformer.Transform(suite)
	if err != nil {
		return err
	}

	b.summary = append(b.summary, transformed.Row.Cells())
	b.totals.add(transformed.Row)
	b.count++

	if transformed.Failures != nil {
		b.failures.put(*transformed.Failures)
	}
	if transformed.Skipped != nil {
		b.skipped.put(*transformed.Skipped)
	}
	return nil
}

// Report returns the document of the suites added so far.
// Without suites it only holds the heading.
func (b *Builder) Report() Report {
	a := b.aggregator
	doc := Report{Title: DefaultTitle + a.HeaderSuffix}
	doc.Blocks = append(doc.Blocks, Heading{Level: 1, Text: doc.Title})
	if b.count == 0 {
		return doc
	}

	summary := make([][]Cell, 0, len(b.summary)+1)
	summary = append(summary, b.summary...)
	summary = append(summary, b.totals.cells())

	doc.Totals = b.totals
	doc.SuiteCount = b.count
	doc.Blocks = append(doc.Blocks, Heading{Level: 2, Text: "Summary"}, Table{Rows: summary})
	doc.Blocks = append(doc.Blocks, a.detailSections("Failures", b.failures)...)
	doc.Blocks = append(doc.Blocks, a.detailSections("Skipped", b.skipped)...)

	return doc
}

func (a Aggregator) detailSections(title string, index *tableIndex) []Block {
	if index.len() == 0 {
		return nil
	}

	namer := a.Transformer.Namer
	blocks := []Block{Heading{Level: 2, Text: title}}
	for _, table := range index.tables() {
		blocks = append(blocks,
			Heading{
				Level:    3,
				Text:     table.Where,
				AnchorID: namer.AnchorID(table.Where, table.Postfix, false),
				BackLink: namer.BackLink(table.Where, table.Postfix),
			},
			table.Table,
		)
	}
	return blocks
}

// tableIndex keeps detail tables by where key in first insertion order.
// A later table with the same key replaces the earlier one.
type tableIndex struct {
	keys  []string
	byKey map[string]DetailTable
}

func newTableIndex() *tableIndex {
	return &tableIndex{byKey: map[string]DetailTable{}}
}

func (i *tableIndex) put(table DetailTable) {
	if _, ok := i.byKey[table.Where]; !ok {
		i.keys = append(i.keys, table.Where)
	}
	i.byKey[table.Where] = table
}

func (i *tableIndex) len() int {
	return len(i.keys)
}

func (i *tableIndex) tables() []DetailTable {
	tables := make([]DetailTable, 0, len(i.keys))
	for _, key := range i.keys {
		tables = append(tables, i.byKey[key])
	}
	return tables
}
