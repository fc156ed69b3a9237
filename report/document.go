package report

// Block is one element of a Report: Heading, Table or RawText.
type Block interface {
	block()
}

// Heading ...
type Heading struct {
	Level int
	Text  string
	// AnchorID is the id the heading is reachable by.
	AnchorID string
	// BackLink points back to where the heading was linked from.
	BackLink string
}

// Table is a list of rows; the first row is the header.
type Table struct {
	Rows [][]Cell
}

// RawText ...
type RawText struct {
	Text string
}

func (Heading) block() {}
func (Table) block()   {}
func (RawText) block() {}

// Cell is a table cell. Link and AnchorID are empty for plain text cells.
type Cell struct {
	Text     string
	Link     string
	AnchorID string
}

// TextCell ...
func TextCell(text string) Cell {
	return Cell{Text: text}
}

// Report is the assembled document handed to a Sink.
type Report struct {
	Title  string
	Blocks []Block

	Totals     Totals
	SuiteCount int
}

// Sink persists or displays a Report.
type Sink interface {
	Render(doc Report) error
}
