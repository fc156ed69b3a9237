package render

import (
	"html"
	"io"
	"strings"

	"github.com/bitrise-steplib/steps-android-test-report/report"
)

// MarkdownRenderer writes GitHub flavored markdown with inline HTML anchors.
type MarkdownRenderer struct{}

// Extension ...
func (MarkdownRenderer) Extension() string {
	return "md"
}

// Write ...
func (r MarkdownRenderer) Write(w io.Writer, doc report.Report) error {
	ew := &errWriter{w: w}

	for i, block := range doc.Blocks {
		if i > 0 {
			ew.printf("\n")
		}
		switch b := block.(type) {
		case report.Heading:
			r.heading(ew, b)
		case report.Table:
			r.table(ew, b)
		case report.RawText:
			ew.printf("%s\n", b.Text)
		}
	}

	return ew.err
}

func (MarkdownRenderer) heading(ew *errWriter, h report.Heading) {
	text := markdownText(h.Text)
	if h.BackLink != "" {
		text = "[" + text + "](" + h.BackLink + ")"
	}
	if h.AnchorID != "" {
		text = "<a id=\"" + html.EscapeString(h.AnchorID) + "\"></a>" + text
	}
	ew.printf("%s %s\n", strings.Repeat("#", headingLevel(h.Level)), text)
}

func (MarkdownRenderer) table(ew *errWriter, t report.Table) {
	for i, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, markdownCell(cell))
		}
		ew.printf("| %s |\n", strings.Join(cells, " | "))

		if i == 0 {
			separators := make([]string, len(row))
			for j := range separators {
				separators[j] = "---"
			}
			ew.printf("| %s |\n", strings.Join(separators, " | "))
		}
	}
}

func markdownCell(cell report.Cell) string {
	text := markdownText(cell.Text)
	if cell.Link != "" {
		text = "[" + text + "](" + cell.Link + ")"
	}
	if cell.AnchorID != "" {
		text = "<a id=\"" + html.EscapeString(cell.AnchorID) + "\"></a>" + text
	}
	return text
}

var markdownReplacer = strings.NewReplacer(
	"|", "\\|",
	"\r\n", "<br>",
	"\n", "<br>",
	"<", "&lt;",
	">", "&gt;",
	"[", "\\[",
	"]", "\\]",
)

func markdownText(s string) string {
	return markdownReplacer.Replace(s)
}
