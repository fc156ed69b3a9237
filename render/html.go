package render

import (
	"html"
	"io"
	"strings"

	"github.com/bitrise-steplib/steps-android-test-report/report"
)

// HTMLRenderer writes a standalone HTML document.
type HTMLRenderer struct{}

// Extension ...
func (HTMLRenderer) Extension() string {
	return "html"
}

// Write ...
func (r HTMLRenderer) Write(w io.Writer, doc report.Report) error {
	ew := &errWriter{w: w}

	ew.printf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(doc.Title))
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case report.Heading:
			r.heading(ew, b)
		case report.Table:
			r.table(ew, b)
		case report.RawText:
			ew.printf("<p>%s</p>\n", html.EscapeString(b.Text))
		}
	}
	ew.printf("</body>\n</html>\n")

	return ew.err
}

func (HTMLRenderer) heading(ew *errWriter, h report.Heading) {
	level := headingLevel(h.Level)
	text := html.EscapeString(h.Text)
	if h.BackLink != "" {
		text = "<a href=\"" + html.EscapeString(h.BackLink) + "\">" + text + "</a>"
	}
	if h.AnchorID != "" {
		ew.printf("<h%d id=\"%s\">%s</h%d>\n", level, html.EscapeString(h.AnchorID), text, level)
		return
	}
	ew.printf("<h%d>%s</h%d>\n", level, text, level)
}

func (HTMLRenderer) table(ew *errWriter, t report.Table) {
	ew.printf("<table>\n")
	for i, row := range t.Rows {
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		ew.printf("<tr>")
		for _, cell := range row {
			ew.printf("<%s>%s</%s>", tag, htmlCell(cell), tag)
		}
		ew.printf("</tr>\n")
	}
	ew.printf("</table>\n")
}

func htmlCell(cell report.Cell) string {
	text := html.EscapeString(cell.Text)
	if cell.Link == "" && cell.AnchorID == "" {
		// keeps stack trace line breaks
		if strings.Contains(cell.Text, "\n") {
			return "<pre>" + text + "</pre>"
		}
		return text
	}

	a := "<a"
	if cell.AnchorID != "" {
		a += " id=\"" + html.EscapeString(cell.AnchorID) + "\""
	}
	if cell.Link != "" {
		a += " href=\"" + html.EscapeString(cell.Link) + "\""
	}
	return a + ">" + text + "</a>"
}
