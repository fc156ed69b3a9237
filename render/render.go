// Package render writes a report.Report to an output surface.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-steplib/steps-android-test-report/report"
)

// Formats ...
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Renderer writes a report document in a specific markup.
type Renderer interface {
	Write(w io.Writer, doc report.Report) error
	Extension() string
}

// NewRenderer ...
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case FormatHTML, "":
		return HTMLRenderer{}, nil
	case FormatMarkdown:
		return MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// SinkWriteError ...
type SinkWriteError struct {
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("failed to write report to %s: %s", e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// FileSink renders the report into a single file.
type FileSink struct {
	Path        string
	renderer    Renderer
	fileManager fileutil.FileManager
}

// NewFileSink ...
func NewFileSink(dir, baseName string, renderer Renderer, fileManager fileutil.FileManager) *FileSink {
	return &FileSink{
		Path:        filepath.Join(dir, baseName+"."+renderer.Extension()),
		renderer:    renderer,
		fileManager: fileManager,
	}
}

// Render ...
func (s *FileSink) Render(doc report.Report) error {
	var b strings.Builder
	if err := s.renderer.Write(&b, doc); err != nil {
		return &SinkWriteError{Path: s.Path, Err: err}
	}
	if err := s.fileManager.Write(s.Path, b.String(), 0644); err != nil {
		return &SinkWriteError{Path: s.Path, Err: err}
	}
	return nil
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func headingLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
