package integrations

import "fmt"

// ImageData is one encoded page, Index counting from 0 in reading order.
type ImageData struct {
	Content     []byte
	ContentType string
	Index       int
}

type CoverData struct {
	Content     []byte
	ContentType string
}

// ChapterMeta describes the chapter being written.
type ChapterMeta struct {
	BookID        string
	BookTitle     string
	Author        string
	Description   string
	Volume        string
	ChapterNumber string
	ChapterTitle  string
	Group         string
}

// ChapterWriter receives one chapter's pages in reading order and produces
// a file. Init must be called first and Done last.
type ChapterWriter interface {
	Init(meta ChapterMeta) error
	SetCover(cover CoverData) error
	Next(page ImageData) error
	Done() (string, error)
}

// Formats maps an export format name to a constructor for its writer.
var Formats = map[string]func(outputDir string) ChapterWriter{
	"epub": func(dir string) ChapterWriter { return NewEPubBuilder(dir) },
	"pdf":  func(dir string) ChapterWriter { return NewPDFBuilder(dir) },
}

// DefaultFormat is used when no format is configured.
const DefaultFormat = "epub"

// WriterFactory returns a constructor for writers of format that place
// their files in outputDir.
func WriterFactory(format, outputDir string) (func() ChapterWriter, error) {
	if format == "" {
		format = DefaultFormat
	}
	newWriter, ok := Formats[format]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	return func() ChapterWriter { return newWriter(outputDir) }, nil
}

// outputName is the file name of an exported chapter without extension.
func outputName(meta ChapterMeta) string {
	name := fmt.Sprintf("%s - Chapter %s", meta.BookTitle, meta.ChapterNumber)
	if meta.Group != "" {
		name += " [" + meta.Group + "]"
	}
	return sanitizeFilename(name)
}
