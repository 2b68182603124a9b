package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
)

// EPubBuilder writes a single chapter to an EPUB. Pages are staged in a
// temporary directory while they arrive and packed on Done.
type EPubBuilder struct {
	outputDir string

	meta    ChapterMeta
	workDir string
	cover   string
	pages   []string
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	return &EPubBuilder{outputDir: outputDir}
}

func (b *EPubBuilder) Init(meta ChapterMeta) error {
	if meta.BookTitle == "" || meta.ChapterNumber == "" {
		return fmt.Errorf("book title and chapter number are required")
	}
	workDir, err := os.MkdirTemp("", "guya-epub-*")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	b.cleanup()
	b.meta = meta
	b.workDir = workDir
	b.cover = ""
	b.pages = nil
	return nil
}

func (b *EPubBuilder) stage(name string, content []byte) (string, error) {
	if b.workDir == "" {
		return "", fmt.Errorf("builder not initialized")
	}
	path := filepath.Join(b.workDir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", name, err)
	}
	return path, nil
}

func (b *EPubBuilder) SetCover(cover CoverData) error {
	path, err := b.stage("cover"+extensionFor(cover.ContentType), cover.Content)
	if err != nil {
		return err
	}
	b.cover = path
	return nil
}

// Next stages a page. Pages must arrive in index order.
func (b *EPubBuilder) Next(page ImageData) error {
	if page.Index != len(b.pages) {
		return fmt.Errorf("page %d arrived out of order, expected %d", page.Index, len(b.pages))
	}
	path, err := b.stage(fmt.Sprintf("page_%04d%s", page.Index+1, extensionFor(page.ContentType)), page.Content)
	if err != nil {
		return err
	}
	b.pages = append(b.pages, path)
	return nil
}

// Done writes the EPUB and returns its path.
func (b *EPubBuilder) Done() (string, error) {
	defer b.cleanup()

	if len(b.pages) == 0 {
		return "", fmt.Errorf("no pages to write")
	}
	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	title := b.chapterTitle()
	e, err := epub.NewEpub(fmt.Sprintf("%s - %s", b.meta.BookTitle, title))
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	if b.meta.Author != "" {
		e.SetAuthor(b.meta.Author)
	}
	if b.meta.Description != "" {
		e.SetDescription(b.meta.Description)
	}
	e.SetLang("en")

	if b.cover != "" {
		internal, err := e.AddImage(b.cover, filepath.Base(b.cover))
		if err != nil {
			return "", fmt.Errorf("failed to add cover: %w", err)
		}
		e.SetCover(internal, "")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "<h1>%s</h1>\n", html.EscapeString(title))
	for i, path := range b.pages {
		internal, err := e.AddImage(path, filepath.Base(path))
		if err != nil {
			return "", fmt.Errorf("failed to add page %d: %w", i+1, err)
		}
		fmt.Fprintf(&body, `<div class="page"><img src="%s" alt="Page %d" style="width:100%%;height:auto;"/></div>`+"\n", internal, i+1)
	}
	if _, err := e.AddSection(body.String(), title, "", ""); err != nil {
		return "", fmt.Errorf("failed to add section: %w", err)
	}

	out := filepath.Join(b.outputDir, outputName(b.meta)+".epub")
	if err := e.Write(out); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return out, nil
}

func (b *EPubBuilder) chapterTitle() string {
	title := fmt.Sprintf("Chapter %s", b.meta.ChapterNumber)
	if b.meta.Volume != "" && b.meta.Volume != "0" {
		title = fmt.Sprintf("Vol. %s, %s", b.meta.Volume, title)
	}
	if b.meta.ChapterTitle != "" {
		title = fmt.Sprintf("%s: %s", title, b.meta.ChapterTitle)
	}
	return title
}

func (b *EPubBuilder) cleanup() {
	if b.workDir != "" {
		os.RemoveAll(b.workDir)
		b.workDir = ""
	}
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".jpg"
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
