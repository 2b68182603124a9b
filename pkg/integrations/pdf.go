package integrations

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	_ "golang.org/x/image/webp"
)

// pdfDPI converts page pixels to millimetres.
const pdfDPI = 96.0

// PDFBuilder writes a single chapter to a PDF with one page per image,
// each page sized to its image. Pages are added to the document as they
// arrive.
type PDFBuilder struct {
	outputDir string

	meta  ChapterMeta
	pdf   *fpdf.Fpdf
	pages int
}

func NewPDFBuilder(outputDir string) *PDFBuilder {
	return &PDFBuilder{outputDir: outputDir}
}

func (b *PDFBuilder) Init(meta ChapterMeta) error {
	if meta.BookTitle == "" || meta.ChapterNumber == "" {
		return fmt.Errorf("book title and chapter number are required")
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{UnitStr: "mm"})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("%s - Chapter %s", meta.BookTitle, meta.ChapterNumber), true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Description, true)
	pdf.SetCreator("guya", true)

	b.meta = meta
	b.pdf = pdf
	b.pages = 0
	return nil
}

// SetCover adds the cover as the first page. It must be called before any
// page is added.
func (b *PDFBuilder) SetCover(cover CoverData) error {
	if b.pages > 0 {
		return fmt.Errorf("cover must come before the pages")
	}
	return b.addImage("cover", cover.Content, cover.ContentType)
}

// Next adds a page. Pages must arrive in index order.
func (b *PDFBuilder) Next(page ImageData) error {
	if page.Index != b.pages {
		return fmt.Errorf("page %d arrived out of order, expected %d", page.Index, b.pages)
	}
	if err := b.addImage(fmt.Sprintf("page%d", page.Index), page.Content, page.ContentType); err != nil {
		return err
	}
	b.pages++
	return nil
}

func (b *PDFBuilder) addImage(alias string, content []byte, contentType string) error {
	if b.pdf == nil {
		return fmt.Errorf("builder not initialized")
	}

	imageType := pdfImageType(contentType)
	if imageType == "" {
		// fpdf reads only JPEG, PNG and GIF
		img, _, err := image.Decode(bytes.NewReader(content))
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", alias, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("failed to convert %s: %w", alias, err)
		}
		content, imageType = buf.Bytes(), "PNG"
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to read %s size: %w", alias, err)
	}
	width := float64(cfg.Width) * 25.4 / pdfDPI
	height := float64(cfg.Height) * 25.4 / pdfDPI

	opts := fpdf.ImageOptions{ImageType: imageType}
	b.pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	b.pdf.RegisterImageOptionsReader(alias, opts, bytes.NewReader(content))
	b.pdf.ImageOptions(alias, 0, 0, width, height, false, opts, 0, "")
	if err := b.pdf.Error(); err != nil {
		return fmt.Errorf("failed to add %s: %w", alias, err)
	}
	return nil
}

// Done writes the PDF and returns its path.
func (b *PDFBuilder) Done() (string, error) {
	defer func() { b.pdf = nil }()

	if b.pdf == nil {
		return "", fmt.Errorf("builder not initialized")
	}
	if b.pages == 0 {
		return "", fmt.Errorf("no pages to write")
	}
	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	out := filepath.Join(b.outputDir, outputName(b.meta)+".pdf")
	if err := b.pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return out, nil
}

func pdfImageType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	}
	return ""
}
