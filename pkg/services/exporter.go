package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/integrations"
	"github.com/kerbaras/guya/pkg/preferences"
	"github.com/kerbaras/guya/pkg/sources"
)

const (
	StatusDownloading = "downloading"
	StatusProcessing  = "processing"
	StatusComplete    = "complete"
	StatusError       = "error"
)

// ExportProgress represents the progress of a chapter export
type ExportProgress struct {
	BookID      string
	Chapter     string
	Group       string
	CurrentPage int
	TotalPages  int
	Status      string
	Path        string
	Error       error
}

type ExporterOptions struct {
	Concurrency int
	RPS         float64
	Viewport    integrations.Viewport
	Grayscale   bool
}

// Exporter downloads a chapter's pages and writes them to a file, scaled
// according to the scaling preference.
type Exporter struct {
	images    sources.ImageSource
	links     sources.Links
	prefs     *preferences.Store
	newWriter func() integrations.ChapterWriter
	opts      ExporterOptions
	limiter   *rate.Limiter
	log       *zap.SugaredLogger

	progressChan chan ExportProgress
}

func NewExporter(images sources.ImageSource, links sources.Links, prefs *preferences.Store,
	newWriter func() integrations.ChapterWriter, opts ExporterOptions, log *zap.SugaredLogger) *Exporter {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	if opts.Viewport.Width == 0 {
		opts.Viewport = integrations.Viewports[integrations.DefaultViewport]
	}
	return &Exporter{
		images:       images,
		links:        links,
		prefs:        prefs,
		newWriter:    newWriter,
		opts:         opts,
		limiter:      rate.NewLimiter(limit, 1),
		log:          log,
		progressChan: make(chan ExportProgress, 100),
	}
}

// Progress returns the channel for receiving export progress updates.
func (e *Exporter) Progress() <-chan ExportProgress {
	return e.progressChan
}

// ExportChapter exports group's release of the chapter numbered chapter.
// An empty group selects the release by preferred group.
func (e *Exporter) ExportChapter(ctx context.Context, book *data.Book, chapter float64, group string) (string, error) {
	cid, ok := book.ChapterNumbered(chapter)
	if !ok {
		return "", fmt.Errorf("book %s has no chapter %s", book.ID, data.FormatNumber(chapter))
	}

	var rid data.ReleaseID
	if group != "" {
		rid, ok = book.ReleaseByGroup(cid, group)
	} else {
		rid, ok = book.PreferredRelease(cid, e.prefs.PreferredGroup())
	}
	if !ok {
		return "", fmt.Errorf("chapter %s has no release by group %q", data.FormatNumber(chapter), group)
	}

	release := book.Release(rid)
	c := book.Chapter(cid)
	progress := ExportProgress{
		BookID:     book.ID,
		Chapter:    data.FormatNumber(c.Number),
		Group:      release.Group,
		TotalPages: len(release.Pages),
		Status:     StatusDownloading,
	}
	e.sendProgress(progress)

	path, err := e.export(ctx, book, c, release, progress)
	if err != nil {
		progress.Status = StatusError
		progress.Error = err
		e.sendProgress(progress)
		return "", err
	}

	progress.Status = StatusComplete
	progress.CurrentPage = progress.TotalPages
	progress.Path = path
	e.sendProgress(progress)
	return path, nil
}

func (e *Exporter) export(ctx context.Context, book *data.Book, c *data.Chapter, release *data.Release, progress ExportProgress) (string, error) {
	if len(release.Pages) == 0 {
		return "", fmt.Errorf("no pages found for chapter")
	}

	scaler := integrations.NewScaler(e.prefs.Scaling(), e.opts.Viewport)
	scaler.Grayscale = e.opts.Grayscale

	pages := make([]integrations.ImageData, len(release.Pages))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.opts.Concurrency)
	for i, pid := range release.Pages {
		eg.Go(func() error {
			url, _ := e.links.PageImage(book, pid)
			page, err := e.fetch(egCtx, url, i)
			if err != nil {
				return fmt.Errorf("failed to download page %d: %w", book.Page(pid).Number, err)
			}
			scaled, err := scaler.Scale(page)
			if err != nil {
				return fmt.Errorf("failed to scale page %d: %w", book.Page(pid).Number, err)
			}
			pages[i] = scaled

			p := progress
			p.CurrentPage = i + 1
			e.sendProgress(p)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	progress.Status = StatusProcessing
	e.sendProgress(progress)

	w := e.newWriter()
	group, _ := book.Group(release.Group)
	meta := integrations.ChapterMeta{
		BookID:        book.ID,
		BookTitle:     book.Title,
		Author:        book.Author,
		Description:   book.Description,
		Volume:        data.FormatNumber(book.Volume(c.Volume).Number),
		ChapterNumber: data.FormatNumber(c.Number),
		ChapterTitle:  c.Title,
		Group:         group.Name,
	}
	if err := w.Init(meta); err != nil {
		return "", fmt.Errorf("failed to initialize writer: %w", err)
	}

	if book.Cover != "" {
		cover, err := e.fetch(ctx, e.links.Cover(book), -1)
		if err == nil {
			err = w.SetCover(integrations.CoverData{Content: cover.Content, ContentType: cover.ContentType})
		}
		if err != nil {
			// non-fatal, the chapter is still readable
			e.log.Warnw("failed to add cover", "book", book.ID, "error", err)
		}
	}

	for _, page := range pages {
		if err := w.Next(page); err != nil {
			return "", fmt.Errorf("failed to add page %d: %w", page.Index+1, err)
		}
	}
	return w.Done()
}

func (e *Exporter) fetch(ctx context.Context, url string, index int) (integrations.ImageData, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return integrations.ImageData{}, err
	}
	img, err := e.images.Image(ctx, url)
	if err != nil {
		if errors.Is(err, sources.ErrRequestInFlight) {
			e.log.Debugw("image already downloading", "url", url)
		}
		return integrations.ImageData{}, err
	}
	return integrations.ImageData{
		Content:     img.Data,
		ContentType: contentType(img),
		Index:       index,
	}, nil
}

func contentType(img *sources.Image) string {
	if img.Format != "" {
		return "image/" + img.Format
	}
	return http.DetectContentType(img.Data)
}

// sendProgress sends a progress update (non-blocking)
func (e *Exporter) sendProgress(progress ExportProgress) {
	select {
	case e.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}
