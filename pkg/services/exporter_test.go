package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/guya/pkg/data/datatest"
	"github.com/kerbaras/guya/pkg/integrations"
	"github.com/kerbaras/guya/pkg/logger"
	"github.com/kerbaras/guya/pkg/sources"
)

func newTestExporter(t *testing.T, group string, images sources.ImageSource, w *mockWriter) *Exporter {
	t.Helper()
	return NewExporter(images, sources.NewLinks("https://media.test", "https://site.test"), newTestPrefs(t, group),
		func() integrations.ChapterWriter { return w },
		ExporterOptions{Concurrency: 3, Viewport: integrations.Viewport{Width: 1000, Height: 1000}},
		logger.Nop())
}

func drain(ch <-chan ExportProgress) []ExportProgress {
	var out []ExportProgress
	for {
		select {
		case p := <-ch:
			out = append(out, p)
		default:
			return out
		}
	}
}

func TestExporter_ExportChapter(t *testing.T) {
	book := datatest.Book(t)
	images := &mockImageSource{
		imageFunc: func(ctx context.Context, url string) (*sources.Image, error) {
			return pngImage(t, url, 10, 10), nil
		},
	}
	w := &mockWriter{}
	e := newTestExporter(t, "1", images, w)

	path, err := e.ExportChapter(context.Background(), book, 3, "2")
	require.NoError(t, err)
	assert.Equal(t, "/exports/test-book-3.epub", path)

	assert.Equal(t, "Psylocke Scans", w.meta.Group)
	assert.Equal(t, "2", w.meta.Volume)
	assert.Equal(t, "Three", w.meta.ChapterTitle)
	require.Len(t, w.pages, 4)
	for i, p := range w.pages {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, "image/png", p.ContentType)
	}
	require.NotNil(t, w.cover)
	assert.True(t, w.done)

	assert.Contains(t, images.urls, "https://media.test/media/manga/test-book/chapters/0003/2/01.jpg")
	assert.Contains(t, images.urls, "https://media.test/media/manga/test-book/cover.jpg")

	events := drain(e.Progress())
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, StatusComplete, last.Status)
	assert.Equal(t, path, last.Path)
	assert.Equal(t, 4, last.TotalPages)
}

func TestExporter_PreferredGroupFallback(t *testing.T) {
	book := datatest.Book(t)
	images := &mockImageSource{
		imageFunc: func(ctx context.Context, url string) (*sources.Image, error) {
			return pngImage(t, url, 4, 4), nil
		},
	}
	w := &mockWriter{}

	_, err := newTestExporter(t, "1", images, w).ExportChapter(context.Background(), book, 2, "")
	require.NoError(t, err)
	assert.Equal(t, "Psylocke Scans", w.meta.Group, "group 1 has no release of chapter 2")
	assert.Len(t, w.pages, 5)
}

func TestExporter_Errors(t *testing.T) {
	book := datatest.Book(t)
	ok := &mockImageSource{
		imageFunc: func(ctx context.Context, url string) (*sources.Image, error) {
			return pngImage(t, url, 4, 4), nil
		},
	}

	t.Run("unknown chapter", func(t *testing.T) {
		_, err := newTestExporter(t, "", ok, &mockWriter{}).ExportChapter(context.Background(), book, 42, "")
		assert.Error(t, err)
	})

	t.Run("group without release", func(t *testing.T) {
		_, err := newTestExporter(t, "", ok, &mockWriter{}).ExportChapter(context.Background(), book, 4, "1")
		assert.Error(t, err)
	})

	t.Run("page fetch fails", func(t *testing.T) {
		failing := &mockImageSource{
			imageFunc: func(ctx context.Context, url string) (*sources.Image, error) {
				if strings.HasSuffix(url, "/03.jpg") {
					return nil, &sources.FetchError{Kind: sources.KindStatus, URL: url, StatusCode: 404}
				}
				return pngImage(t, url, 4, 4), nil
			},
		}
		w := &mockWriter{}
		e := newTestExporter(t, "", failing, w)

		_, err := e.ExportChapter(context.Background(), book, 4, "")
		assert.True(t, sources.IsKind(err, sources.KindStatus))
		assert.False(t, w.done)

		events := drain(e.Progress())
		require.NotEmpty(t, events)
		assert.Equal(t, StatusError, events[len(events)-1].Status)
	})

	t.Run("cover failure is not fatal", func(t *testing.T) {
		coverless := &mockImageSource{
			imageFunc: func(ctx context.Context, url string) (*sources.Image, error) {
				if strings.HasSuffix(url, "cover.jpg") {
					return nil, errors.New("no cover")
				}
				return pngImage(t, url, 4, 4), nil
			},
		}
		w := &mockWriter{}
		_, err := newTestExporter(t, "", coverless, w).ExportChapter(context.Background(), book, 2, "")
		require.NoError(t, err)
		assert.Nil(t, w.cover)
		assert.Len(t, w.pages, 5)
	})

	t.Run("writer fails", func(t *testing.T) {
		w := &mockWriter{initFunc: func(integrations.ChapterMeta) error { return errors.New("read-only") }}
		_, err := newTestExporter(t, "", ok, w).ExportChapter(context.Background(), book, 2, "")
		assert.ErrorContains(t, err, "read-only")
	})
}
