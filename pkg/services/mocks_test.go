package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/integrations"
	"github.com/kerbaras/guya/pkg/logger"
	"github.com/kerbaras/guya/pkg/preferences"
	"github.com/kerbaras/guya/pkg/sources"
)

// Mock implementations for testing

type mockBookSource struct {
	booksFunc func(ctx context.Context) ([]*data.Book, error)
}

func (m *mockBookSource) Books(ctx context.Context) ([]*data.Book, error) {
	if m.booksFunc != nil {
		return m.booksFunc(ctx)
	}
	return nil, nil
}

type mockImageSource struct {
	imageFunc func(ctx context.Context, url string) (*sources.Image, error)

	mu   sync.Mutex
	urls []string
}

func (m *mockImageSource) Image(ctx context.Context, url string) (*sources.Image, error) {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()
	if m.imageFunc != nil {
		return m.imageFunc(ctx, url)
	}
	return nil, nil
}

type mockProgressStore struct {
	saveProgressFunc func(progress *data.Progress) error
	getProgressFunc  func(bookID string) (*data.Progress, error)

	saved []data.Progress
}

func (m *mockProgressStore) SaveProgress(progress *data.Progress) error {
	if m.saveProgressFunc != nil {
		if err := m.saveProgressFunc(progress); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, *progress)
	return nil
}

func (m *mockProgressStore) GetProgress(bookID string) (*data.Progress, error) {
	if m.getProgressFunc != nil {
		return m.getProgressFunc(bookID)
	}
	return nil, nil
}

type mockWriter struct {
	initFunc func(meta integrations.ChapterMeta) error
	nextFunc func(page integrations.ImageData) error

	meta  integrations.ChapterMeta
	cover *integrations.CoverData
	pages []integrations.ImageData
	done  bool
}

func (m *mockWriter) Init(meta integrations.ChapterMeta) error {
	m.meta = meta
	if m.initFunc != nil {
		return m.initFunc(meta)
	}
	return nil
}

func (m *mockWriter) SetCover(cover integrations.CoverData) error {
	m.cover = &cover
	return nil
}

func (m *mockWriter) Next(page integrations.ImageData) error {
	if m.nextFunc != nil {
		if err := m.nextFunc(page); err != nil {
			return err
		}
	}
	m.pages = append(m.pages, page)
	return nil
}

func (m *mockWriter) Done() (string, error) {
	m.done = true
	return "/exports/" + m.meta.BookID + "-" + m.meta.ChapterNumber + ".epub", nil
}

func newTestPrefs(t *testing.T, group string) *preferences.Store {
	t.Helper()
	prefs := preferences.NewStore(preferences.NewMemoryBackend(), "", logger.Nop())
	require.NoError(t, prefs.SetPreferredGroup(group))
	return prefs
}

func pngImage(t *testing.T, url string, w, h int) *sources.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return &sources.Image{URL: url, Data: buf.Bytes(), Format: "png", Width: w, Height: h}
}
