package screens

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/logger"
	"github.com/kerbaras/guya/pkg/preferences"
	"github.com/kerbaras/guya/pkg/services"
)

type mockCatalog struct {
	booksFunc func(ctx context.Context, useCache bool) ([]*data.Book, error)
}

func (m *mockCatalog) Books(ctx context.Context, useCache bool) ([]*data.Book, error) {
	if m.booksFunc != nil {
		return m.booksFunc(ctx, useCache)
	}
	return nil, nil
}

type mockProgress struct {
	saved []data.Progress

	listProgressFunc func() ([]*data.Progress, error)
	getProgressFunc  func(bookID string) (*data.Progress, error)
}

func (m *mockProgress) ListProgress() ([]*data.Progress, error) {
	if m.listProgressFunc != nil {
		return m.listProgressFunc()
	}
	return nil, nil
}

func (m *mockProgress) SaveProgress(p *data.Progress) error {
	m.saved = append(m.saved, *p)
	return nil
}

func (m *mockProgress) GetProgress(bookID string) (*data.Progress, error) {
	if m.getProgressFunc != nil {
		return m.getProgressFunc(bookID)
	}
	return nil, nil
}

type exportCall struct {
	book    string
	chapter float64
	group   string
}

type mockExporter struct {
	calls    []exportCall
	progress chan services.ExportProgress

	exportChapterFunc func(ctx context.Context, book *data.Book, chapter float64, group string) (string, error)
}

func (m *mockExporter) ExportChapter(ctx context.Context, book *data.Book, chapter float64, group string) (string, error) {
	m.calls = append(m.calls, exportCall{book: book.ID, chapter: chapter, group: group})
	if m.exportChapterFunc != nil {
		return m.exportChapterFunc(ctx, book, chapter, group)
	}
	return "/exports/out.epub", nil
}

func (m *mockExporter) Progress() <-chan services.ExportProgress {
	return m.progress
}

func newTestPrefs(t *testing.T, group string) *preferences.Store {
	t.Helper()
	prefs := preferences.NewStore(preferences.NewMemoryBackend(), "", logger.Nop())
	require.NoError(t, prefs.SetPreferredGroup(group))
	return prefs
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
