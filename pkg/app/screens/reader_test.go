package screens

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/data/datatest"
	"github.com/kerbaras/guya/pkg/logger"
	"github.com/kerbaras/guya/pkg/navigation"
	"github.com/kerbaras/guya/pkg/preferences"
	"github.com/kerbaras/guya/pkg/services"
	"github.com/kerbaras/guya/pkg/sources"
)

type readerFixture struct {
	screen   *ReaderScreen
	prefs    *preferences.Store
	progress *mockProgress
	exporter *mockExporter
}

func newReader(t *testing.T, group string) readerFixture {
	t.Helper()
	prefs := newTestPrefs(t, group)
	progress := &mockProgress{}
	exporter := &mockExporter{}
	session := services.NewSession(datatest.Book(t), prefs, progress, logger.Nop())
	screen := NewReaderScreen(context.Background(), session, prefs,
		sources.NewLinks(sources.DefaultMediaURL, "https://guya.moe"), exporter)
	t.Cleanup(screen.Close)

	screen.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	screen.Init()
	return readerFixture{screen: screen, prefs: prefs, progress: progress, exporter: exporter}
}

func (f readerFixture) press(msg tea.KeyMsg) tea.Cmd {
	_, cmd := f.screen.Update(msg)
	return cmd
}

func (f readerFixture) location(t *testing.T) navigation.Location {
	t.Helper()
	loc, ok := f.screen.session.Location()
	require.True(t, ok)
	return loc
}

func TestReader_InitResumes(t *testing.T) {
	f := newReader(t, "1")
	assert.Equal(t, navigation.Location{Chapter: 1, Page: 1, Group: "1"}, f.location(t))

	view := f.screen.View()
	assert.Contains(t, view, "Test Book")
	assert.Contains(t, view, "Volume 1 • Chapter 1")
	assert.Contains(t, view, "Page 1 (1/20)")
	assert.Contains(t, view, "layout ltr • scaling width")
}

func TestReader_ArrowsFollowLayout(t *testing.T) {
	f := newReader(t, "1")

	f.press(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, f.location(t).Page)

	f.press(runes("L"))
	assert.Equal(t, preferences.RightToLeft, f.prefs.Layout())

	f.press(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 3, f.location(t).Page)
	f.press(tea.KeyMsg{Type: tea.KeyRight})
	f.press(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, f.location(t).Page)

	f.press(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, f.location(t).Page)
	assert.Contains(t, f.screen.View(), "No page that way")
}

func TestReader_ChapterAndBookKeys(t *testing.T) {
	f := newReader(t, "1")

	f.press(runes("n"))
	assert.Equal(t, navigation.Location{Chapter: 2, Page: 1, Group: "2"}, f.location(t))

	f.press(runes("v"))
	assert.Equal(t, float64(3), f.location(t).Chapter)

	f.press(runes("v"))
	assert.Equal(t, navigation.Location{Chapter: 3, Page: 1, Group: "1"}, f.location(t), "no wrap past the last volume")
	assert.Contains(t, f.screen.View(), "No volume after this one")

	f.press(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, navigation.Location{Chapter: 4, Page: 6, Group: "2"}, f.location(t))

	f.press(runes("n"))
	assert.Contains(t, f.screen.View(), "Nothing at next chapter")

	f.press(runes("<"))
	assert.Equal(t, navigation.Location{Chapter: 1, Page: 1, Group: "1"}, f.location(t))

	f.press(runes("p"))
	assert.Equal(t, float64(1), f.location(t).Chapter)
}

func TestReader_GroupKeyCyclesPreferredGroup(t *testing.T) {
	f := newReader(t, "1")
	f.press(runes("S"))
	assert.Equal(t, preferences.ScaleHeight, f.prefs.Scaling())

	for range 17 {
		f.press(tea.KeyMsg{Type: tea.KeyRight})
	}
	require.Equal(t, 18, f.location(t).Page)

	f.press(runes("g"))
	assert.Equal(t, "2", f.prefs.PreferredGroup())
	assert.Equal(t, navigation.Location{Chapter: 1, Page: 15, Group: "2"}, f.location(t))

	f.press(runes("g"))
	assert.Equal(t, "1", f.prefs.PreferredGroup())
	assert.Equal(t, navigation.Location{Chapter: 1, Page: 15, Group: "1"}, f.location(t))

	f.press(runes("n"))
	f.press(runes("g"))
	assert.Contains(t, f.screen.View(), "No other group released this chapter")
}

func TestReader_Export(t *testing.T) {
	f := newReader(t, "2")

	cmd := f.press(runes("e"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, []exportCall{{book: datatest.BookID, chapter: 1, group: "2"}}, f.exporter.calls)

	f.screen.Update(msg)
	assert.Contains(t, f.screen.View(), "Exported to /exports/out.epub")

	f.exporter.exportChapterFunc = func(context.Context, *data.Book, float64, string) (string, error) {
		return "", errors.New("upstream status 500")
	}
	f.screen.Update(f.press(runes("e"))())
	assert.Contains(t, f.screen.View(), "Export failed: upstream status 500")

	f.screen.Update(services.ExportProgress{
		BookID: datatest.BookID, Chapter: "1", Group: "2",
		Status: services.StatusDownloading, CurrentPage: 3, TotalPages: 15,
	})
	assert.Contains(t, f.screen.View(), "downloading (3/15 pages)")
}

func TestReader_BackToLibrary(t *testing.T) {
	f := newReader(t, "")

	cmd := f.press(tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, SwitchScreenMsg{Screen: "library"}, cmd())
}

func TestReader_SavesProgress(t *testing.T) {
	f := newReader(t, "2")
	f.press(tea.KeyMsg{Type: tea.KeyRight})

	require.NotEmpty(t, f.progress.saved)
	last := f.progress.saved[len(f.progress.saved)-1]
	assert.Equal(t, 2, last.Page)
	assert.Equal(t, "2", last.Group)
}
