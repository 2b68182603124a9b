package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/guya/pkg/app/styles"
	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/services"
)

type screenType int

const (
	libraryView screenType = iota
	readerView
)

// SwitchScreenMsg asks the root screen to show another view. Data carries
// the *data.Book to open for the reader view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type RootScreen struct {
	ctx        context.Context
	controller *services.Controller

	currentView screenType
	library     *LibraryScreen
	reader      *ReaderScreen

	width  int
	height int
}

func NewRootScreen(ctx context.Context, controller *services.Controller) *RootScreen {
	return &RootScreen{
		ctx:         ctx,
		controller:  controller,
		currentView: libraryView,
		library:     NewLibraryScreen(ctx, controller.Catalog, controller.Repo),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.library.Init(), r.listenForProgress)
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		// both screens keep their layout current
		r.library.Update(msg)
		if r.reader != nil {
			r.reader.Update(msg)
		}
		return r, nil

	case tea.KeyMsg:
		if r.currentView == libraryView && r.library.Filtering() {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			r.closeReader()
			return r, tea.Quit
		case "tab":
			if r.reader == nil {
				break
			}
			if r.currentView == libraryView {
				r.currentView = readerView
			} else {
				r.currentView = libraryView
			}
			return r, nil
		}

	case services.ExportProgress:
		if r.reader != nil {
			r.reader.Update(msg)
		}
		return r, r.listenForProgress

	case exportDoneMsg:
		if r.reader != nil {
			r.reader.Update(msg)
		}
		return r, nil

	case SwitchScreenMsg:
		switch msg.Screen {
		case "library":
			r.currentView = libraryView
		case "reader":
			if book, ok := msg.Data.(*data.Book); ok {
				r.openReader(book)
				cmd = r.reader.Init()
			}
		}
		return r, cmd
	}

	switch r.currentView {
	case libraryView:
		newModel, newCmd := r.library.Update(msg)
		r.library = newModel.(*LibraryScreen)
		return r, newCmd
	case readerView:
		if r.reader != nil {
			newModel, newCmd := r.reader.Update(msg)
			r.reader = newModel.(*ReaderScreen)
			return r, newCmd
		}
	}

	return r, cmd
}

func (r *RootScreen) openReader(book *data.Book) {
	if r.reader != nil && r.reader.session.Book().ID == book.ID {
		r.currentView = readerView
		return
	}
	r.closeReader()
	c := r.controller
	r.reader = NewReaderScreen(r.ctx, c.NewSession(book), c.Prefs, c.Links, c.Exporter)
	r.reader.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
	r.currentView = readerView
}

func (r *RootScreen) closeReader() {
	if r.reader != nil {
		r.reader.Close()
	}
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case libraryView:
		content = r.library.View()
	case readerView:
		content = r.reader.View()
	}
	return fmt.Sprintf("%s\n\n%s", r.renderTabs(), content)
}

func (r *RootScreen) renderTabs() string {
	tabs := []string{styles.Tab("Library", r.currentView == libraryView)}
	if r.reader != nil {
		tabs = append(tabs, styles.Tab(r.reader.session.Book().Title, r.currentView == readerView))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (r *RootScreen) listenForProgress() tea.Msg {
	return <-r.controller.Exporter.Progress()
}
