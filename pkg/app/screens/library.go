package screens

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/guya/pkg/app/components"
	"github.com/kerbaras/guya/pkg/app/styles"
	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/sources"
)

// Catalog lists the books available to read.
type Catalog interface {
	Books(ctx context.Context, useCache bool) ([]*data.Book, error)
}

// ProgressLister lists stored reading positions.
type ProgressLister interface {
	ListProgress() ([]*data.Progress, error)
}

type LibraryScreen struct {
	ctx      context.Context
	catalog  Catalog
	progress ProgressLister
	bookList *components.BookList
	filter   textinput.Model
	help     help.Model
	loading  bool
	width    int
	height   int
	err      error
}

func NewLibraryScreen(ctx context.Context, catalog Catalog, progress ProgressLister) *LibraryScreen {
	ti := textinput.New()
	ti.Placeholder = "Filter by title..."
	ti.CharLimit = 100
	ti.Width = 50

	return &LibraryScreen{
		ctx:      ctx,
		catalog:  catalog,
		progress: progress,
		bookList: components.NewBookList(),
		filter:   ti,
		help:     help.New(),
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	s.loading = true
	return s.loadLibrary(true)
}

// Filtering reports whether keys are going to the filter input.
func (s *LibraryScreen) Filtering() bool {
	return s.filter.Focused()
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.bookList.Width = msg.Width - 4
		s.bookList.Height = msg.Height - 10
		s.help.Width = msg.Width

	case tea.KeyMsg:
		if s.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				s.filter.Blur()
				return s, nil
			}
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			s.bookList.SetFilter(s.filter.Value())
			return s, cmd
		}

		switch {
		case key.Matches(msg, libraryKeys.Up):
			s.bookList.Prev()
		case key.Matches(msg, libraryKeys.Down):
			s.bookList.Next()
		case key.Matches(msg, libraryKeys.Filter):
			return s, s.filter.Focus()
		case key.Matches(msg, libraryKeys.Refresh):
			s.loading = true
			return s, s.loadLibrary(false)
		case key.Matches(msg, libraryKeys.Open):
			if selected := s.bookList.Selected(); selected != nil {
				book := selected.Book
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "reader", Data: book}
				}
			}
		}

	case libraryLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.bookList.SetItems(msg.items)
		}
	}

	return s, nil
}

func (s *LibraryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("📚 Guya Reader")

	status := ""
	switch {
	case s.loading:
		status = styles.StatusWorking.Render("Fetching catalogue...") + "\n\n"
	case errors.Is(s.err, sources.ErrRequestInFlight):
		status = styles.StatusWarning.Render("The catalogue is already being fetched") + "\n\n"
	case s.err != nil:
		status = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	input := styles.InputStyle
	if s.filter.Focused() {
		input = styles.FocusedInputStyle
	}

	return fmt.Sprintf("%s\n%s\n\n%s%s\n%s",
		header,
		input.Render(s.filter.View()),
		status,
		s.bookList.View(),
		styles.HelpStyle.Render(s.help.View(libraryKeys)),
	)
}

type libraryLoadedMsg struct {
	items []components.BookListItem
	err   error
}

func (s *LibraryScreen) loadLibrary(useCache bool) tea.Cmd {
	return func() tea.Msg {
		books, err := s.catalog.Books(s.ctx, useCache)
		if err != nil {
			return libraryLoadedMsg{err: err}
		}

		read := make(map[string]*data.Progress)
		if entries, err := s.progress.ListProgress(); err == nil {
			for _, p := range entries {
				read[p.BookID] = p
			}
		}

		items := make([]components.BookListItem, len(books))
		for i, book := range books {
			items[i] = components.BookListItem{Book: book, Progress: read[book.ID]}
		}
		return libraryLoadedMsg{items: items}
	}
}
