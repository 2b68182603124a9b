package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/guya/pkg/app/components"
	"github.com/kerbaras/guya/pkg/app/styles"
	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/navigation"
	"github.com/kerbaras/guya/pkg/preferences"
	"github.com/kerbaras/guya/pkg/services"
	"github.com/kerbaras/guya/pkg/sources"
)

// Exporter writes chapters to files and reports progress while doing so.
type Exporter interface {
	ExportChapter(ctx context.Context, book *data.Book, chapter float64, group string) (string, error)
	Progress() <-chan services.ExportProgress
}

// ReaderScreen shows the current page of a session and turns keys into
// navigation intents.
type ReaderScreen struct {
	ctx      context.Context
	session  *services.Session
	prefs    *preferences.Store
	links    sources.Links
	exporter Exporter
	exports  *components.ProgressTracker
	help     help.Model
	unfollow func()
	status   string
	width    int
	height   int
}

func NewReaderScreen(ctx context.Context, session *services.Session, prefs *preferences.Store,
	links sources.Links, exporter Exporter) *ReaderScreen {
	return &ReaderScreen{
		ctx:      ctx,
		session:  session,
		prefs:    prefs,
		links:    links,
		exporter: exporter,
		exports:  components.NewProgressTracker(60),
		help:     help.New(),
	}
}

// Init resumes the book where it was left and starts following changes of
// the preferred group.
func (s *ReaderScreen) Init() tea.Cmd {
	if s.unfollow == nil {
		s.unfollow = s.session.FollowPreferredGroup()
	}
	if s.session.Current() == data.NoPage && !s.session.Resume() {
		s.status = "This book has no readable chapters"
	}
	return nil
}

// Close stops following preference changes.
func (s *ReaderScreen) Close() {
	if s.unfollow != nil {
		s.unfollow()
		s.unfollow = nil
	}
}

func (s *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width
		s.exports.SetWidth(msg.Width - 4)

	case services.ExportProgress:
		s.exports.Update(msg)

	case exportDoneMsg:
		if msg.err != nil {
			s.status = fmt.Sprintf("Export failed: %s", msg.err)
		} else {
			s.status = fmt.Sprintf("Exported to %s", msg.path)
		}

	case tea.KeyMsg:
		s.status = ""
		switch {
		case key.Matches(msg, readerKeys.Left):
			s.arrow(services.ArrowLeft)
		case key.Matches(msg, readerKeys.Right):
			s.arrow(services.ArrowRight)
		case key.Matches(msg, readerKeys.Up):
			s.arrow(services.ArrowUp)
		case key.Matches(msg, readerKeys.Down):
			s.arrow(services.ArrowDown)
		case key.Matches(msg, readerKeys.NextChapter):
			s.navigate(navigation.NextChapter{})
		case key.Matches(msg, readerKeys.PrevChapter):
			s.navigate(navigation.PreviousChapter{})
		case key.Matches(msg, readerKeys.NextVolume):
			s.nextVolume()
		case key.Matches(msg, readerKeys.FirstPage):
			s.navigate(navigation.FirstPageOfBook{})
		case key.Matches(msg, readerKeys.LastPage):
			s.navigate(navigation.LastPageOfBook{})
		case key.Matches(msg, readerKeys.Oldest):
			s.navigate(navigation.OldestChapter{})
		case key.Matches(msg, readerKeys.Newest):
			s.navigate(navigation.NewestChapter{})
		case key.Matches(msg, readerKeys.Group):
			s.nextGroup()
		case key.Matches(msg, readerKeys.Layout):
			s.setPreference(s.prefs.SetLayout(s.prefs.Layout().Next()))
		case key.Matches(msg, readerKeys.Scaling):
			s.setPreference(s.prefs.SetScaling(s.prefs.Scaling().Next()))
		case key.Matches(msg, readerKeys.Export):
			return s, s.export()
		case key.Matches(msg, readerKeys.Help):
			s.help.ShowAll = !s.help.ShowAll
		case key.Matches(msg, readerKeys.Back):
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "library"}
			}
		}
	}
	return s, nil
}

func (s *ReaderScreen) arrow(a services.Arrow) {
	if !s.session.Arrow(a) {
		s.status = "No page that way"
	}
}

func (s *ReaderScreen) navigate(intent navigation.Intent) {
	if !s.session.Navigate(intent) {
		s.status = fmt.Sprintf("Nothing at %s", intent)
	}
}

// nextVolume jumps to the start of the following volume. There is nothing
// after the last one.
func (s *ReaderScreen) nextVolume() {
	book := s.session.Book()
	next := 0
	if i, ok := book.VolumeIndex(book.PageVolume(s.session.Current())); ok {
		next = i + 1
	}
	if next >= len(book.Volumes()) {
		s.status = "No volume after this one"
		return
	}
	s.navigate(navigation.JumpToVolume{Index: next})
}

// nextGroup makes the next group that released the current chapter the
// preferred group. The session follows the preference to the equivalent
// page.
func (s *ReaderScreen) nextGroup() {
	groups := s.session.Groups()
	if len(groups) < 2 {
		s.status = "No other group released this chapter"
		return
	}
	loc, _ := s.session.Location()
	next := groups[0]
	for i, g := range groups {
		if g.ID == loc.Group {
			next = groups[(i+1)%len(groups)]
			break
		}
	}
	s.setPreference(s.prefs.SetPreferredGroup(next.ID))
}

func (s *ReaderScreen) setPreference(err error) {
	if err != nil {
		s.status = fmt.Sprintf("Failed to save preference: %s", err)
	}
}

type exportDoneMsg struct {
	path string
	err  error
}

func (s *ReaderScreen) export() tea.Cmd {
	loc, ok := s.session.Location()
	if !ok {
		return nil
	}
	s.exports.Finished()
	book := s.session.Book()
	return func() tea.Msg {
		path, err := s.exporter.ExportChapter(s.ctx, book, loc.Chapter, loc.Group)
		return exportDoneMsg{path: path, err: err}
	}
}

func (s *ReaderScreen) View() string {
	book := s.session.Book()
	header := styles.TitleStyle.Render(book.Title)

	var body string
	if page := s.session.Current(); page == data.NoPage {
		body = styles.MutedStyle.Render("Nothing to show")
	} else {
		body = s.pageView(book, page)
	}

	footer := ""
	if s.status != "" {
		footer = styles.StatusWarning.Render(s.status) + "\n"
	}
	if exports := s.exports.View(); exports != "" {
		footer += "\n" + exports
	}

	return fmt.Sprintf("%s\n%s\n%s%s",
		header,
		body,
		footer,
		styles.HelpStyle.Render(s.help.View(readerKeys)),
	)
}

func (s *ReaderScreen) pageView(book *data.Book, page data.PageID) string {
	p := book.Page(page)
	chapter := book.Chapter(book.PageChapter(page))
	volume := book.Volume(chapter.Volume)
	index, _ := book.PageIndex(page)
	total := book.NumberOfPages(p.Release)

	position := fmt.Sprintf("Volume %s • Chapter %s", data.FormatNumber(volume.Number), data.FormatNumber(chapter.Number))
	if chapter.Title != "" {
		position += " " + styles.SubtitleStyle.Render(chapter.Title)
	}
	pageLine := fmt.Sprintf("Page %d (%d/%d)  %s", p.Number, index+1, total,
		components.SimpleProgress(index+1, total, 30))

	lines := []string{
		styles.TextStyle.Render(position),
		styles.TextStyle.Render(pageLine),
		s.groupsView(book.PageGroup(page)),
		"",
	}
	if url, ok := s.links.PageImage(book, page); ok {
		lines = append(lines, "Image    "+styles.LinkStyle.Render(url))
	}
	if url, ok := s.links.WebPage(book, page); ok {
		lines = append(lines, "Web      "+styles.LinkStyle.Render(url))
	}
	if url, ok := s.links.Comments(book, chapter.ID); ok {
		lines = append(lines, "Comments "+styles.LinkStyle.Render(url))
	}
	lines = append(lines, "", styles.MutedStyle.Render(fmt.Sprintf("layout %s • scaling %s",
		s.prefs.Layout(), s.prefs.Scaling())))

	panel := styles.PageStyle
	if s.width > 8 {
		panel = panel.Width(s.width - 4)
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (s *ReaderScreen) groupsView(current string) string {
	groups := s.session.Groups()
	tabs := make([]string, len(groups))
	for i, g := range groups {
		tabs[i] = styles.Tab(g.Name, g.ID == current)
	}
	return strings.Join(tabs, "")
}
