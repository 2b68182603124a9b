package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/kerbaras/guya/pkg/app/styles"
	"github.com/kerbaras/guya/pkg/data"
)

type BookListItem struct {
	Book     *data.Book
	Progress *data.Progress // nil when the book was never opened
}

// BookList is a selectable list of books narrowed by a title filter.
type BookList struct {
	Items         []BookListItem
	Filter        string
	SelectedIndex int
	Width         int
	Height        int
}

func NewBookList() *BookList {
	return &BookList{
		Items:  []BookListItem{},
		Width:  80,
		Height: 20,
	}
}

func (l *BookList) SetItems(items []BookListItem) {
	l.Items = items
	l.clampSelection()
}

// SetFilter narrows the visible items to titles containing filter, ignoring
// case.
func (l *BookList) SetFilter(filter string) {
	l.Filter = filter
	l.clampSelection()
}

func (l *BookList) clampSelection() {
	n := len(l.Visible())
	if l.SelectedIndex >= n {
		l.SelectedIndex = max(n-1, 0)
	}
}

// Visible returns the items matching the filter.
func (l *BookList) Visible() []BookListItem {
	if l.Filter == "" {
		return l.Items
	}
	needle := strings.ToLower(l.Filter)
	var out []BookListItem
	for _, item := range l.Items {
		if strings.Contains(strings.ToLower(item.Book.Title), needle) {
			out = append(out, item)
		}
	}
	return out
}

func (l *BookList) Next() {
	n := len(l.Visible())
	if n == 0 {
		return
	}
	l.SelectedIndex = (l.SelectedIndex + 1) % n
}

func (l *BookList) Prev() {
	n := len(l.Visible())
	if n == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = n - 1
	}
}

func (l *BookList) Selected() *BookListItem {
	visible := l.Visible()
	if len(visible) == 0 || l.SelectedIndex >= len(visible) {
		return nil
	}
	return &visible[l.SelectedIndex]
}

// description wraps text to width and cuts it to two lines.
func (l *BookList) description(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	text = runewidth.Truncate(text, 2*width, "…")
	return styles.TextStyle.Render(wordwrap.String(text, width))
}

func (l *BookList) View() string {
	visible := l.Visible()
	if len(visible) == 0 {
		msg := "No books in catalogue"
		if l.Filter != "" {
			msg = fmt.Sprintf("No books match %q", l.Filter)
		}
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, styles.MutedStyle.Render(msg))
	}

	var b strings.Builder
	for i, item := range visible {
		card := styles.CardStyle
		if i == l.SelectedIndex {
			card = styles.ActiveCardStyle
		}

		book := item.Book
		title := styles.TitleStyle.Render(book.Title)
		author := styles.SubtitleStyle.Render(book.Author)

		counts := styles.MutedStyle.Render(fmt.Sprintf("%d volumes • %d chapters • %d groups",
			len(book.Volumes()), len(book.Chapters()), len(book.Groups())))

		read := styles.MutedStyle.Render("Not started")
		if item.Progress != nil {
			read = styles.StatusCompleted.Render(fmt.Sprintf("Chapter %s page %d",
				data.FormatNumber(item.Progress.Chapter), item.Progress.Page))
		}

		width := max(l.Width-4, 20)
		content := lipgloss.JoinVertical(lipgloss.Left, title, author, l.description(book.Description, width-6), counts, read)
		b.WriteString(card.Width(width).Render(content))
		b.WriteString("\n")
	}
	return b.String()
}
