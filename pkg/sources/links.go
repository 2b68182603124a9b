package sources

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kerbaras/guya/pkg/data"
)

const (
	DefaultMediaURL = "https://ka.guya.moe"

	// kaguyaBook has short web page links on the media host.
	kaguyaBook = "Kaguya-Wants-To-Be-Confessed-To"
)

// Links builds the public URLs of books, pages and chapters.
type Links struct {
	Media string
	Site  string
}

func NewLinks(media, site string) Links {
	return Links{
		Media: strings.TrimRight(media, "/"),
		Site:  strings.TrimRight(site, "/"),
	}
}

func (l Links) Cover(book *data.Book) string {
	return l.Media + book.Cover
}

func (l Links) pageImage(book *data.Book, page data.PageID, dir string) (string, bool) {
	p := book.Page(page)
	if p == nil {
		return "", false
	}
	c := book.Chapter(book.PageChapter(page))
	return fmt.Sprintf("%s/media/manga/%s/chapters/%s/%s/%s",
		l.Media,
		url.PathEscape(book.ID),
		url.PathEscape(c.Folder),
		url.PathEscape(dir),
		url.PathEscape(p.File)), true
}

// PageImage is the full size image of page.
func (l Links) PageImage(book *data.Book, page data.PageID) (string, bool) {
	return l.pageImage(book, page, book.PageGroup(page))
}

// PagePreview is the reduced image of page.
func (l Links) PagePreview(book *data.Book, page data.PageID) (string, bool) {
	return l.pageImage(book, page, book.PageGroup(page)+"_shrunk")
}

// Comments is the discussion page of chapter.
func (l Links) Comments(book *data.Book, chapter data.ChapterID) (string, bool) {
	c := book.Chapter(chapter)
	if c == nil {
		return "", false
	}
	return fmt.Sprintf("%s/reader/series/%s/%s/comments", l.Site, url.PathEscape(book.ID), data.FormatNumber(c.Number)), true
}

// WebPage is the page as shown by the web reader.
func (l Links) WebPage(book *data.Book, page data.PageID) (string, bool) {
	p := book.Page(page)
	if p == nil {
		return "", false
	}
	chapter := data.FormatNumber(book.Chapter(book.PageChapter(page)).Number)
	if book.ID == kaguyaBook {
		return fmt.Sprintf("%s/%s/%d", l.Media, chapter, p.Number), true
	}
	return fmt.Sprintf("%s/reader/series/%s/%s/%d", l.Media, url.PathEscape(book.ID), chapter, p.Number), true
}
