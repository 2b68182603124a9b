package navigation

import "github.com/kerbaras/guya/pkg/data"

// Location identifies a page independently of the Book instance, so it can
// be stored and matched against a freshly fetched Book later.
type Location struct {
	Chapter float64 `json:"chapter"`
	Page    int     `json:"page"`
	Group   string  `json:"group"`
}

// Locate describes page as a Location.
func Locate(book *data.Book, page data.PageID) (Location, bool) {
	p := book.Page(page)
	if p == nil {
		return Location{}, false
	}
	c := book.Chapter(book.PageChapter(page))
	return Location{
		Chapter: c.Number,
		Page:    p.Number,
		Group:   book.PageGroup(page),
	}, true
}

// Find returns the page at loc exactly, without preferred-group fallback.
func Find(book *data.Book, loc Location) (data.PageID, bool) {
	cid, ok := book.ChapterNumbered(loc.Chapter)
	if !ok {
		return data.NoPage, false
	}
	rid, ok := book.ReleaseByGroup(cid, loc.Group)
	if !ok {
		return data.NoPage, false
	}
	return book.PageNumbered(rid, loc.Page)
}
