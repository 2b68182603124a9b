// Package navigation computes which page to show next. Everything here is a
// pure function of the book, the current page and the preferred group, so
// callers own the mutable reading position and apply the result themselves.
package navigation

import "github.com/kerbaras/guya/pkg/data"

// Resolve returns the page that intent leads to from current, which may be
// data.NoPage when nothing is displayed yet. preferred is the preferred group
// identifier, empty for no preference. A false result means the intent is a
// no-op and the view should stay where it is.
func Resolve(book *data.Book, current data.PageID, intent Intent, preferred string) (data.PageID, bool) {
	if book == nil {
		return data.NoPage, false
	}

	switch in := intent.(type) {
	case JumpToChapter:
		cid, ok := book.ChapterNumbered(in.Chapter)
		if !ok {
			return data.NoPage, false
		}
		return book.FirstPage(cid, preferred)

	case JumpToPage:
		cid, ok := book.ChapterNumbered(in.Chapter)
		if !ok {
			return data.NoPage, false
		}
		return book.ChapterPage(cid, preferred, in.Page)

	case JumpToVolume:
		vols := book.Volumes()
		if in.Index < 0 || in.Index >= len(vols) {
			return data.NoPage, false
		}
		return book.VolumeFirstPage(vols[in.Index], preferred)

	case NextPage:
		return book.NextPage(current, true, preferred)

	case PreviousPage:
		return book.PreviousPage(current, true, preferred)

	case NextChapter:
		cid, ok := nextChapter(book, book.PageChapter(current))
		if !ok {
			return data.NoPage, false
		}
		return book.FirstPage(cid, preferred)

	case PreviousChapter:
		cid, ok := previousChapter(book, book.PageChapter(current))
		if !ok {
			return data.NoPage, false
		}
		return book.FirstPage(cid, preferred)

	case SwitchGroup:
		return book.EquivalentPage(current, in.Group)

	case FirstPageOfBook, OldestChapter:
		cid, ok := book.OldestChapter()
		if !ok {
			return data.NoPage, false
		}
		return book.FirstPage(cid, preferred)

	case LastPageOfBook:
		cid, ok := book.NewestChapter()
		if !ok {
			return data.NoPage, false
		}
		return book.LastPage(cid, preferred)

	case NewestChapter:
		cid, ok := book.NewestChapter()
		if !ok {
			return data.NoPage, false
		}
		return book.FirstPage(cid, preferred)
	}

	return data.NoPage, false
}

// nextChapter steps within the volume and escapes to the first chapter of
// the following volume at the volume boundary.
func nextChapter(book *data.Book, chapter data.ChapterID) (data.ChapterID, bool) {
	if next, ok := book.NextChapter(chapter, false); ok {
		return next, true
	}
	c := book.Chapter(chapter)
	if c == nil {
		return data.NoChapter, false
	}
	vid, ok := data.After(book.Volumes(), c.Volume)
	if !ok {
		return data.NoChapter, false
	}
	chapters := book.Volume(vid).Chapters
	if len(chapters) == 0 {
		return data.NoChapter, false
	}
	return chapters[0], true
}

// previousChapter steps within the volume and escapes to the last chapter of
// the preceding volume at the volume boundary.
func previousChapter(book *data.Book, chapter data.ChapterID) (data.ChapterID, bool) {
	if prev, ok := book.PreviousChapter(chapter, false); ok {
		return prev, true
	}
	c := book.Chapter(chapter)
	if c == nil {
		return data.NoChapter, false
	}
	vid, ok := data.Before(book.Volumes(), c.Volume)
	if !ok {
		return data.NoChapter, false
	}
	chapters := book.Volume(vid).Chapters
	if len(chapters) == 0 {
		return data.NoChapter, false
	}
	return chapters[len(chapters)-1], true
}

// ResolveInGroup resolves intent with group as the preferred group and only
// accepts a page released by group. Used when a caller names the group
// explicitly, so the preferred-group fallback never substitutes another
// release.
func ResolveInGroup(book *data.Book, current data.PageID, intent Intent, group string) (data.PageID, bool) {
	pid, ok := Resolve(book, current, intent, group)
	if !ok || book.PageGroup(pid) != group {
		return data.NoPage, false
	}
	return pid, true
}
