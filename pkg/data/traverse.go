package data

import "slices"

// Before returns the element preceding item in s. It reports false when item
// is the first element or is not in s; callers decide whether to widen the
// search to an enclosing sequence.
func Before[T comparable](s []T, item T) (T, bool) {
	var zero T
	i := slices.Index(s, item)
	if i <= 0 {
		return zero, false
	}
	return s[i-1], true
}

// After returns the element following item in s.
func After[T comparable](s []T, item T) (T, bool) {
	var zero T
	i := slices.Index(s, item)
	if i < 0 || i+1 >= len(s) {
		return zero, false
	}
	return s[i+1], true
}

func first[T any](s []T) (T, bool) {
	var zero T
	if len(s) == 0 {
		return zero, false
	}
	return s[0], true
}

func last[T any](s []T) (T, bool) {
	var zero T
	if len(s) == 0 {
		return zero, false
	}
	return s[len(s)-1], true
}

// ChapterNumbered finds the chapter with the given number.
func (b *Book) ChapterNumbered(number float64) (ChapterID, bool) {
	i, ok := slices.BinarySearchFunc(b.chapters, number, func(c Chapter, n float64) int {
		switch {
		case c.Number < n:
			return -1
		case c.Number > n:
			return 1
		}
		return 0
	})
	if !ok {
		return NoChapter, false
	}
	return b.chapters[i].ID, true
}

func (b *Book) OldestChapter() (ChapterID, bool) {
	return first(b.chapterIDs)
}

func (b *Book) NewestChapter() (ChapterID, bool) {
	return last(b.chapterIDs)
}

// ReleaseByGroup returns group's release of the chapter.
func (b *Book) ReleaseByGroup(chapter ChapterID, group string) (ReleaseID, bool) {
	c := b.Chapter(chapter)
	if c == nil {
		return NoRelease, false
	}
	for _, rid := range c.Releases {
		if b.releases[rid].Group == group {
			return rid, true
		}
	}
	return NoRelease, false
}

// PreferredRelease picks the release of the preferred group, falling back to
// the chapter's first release when there is no preference or the preferred
// group did not release the chapter.
func (b *Book) PreferredRelease(chapter ChapterID, preferred string) (ReleaseID, bool) {
	if preferred != "" {
		if rid, ok := b.ReleaseByGroup(chapter, preferred); ok {
			return rid, true
		}
	}
	c := b.Chapter(chapter)
	if c == nil {
		return NoRelease, false
	}
	return first(c.Releases)
}

// FirstPage is the first page of the chapter's preferred release.
func (b *Book) FirstPage(chapter ChapterID, preferred string) (PageID, bool) {
	rid, ok := b.PreferredRelease(chapter, preferred)
	if !ok {
		return NoPage, false
	}
	return b.ReleaseFirstPage(rid)
}

// LastPage is the last page of the chapter's preferred release.
func (b *Book) LastPage(chapter ChapterID, preferred string) (PageID, bool) {
	rid, ok := b.PreferredRelease(chapter, preferred)
	if !ok {
		return NoPage, false
	}
	return b.ReleaseLastPage(rid)
}

// ChapterPage returns the page numbered number in the chapter's preferred
// release. There is no clamping: a number the release lacks is a miss.
func (b *Book) ChapterPage(chapter ChapterID, preferred string, number int) (PageID, bool) {
	rid, ok := b.PreferredRelease(chapter, preferred)
	if !ok {
		return NoPage, false
	}
	return b.PageNumbered(rid, number)
}

// VolumeFirstPage is the first page of the volume's first chapter.
func (b *Book) VolumeFirstPage(volume VolumeID, preferred string) (PageID, bool) {
	v := b.Volume(volume)
	if v == nil {
		return NoPage, false
	}
	cid, ok := first(v.Chapters)
	if !ok {
		return NoPage, false
	}
	return b.FirstPage(cid, preferred)
}

func (b *Book) ReleaseFirstPage(release ReleaseID) (PageID, bool) {
	r := b.Release(release)
	if r == nil {
		return NoPage, false
	}
	return first(r.Pages)
}

func (b *Book) ReleaseLastPage(release ReleaseID) (PageID, bool) {
	r := b.Release(release)
	if r == nil {
		return NoPage, false
	}
	return last(r.Pages)
}

// PageNumbered returns the page with the given number in the release.
func (b *Book) PageNumbered(release ReleaseID, number int) (PageID, bool) {
	r := b.Release(release)
	if r == nil || number < 1 {
		return NoPage, false
	}
	for _, pid := range r.Pages {
		if b.pages[pid].Number == number {
			return pid, true
		}
	}
	return NoPage, false
}

func (b *Book) NumberOfPages(release ReleaseID) int {
	r := b.Release(release)
	if r == nil {
		return 0
	}
	return len(r.Pages)
}

// PreviousChapter returns the chapter before chapter within its volume, or
// within the whole book when escapeVolume is set.
func (b *Book) PreviousChapter(chapter ChapterID, escapeVolume bool) (ChapterID, bool) {
	if escapeVolume {
		return Before(b.chapterIDs, chapter)
	}
	c := b.Chapter(chapter)
	if c == nil {
		return NoChapter, false
	}
	return Before(b.volumes[c.Volume].Chapters, chapter)
}

// NextChapter returns the chapter after chapter within its volume, or within
// the whole book when escapeVolume is set.
func (b *Book) NextChapter(chapter ChapterID, escapeVolume bool) (ChapterID, bool) {
	if escapeVolume {
		return After(b.chapterIDs, chapter)
	}
	c := b.Chapter(chapter)
	if c == nil {
		return NoChapter, false
	}
	return After(b.volumes[c.Volume].Chapters, chapter)
}

// PreviousPage returns the page before page in its release. With
// escapeChapter set, the first page of a release steps back to the last page
// of the previous chapter's preferred release.
func (b *Book) PreviousPage(page PageID, escapeChapter bool, preferred string) (PageID, bool) {
	p := b.Page(page)
	if p == nil {
		return NoPage, false
	}
	if prev, ok := Before(b.releases[p.Release].Pages, page); ok {
		return prev, true
	}
	if !escapeChapter {
		return NoPage, false
	}
	cid, ok := b.PreviousChapter(b.releases[p.Release].Chapter, true)
	if !ok {
		return NoPage, false
	}
	return b.LastPage(cid, preferred)
}

// NextPage returns the page after page in its release. With escapeChapter
// set, the last page of a release steps forward to the first page of the
// next chapter's preferred release.
func (b *Book) NextPage(page PageID, escapeChapter bool, preferred string) (PageID, bool) {
	p := b.Page(page)
	if p == nil {
		return NoPage, false
	}
	if next, ok := After(b.releases[p.Release].Pages, page); ok {
		return next, true
	}
	if !escapeChapter {
		return NoPage, false
	}
	cid, ok := b.NextChapter(b.releases[p.Release].Chapter, true)
	if !ok {
		return NoPage, false
	}
	return b.FirstPage(cid, preferred)
}

// EquivalentPage maps page onto group's release of the same chapter. The
// page itself is returned when it already belongs to group. When the target
// release is shorter than the page number its last page is used; otherwise
// only an exact page-number match is accepted.
func (b *Book) EquivalentPage(page PageID, group string) (PageID, bool) {
	p := b.Page(page)
	if p == nil {
		return NoPage, false
	}
	source := b.releases[p.Release]
	if source.Group == group {
		return page, true
	}
	target, ok := b.ReleaseByGroup(source.Chapter, group)
	if !ok {
		return NoPage, false
	}
	if lastID, ok := b.ReleaseLastPage(target); ok && b.pages[lastID].Number < p.Number {
		return lastID, true
	}
	return b.PageNumbered(target, p.Number)
}

// VolumeIndex is the position of the volume in the book.
func (b *Book) VolumeIndex(volume VolumeID) (int, bool) {
	i := slices.Index(b.volumeIDs, volume)
	return i, i >= 0
}

// ChapterVolumeIndex is the position of the chapter within its volume.
func (b *Book) ChapterVolumeIndex(chapter ChapterID) (int, bool) {
	c := b.Chapter(chapter)
	if c == nil {
		return -1, false
	}
	i := slices.Index(b.volumes[c.Volume].Chapters, chapter)
	return i, i >= 0
}

// ChapterBookIndex is the position of the chapter in the book.
func (b *Book) ChapterBookIndex(chapter ChapterID) (int, bool) {
	i := slices.Index(b.chapterIDs, chapter)
	return i, i >= 0
}

// ReleaseIndex is the position of the release within its chapter.
func (b *Book) ReleaseIndex(release ReleaseID) (int, bool) {
	r := b.Release(release)
	if r == nil {
		return -1, false
	}
	i := slices.Index(b.chapters[r.Chapter].Releases, release)
	return i, i >= 0
}

// PageIndex is the position of the page within its release.
func (b *Book) PageIndex(page PageID) (int, bool) {
	p := b.Page(page)
	if p == nil {
		return -1, false
	}
	i := slices.Index(b.releases[p.Release].Pages, page)
	return i, i >= 0
}

func (b *Book) IsFirstChapter(chapter ChapterID) bool {
	c := b.Chapter(chapter)
	if c == nil {
		return false
	}
	id, ok := first(b.volumes[c.Volume].Chapters)
	return ok && id == chapter
}

func (b *Book) IsLastChapter(chapter ChapterID) bool {
	c := b.Chapter(chapter)
	if c == nil {
		return false
	}
	id, ok := last(b.volumes[c.Volume].Chapters)
	return ok && id == chapter
}

func (b *Book) IsFirstChapterInBook(chapter ChapterID) bool {
	id, ok := b.OldestChapter()
	return ok && id == chapter
}

func (b *Book) IsLastChapterInBook(chapter ChapterID) bool {
	id, ok := b.NewestChapter()
	return ok && id == chapter
}

func (b *Book) IsFirstPage(page PageID) bool {
	p := b.Page(page)
	if p == nil {
		return false
	}
	id, ok := first(b.releases[p.Release].Pages)
	return ok && id == page
}

func (b *Book) IsLastPage(page PageID) bool {
	p := b.Page(page)
	if p == nil {
		return false
	}
	id, ok := last(b.releases[p.Release].Pages)
	return ok && id == page
}

func (b *Book) IsFirstPageInBook(page PageID) bool {
	return b.IsFirstPage(page) && b.IsFirstChapterInBook(b.PageChapter(page))
}

func (b *Book) IsLastPageInBook(page PageID) bool {
	return b.IsLastPage(page) && b.IsLastChapterInBook(b.PageChapter(page))
}
