package data

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidCatalog is wrapped by every error returned from BookBuilder.Build.
var ErrInvalidCatalog = errors.New("invalid catalog")

// PageSpec describes one page of a release before the book is built.
type PageSpec struct {
	Number int
	File   string
}

type pendingRelease struct {
	group string
	pages []PageSpec
}

type pendingChapter struct {
	number   float64
	volume   float64
	title    string
	folder   string
	releases []pendingRelease
}

// BookBuilder assembles a Book from a single fetch response. Errors are
// sticky: the first one is reported by Build and later calls are ignored.
type BookBuilder struct {
	info     BookInfo
	groups   []Group
	chapters map[float64]*pendingChapter
	err      error
}

func NewBookBuilder(info BookInfo) *BookBuilder {
	return &BookBuilder{
		info:     info,
		chapters: make(map[float64]*pendingChapter),
	}
}

func (b *BookBuilder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: book %q: %s", ErrInvalidCatalog, b.info.ID, fmt.Sprintf(format, args...))
	}
}

// AddGroup registers a group. Releases may only reference registered groups.
func (b *BookBuilder) AddGroup(group Group) {
	if b.err != nil {
		return
	}
	if group.ID == "" {
		b.fail("group with empty identifier")
		return
	}
	for _, g := range b.groups {
		if g.ID == group.ID {
			b.fail("duplicate group %q", group.ID)
			return
		}
	}
	b.groups = append(b.groups, group)
}

// AddChapter registers a chapter numbered number in volume.
func (b *BookBuilder) AddChapter(number, volume float64, title, folder string) {
	if b.err != nil {
		return
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		b.fail("invalid chapter number %v", number)
		return
	}
	if _, ok := b.chapters[number]; ok {
		b.fail("duplicate chapter %v", number)
		return
	}
	b.chapters[number] = &pendingChapter{
		number: number,
		volume: volume,
		title:  title,
		folder: folder,
	}
}

// AddRelease adds group's release of chapter with pages numbered from 1 in
// the order the files are given.
func (b *BookBuilder) AddRelease(chapter float64, group string, files ...string) {
	pages := make([]PageSpec, len(files))
	for i, f := range files {
		pages[i] = PageSpec{Number: i + 1, File: f}
	}
	b.AddReleasePages(chapter, group, pages)
}

// AddReleasePages adds group's release of chapter with explicit page numbers.
func (b *BookBuilder) AddReleasePages(chapter float64, group string, pages []PageSpec) {
	if b.err != nil {
		return
	}
	c, ok := b.chapters[chapter]
	if !ok {
		b.fail("release for unknown chapter %v", chapter)
		return
	}
	if !b.hasGroup(group) {
		b.fail("chapter %v: release by unknown group %q", chapter, group)
		return
	}
	for _, r := range c.releases {
		if r.group == group {
			b.fail("chapter %v: duplicate release by group %q", chapter, group)
			return
		}
	}
	seen := make(map[int]struct{}, len(pages))
	for _, p := range pages {
		if p.Number < 1 {
			b.fail("chapter %v group %q: page number %d below 1", chapter, group, p.Number)
			return
		}
		if _, dup := seen[p.Number]; dup {
			b.fail("chapter %v group %q: duplicate page %d", chapter, group, p.Number)
			return
		}
		seen[p.Number] = struct{}{}
	}
	sorted := make([]PageSpec, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })
	c.releases = append(c.releases, pendingRelease{group: group, pages: sorted})
}

func (b *BookBuilder) hasGroup(id string) bool {
	for _, g := range b.groups {
		if g.ID == id {
			return true
		}
	}
	return false
}

// Build returns the finished Book. Volumes are ordered by their lowest
// chapter number; a volume whose chapters interleave with another volume's
// is rejected because the book and volume orderings would disagree.
func (b *BookBuilder) Build() (*Book, error) {
	if b.err != nil {
		return nil, b.err
	}

	pending := make([]*pendingChapter, 0, len(b.chapters))
	for _, c := range b.chapters {
		pending = append(pending, c)
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].number < pending[j].number })

	book := &Book{
		BookInfo:   b.info,
		groups:     append([]Group(nil), b.groups...),
		chapters:   make([]Chapter, 0, len(pending)),
		chapterIDs: make([]ChapterID, 0, len(pending)),
	}

	volumeByNumber := make(map[float64]VolumeID)
	current := NoVolume
	for _, pc := range pending {
		vid, seen := volumeByNumber[pc.volume]
		if !seen {
			vid = VolumeID(len(book.volumes))
			volumeByNumber[pc.volume] = vid
			book.volumes = append(book.volumes, Volume{ID: vid, Number: pc.volume})
			book.volumeIDs = append(book.volumeIDs, vid)
		} else if vid != current {
			return nil, fmt.Errorf("%w: book %q: chapter %v of volume %v is separated from the rest of its volume",
				ErrInvalidCatalog, b.info.ID, pc.number, pc.volume)
		}
		current = vid

		cid := ChapterID(len(book.chapters))
		chapter := Chapter{
			ID:     cid,
			Number: pc.number,
			Title:  pc.title,
			Folder: pc.folder,
			Volume: vid,
		}
		for _, pr := range pc.releases {
			rid := ReleaseID(len(book.releases))
			release := Release{ID: rid, Chapter: cid, Group: pr.group}
			for _, ps := range pr.pages {
				pid := PageID(len(book.pages))
				book.pages = append(book.pages, Page{ID: pid, Release: rid, Number: ps.Number, File: ps.File})
				release.Pages = append(release.Pages, pid)
			}
			book.releases = append(book.releases, release)
			chapter.Releases = append(chapter.Releases, rid)
		}
		book.chapters = append(book.chapters, chapter)
		book.chapterIDs = append(book.chapterIDs, cid)
		book.volumes[vid].Chapters = append(book.volumes[vid].Chapters, cid)
	}

	return book, nil
}
