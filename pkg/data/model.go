package data

import "strconv"

// Handles index into the tables of the Book that produced them. A handle is
// meaningless for any other Book, and two handles from the same Book refer to
// the same node exactly when they are equal.
type (
	VolumeID  int
	ChapterID int
	ReleaseID int
	PageID    int
)

const (
	NoVolume  VolumeID  = -1
	NoChapter ChapterID = -1
	NoRelease ReleaseID = -1
	NoPage    PageID    = -1
)

// Group is a scanlation group.
type Group struct {
	ID   string
	Name string
}

// BookInfo holds the descriptive fields of a book.
type BookInfo struct {
	ID          string // slug, unique across the catalogue
	Title       string
	Description string
	Author      string
	Artist      string
	Cover       string // path relative to the media host
}

type Volume struct {
	ID       VolumeID
	Number   float64
	Chapters []ChapterID
}

type Chapter struct {
	ID       ChapterID
	Number   float64
	Title    string
	Folder   string
	Volume   VolumeID
	Releases []ReleaseID
}

// Release is one group's version of a chapter.
type Release struct {
	ID      ReleaseID
	Chapter ChapterID
	Group   string
	Pages   []PageID
}

type Page struct {
	ID      PageID
	Release ReleaseID
	Number  int // 1-based, unique within the release
	File    string
}

// Book owns the whole tree. Volumes, chapters, releases and pages live in
// flat tables and refer to each other by handle; nothing in the tree is
// modified after Build returns it.
type Book struct {
	BookInfo

	groups   []Group
	volumes  []Volume
	chapters []Chapter // sorted by number, so ChapterID order is book order
	releases []Release
	pages    []Page

	volumeIDs  []VolumeID
	chapterIDs []ChapterID
}

func (b *Book) Groups() []Group {
	return b.groups
}

func (b *Book) Group(id string) (Group, bool) {
	for _, g := range b.groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// Volumes returns the volume handles in book order.
func (b *Book) Volumes() []VolumeID {
	return b.volumeIDs
}

// Chapters returns every chapter handle of the book ordered by chapter number.
func (b *Book) Chapters() []ChapterID {
	return b.chapterIDs
}

// Volume returns the volume for id, or nil if id is not a handle of b.
func (b *Book) Volume(id VolumeID) *Volume {
	if id < 0 || int(id) >= len(b.volumes) {
		return nil
	}
	return &b.volumes[id]
}

func (b *Book) Chapter(id ChapterID) *Chapter {
	if id < 0 || int(id) >= len(b.chapters) {
		return nil
	}
	return &b.chapters[id]
}

func (b *Book) Release(id ReleaseID) *Release {
	if id < 0 || int(id) >= len(b.releases) {
		return nil
	}
	return &b.releases[id]
}

func (b *Book) Page(id PageID) *Page {
	if id < 0 || int(id) >= len(b.pages) {
		return nil
	}
	return &b.pages[id]
}

// PageChapter returns the chapter a page belongs to.
func (b *Book) PageChapter(id PageID) ChapterID {
	p := b.Page(id)
	if p == nil {
		return NoChapter
	}
	r := b.Release(p.Release)
	if r == nil {
		return NoChapter
	}
	return r.Chapter
}

// PageVolume returns the volume a page belongs to.
func (b *Book) PageVolume(id PageID) VolumeID {
	c := b.Chapter(b.PageChapter(id))
	if c == nil {
		return NoVolume
	}
	return c.Volume
}

// PageGroup returns the group identifier of the release holding the page.
func (b *Book) PageGroup(id PageID) string {
	p := b.Page(id)
	if p == nil {
		return ""
	}
	if r := b.Release(p.Release); r != nil {
		return r.Group
	}
	return ""
}

// FormatNumber renders a chapter or volume number without trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
